package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"food-catalog/catalog-svc/internal/domain"
	"food-catalog/logger"

	"github.com/google/uuid"
)

// PhotoUpload is a photo that already passed file-type validation.
type PhotoUpload struct {
	FileName    string
	Description string
	ContentType string
	Size        int64
	Content     io.Reader
}

type ProductService struct {
	store  Store
	photos PhotoStorage
	log    *logger.Logger
}

func NewProductService(store Store, photos PhotoStorage, log *logger.Logger) *ProductService {
	return &ProductService{store: store, photos: photos, log: log}
}

func (s *ProductService) List(ctx context.Context, restaurantCode string, includeInactive bool) ([]domain.Product, error) {
	restaurant, err := s.store.FindRestaurantByCode(ctx, restaurantCode)
	if err != nil {
		return nil, err
	}
	return s.store.ListProducts(ctx, restaurant.ID, includeInactive)
}

func (s *ProductService) FindByID(ctx context.Context, restaurantCode string, productID int64) (*domain.Product, error) {
	restaurant, err := s.store.FindRestaurantByCode(ctx, restaurantCode)
	if err != nil {
		return nil, err
	}
	return s.findProduct(ctx, s.store, restaurant, productID)
}

func (s *ProductService) Create(ctx context.Context, restaurantCode string, input domain.ProductInput) (*domain.Product, error) {
	var created *domain.Product
	err := s.store.WithinTx(ctx, func(tx Store) error {
		restaurant, err := tx.FindRestaurantByCode(ctx, restaurantCode)
		if err != nil {
			return asBusinessError(err)
		}
		product := &domain.Product{RestaurantID: restaurant.ID}
		applyProductInput(product, input)
		if err := tx.SaveProduct(ctx, product); err != nil {
			return err
		}
		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("product created", "restaurant", restaurantCode, "product_id", created.ID)
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, restaurantCode string, productID int64, input domain.ProductInput) (*domain.Product, error) {
	var updated *domain.Product
	err := s.store.WithinTx(ctx, func(tx Store) error {
		restaurant, err := tx.FindRestaurantByCode(ctx, restaurantCode)
		if err != nil {
			return asBusinessError(err)
		}
		product, err := s.findProduct(ctx, tx, restaurant, productID)
		if err != nil {
			return asBusinessError(err)
		}
		applyProductInput(product, input)
		if err := tx.SaveProduct(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProductService) FindPhoto(ctx context.Context, restaurantCode string, productID int64) (*domain.ProductPhoto, error) {
	product, err := s.FindByID(ctx, restaurantCode, productID)
	if err != nil {
		return nil, err
	}
	return s.store.FindPhoto(ctx, product.ID)
}

// SavePhoto writes the file first and the metadata second. Files are only
// touched again once the transaction outcome is known: on failure the new file
// is removed, on commit the replaced one is.
func (s *ProductService) SavePhoto(ctx context.Context, restaurantCode string, productID int64, upload PhotoUpload) (*domain.ProductPhoto, error) {
	if s.photos == nil {
		return nil, errors.New("photo storage is not configured")
	}

	var (
		saved    *domain.ProductPhoto
		written  string
		previous string
	)
	err := s.store.WithinTx(ctx, func(tx Store) error {
		restaurant, err := tx.FindRestaurantByCode(ctx, restaurantCode)
		if err != nil {
			return asBusinessError(err)
		}
		product, err := s.findProduct(ctx, tx, restaurant, productID)
		if err != nil {
			return asBusinessError(err)
		}

		if existing, err := tx.FindPhoto(ctx, product.ID); err == nil {
			previous = existing.FileName
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		photo := &domain.ProductPhoto{
			ProductID:   product.ID,
			FileName:    uuid.NewString() + "_" + filepath.Base(upload.FileName),
			Description: upload.Description,
			ContentType: upload.ContentType,
			Size:        upload.Size,
		}
		if err := s.photos.Store(ctx, photo.FileName, upload.Content); err != nil {
			return fmt.Errorf("store photo: %w", err)
		}
		written = photo.FileName
		if err := tx.SavePhoto(ctx, photo); err != nil {
			return err
		}
		saved = photo
		return nil
	})
	if err != nil {
		if written != "" {
			s.removePhoto(ctx, written)
		}
		return nil, err
	}

	if previous != "" {
		s.removePhoto(ctx, previous)
	}
	return saved, nil
}

func (s *ProductService) removePhoto(ctx context.Context, fileName string) {
	if err := s.photos.Remove(ctx, fileName); err != nil {
		s.log.Warn("product photo not removed", "file", fileName, "error", err)
	}
}

func (s *ProductService) findProduct(ctx context.Context, store ProductStore, restaurant *domain.Restaurant, productID int64) (*domain.Product, error) {
	product, err := store.FindProduct(ctx, restaurant.ID, productID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ProductNotFound(restaurant.Code, productID)
	}
	return product, err
}

func applyProductInput(product *domain.Product, input domain.ProductInput) {
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Active = input.Active
}
