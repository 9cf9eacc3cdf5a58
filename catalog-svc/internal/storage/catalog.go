package storage

import (
	"context"
	"fmt"

	"food-catalog/catalog-svc/internal/domain"
)

var kitchenSortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

func (r *PostgresRepository) GetKitchen(ctx context.Context, id int64) (*domain.Kitchen, error) {
	var kitchen domain.Kitchen
	err := r.q.QueryRowContext(ctx, "SELECT id, name FROM kitchens WHERE id = $1", id).
		Scan(&kitchen.ID, &kitchen.Name)
	if err != nil {
		return nil, notFoundOr(err, "kitchen", id)
	}
	return &kitchen, nil
}

func (r *PostgresRepository) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	var city domain.City
	err := r.q.QueryRowContext(ctx, `
		SELECT c.id, c.name, s.id, s.name
		FROM cities c
		JOIN states s ON s.id = c.state_id
		WHERE c.id = $1`, id).
		Scan(&city.ID, &city.Name, &city.State.ID, &city.State.Name)
	if err != nil {
		return nil, notFoundOr(err, "city", id)
	}
	return &city, nil
}

func (r *PostgresRepository) ListKitchens(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Kitchen], error) {
	var total int64
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM kitchens").Scan(&total); err != nil {
		return domain.Page[domain.Kitchen]{}, err
	}

	rows, err := r.q.QueryContext(ctx,
		fmt.Sprintf("SELECT id, name FROM kitchens ORDER BY %s LIMIT $1 OFFSET $2", orderBy(req.Sort, kitchenSortColumns)),
		req.Size, req.Offset())
	if err != nil {
		return domain.Page[domain.Kitchen]{}, err
	}
	defer rows.Close()

	var kitchens []domain.Kitchen
	for rows.Next() {
		var kitchen domain.Kitchen
		if err := rows.Scan(&kitchen.ID, &kitchen.Name); err != nil {
			return domain.Page[domain.Kitchen]{}, err
		}
		kitchens = append(kitchens, kitchen)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.Kitchen]{}, err
	}
	return domain.NewPage(kitchens, req, total), nil
}

func (r *PostgresRepository) SaveKitchen(ctx context.Context, kitchen *domain.Kitchen) error {
	if kitchen.ID == 0 {
		return r.q.QueryRowContext(ctx, "INSERT INTO kitchens (name) VALUES ($1) RETURNING id", kitchen.Name).
			Scan(&kitchen.ID)
	}
	result, err := r.q.ExecContext(ctx, "UPDATE kitchens SET name = $1 WHERE id = $2", kitchen.Name, kitchen.ID)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return domain.NotFound("kitchen", kitchen.ID)
	}
	return nil
}

func (r *PostgresRepository) DeleteKitchen(ctx context.Context, id int64) (int64, error) {
	result, err := r.q.ExecContext(ctx, "DELETE FROM kitchens WHERE id = $1", id)
	if isPQError(err, pqForeignKeyViolation) {
		return 0, fmt.Errorf("%w: kitchen %d is still referenced", domain.ErrEntityInUse, id)
	}
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ListProducts(ctx context.Context, restaurantID int64, includeInactive bool) ([]domain.Product, error) {
	query := "SELECT id, restaurant_id, name, description, price, active FROM products WHERE restaurant_id = $1"
	if !includeInactive {
		query += " AND active"
	}
	rows, err := r.q.QueryContext(ctx, query+" ORDER BY id", restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.RestaurantID, &p.Name, &p.Description, &p.Price, &p.Active); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) FindProduct(ctx context.Context, restaurantID, productID int64) (*domain.Product, error) {
	var p domain.Product
	err := r.q.QueryRowContext(ctx, `
		SELECT id, restaurant_id, name, description, price, active
		FROM products
		WHERE id = $1 AND restaurant_id = $2`, productID, restaurantID).
		Scan(&p.ID, &p.RestaurantID, &p.Name, &p.Description, &p.Price, &p.Active)
	if err != nil {
		return nil, notFoundOr(err, "product", productID)
	}
	return &p, nil
}

func (r *PostgresRepository) SaveProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == 0 {
		return r.q.QueryRowContext(ctx, `
			INSERT INTO products (restaurant_id, name, description, price, active)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			p.RestaurantID, p.Name, p.Description, p.Price, p.Active).
			Scan(&p.ID)
	}
	_, err := r.q.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, active = $4
		WHERE id = $5 AND restaurant_id = $6`,
		p.Name, p.Description, p.Price, p.Active, p.ID, p.RestaurantID)
	return err
}

func (r *PostgresRepository) FindPhoto(ctx context.Context, productID int64) (*domain.ProductPhoto, error) {
	var photo domain.ProductPhoto
	err := r.q.QueryRowContext(ctx, `
		SELECT product_id, file_name, COALESCE(description, ''), content_type, size
		FROM product_photos
		WHERE product_id = $1`, productID).
		Scan(&photo.ProductID, &photo.FileName, &photo.Description, &photo.ContentType, &photo.Size)
	if err != nil {
		return nil, notFoundOr(err, "photo for product", productID)
	}
	return &photo, nil
}

func (r *PostgresRepository) SavePhoto(ctx context.Context, photo *domain.ProductPhoto) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO product_photos (product_id, file_name, description, content_type, size)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id) DO UPDATE
		SET file_name = EXCLUDED.file_name,
		    description = EXCLUDED.description,
		    content_type = EXCLUDED.content_type,
		    size = EXCLUDED.size`,
		photo.ProductID, photo.FileName, photo.Description, photo.ContentType, photo.Size)
	return err
}
