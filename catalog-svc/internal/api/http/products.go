package httpapi

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"food-catalog/catalog-svc/internal/domain"
	"food-catalog/catalog-svc/internal/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"
)

const maxPhotoBytes = 10 << 20

var allowedPhotoTypes = []string{"image/jpeg", "image/png"}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("include-inactive"))
	products, err := h.Products.List(r.Context(), mux.Vars(r)["code"], includeInactive)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "productId")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	product, err := h.Products.FindByID(r.Context(), mux.Vars(r)["code"], productID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := input.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}
	product, err := h.Products.Create(r.Context(), mux.Vars(r)["code"], input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "productId")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var input domain.ProductInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := input.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}
	product, err := h.Products.Update(r.Context(), mux.Vars(r)["code"], productID, input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) getProductPhoto(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "productId")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	photo, err := h.Products.FindPhoto(r.Context(), mux.Vars(r)["code"], productID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

func (h *Handler) saveProductPhoto(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "productId")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes+1<<20)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		writeError(w, h.Log, invalidField("file", "upload is missing or too large"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, h.Log, invalidField("file", "is required"))
		return
	}
	defer file.Close()

	contentType, err := detectPhotoType(file)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	photo, err := h.Products.SavePhoto(r.Context(), mux.Vars(r)["code"], productID, service.PhotoUpload{
		FileName:    header.Filename,
		Description: r.FormValue("description"),
		ContentType: contentType,
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

// detectPhotoType sniffs the upload instead of trusting the client header and
// rewinds the file for storage.
func detectPhotoType(file multipart.File) (string, error) {
	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if !mimetype.EqualsAny(detected.String(), allowedPhotoTypes...) {
		return "", invalidField("file", "must be one of image/jpeg, image/png")
	}
	return detected.String(), nil
}

func invalidField(name, msg string) error {
	return &domain.ValidationError{Fields: []domain.FieldError{{Name: name, Message: msg}}}
}
