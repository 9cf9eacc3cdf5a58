package httpapi

import (
	"net/http"
	"time"

	"food-catalog/catalog-svc/internal/auth"
	"food-catalog/catalog-svc/internal/metrics"
	"food-catalog/catalog-svc/internal/service"
	"food-catalog/logger"

	"github.com/gorilla/mux"
)

type Handler struct {
	Restaurants service.RestaurantServiceInterface
	Kitchens    service.KitchenServiceInterface
	Products    service.ProductServiceInterface
	Log         *logger.Logger
}

func NewHandler(restSvc service.RestaurantServiceInterface, kitchenSvc service.KitchenServiceInterface, productSvc service.ProductServiceInterface, log *logger.Logger) *Handler {
	return &Handler{
		Restaurants: restSvc,
		Kitchens:    kitchenSvc,
		Products:    productSvc,
		Log:         log,
	}
}

// RegisterRoutes names every route after the operation it serves so the
// authorization middleware can find the required capability. Fixed paths are
// registered before their {code} siblings.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	route := func(op auth.Operation, path string, fn http.HandlerFunc, method string) {
		r.HandleFunc(path, fn).Methods(method).Name(string(op))
	}

	route(auth.OpHealth, "/health", h.healthCheck, http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet).Name(string(auth.OpMetrics))

	route(auth.OpKitchenList, "/kitchens", h.listKitchens, http.MethodGet)
	route(auth.OpKitchenCreate, "/kitchens", h.createKitchen, http.MethodPost)
	route(auth.OpKitchenFind, "/kitchens/{id:[0-9]+}", h.getKitchen, http.MethodGet)
	route(auth.OpKitchenUpdate, "/kitchens/{id:[0-9]+}", h.updateKitchen, http.MethodPut)
	route(auth.OpKitchenDelete, "/kitchens/{id:[0-9]+}", h.deleteKitchen, http.MethodDelete)
	route(auth.OpKitchenRestaurants, "/kitchens/{id:[0-9]+}/restaurants", h.getKitchenRestaurants, http.MethodGet)

	route(auth.OpRestaurantList, "/restaurants", h.listRestaurants, http.MethodGet)
	route(auth.OpRestaurantCreate, "/restaurants", h.createRestaurant, http.MethodPost)
	route(auth.OpRestaurantFreeDelivery, "/restaurants/free-delivery", h.listFreeDelivery, http.MethodGet)
	route(auth.OpRestaurantActivateMany, "/restaurants/active-multiples", h.activateMultiples, http.MethodPut)
	route(auth.OpRestaurantInactivateMany, "/restaurants/active-multiples", h.inactivateMultiples, http.MethodDelete)
	route(auth.OpRestaurantFind, "/restaurants/{code}", h.getRestaurant, http.MethodGet)
	route(auth.OpRestaurantUpdate, "/restaurants/{code}", h.updateRestaurant, http.MethodPut)
	route(auth.OpRestaurantDelete, "/restaurants/{code}", h.deleteRestaurant, http.MethodDelete)
	route(auth.OpRestaurantActivate, "/restaurants/{code}/active", h.activateRestaurant, http.MethodPut)
	route(auth.OpRestaurantInactivate, "/restaurants/{code}/active", h.inactivateRestaurant, http.MethodDelete)
	route(auth.OpRestaurantOpen, "/restaurants/{code}/open", h.openRestaurant, http.MethodPut)
	route(auth.OpRestaurantClose, "/restaurants/{code}/open", h.closeRestaurant, http.MethodDelete)
	route(auth.OpRestaurantAddress, "/restaurants/{code}/update-address", h.updateAddress, http.MethodPut)
	route(auth.OpRestaurantQRCode, "/restaurants/{code}/qrcode", h.getRestaurantQRCode, http.MethodGet)

	route(auth.OpProductList, "/restaurants/{code}/products", h.listProducts, http.MethodGet)
	route(auth.OpProductCreate, "/restaurants/{code}/products", h.createProduct, http.MethodPost)
	route(auth.OpProductFind, "/restaurants/{code}/products/{productId:[0-9]+}", h.getProduct, http.MethodGet)
	route(auth.OpProductUpdate, "/restaurants/{code}/products/{productId:[0-9]+}", h.updateProduct, http.MethodPut)
	route(auth.OpProductPhotoFind, "/restaurants/{code}/products/{productId:[0-9]+}/photo", h.getProductPhoto, http.MethodGet)
	route(auth.OpProductPhotoSave, "/restaurants/{code}/products/{productId:[0-9]+}/photo", h.saveProductPhoto, http.MethodPut)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "catalog-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
