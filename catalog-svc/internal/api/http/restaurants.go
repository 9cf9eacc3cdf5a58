package httpapi

import (
	"net/http"

	"food-catalog/catalog-svc/internal/domain"

	"github.com/gorilla/mux"
)

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.Restaurants.FindByCode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRestaurantModel(*restaurant))
}

// listRestaurants serves both the full listing and the by-name search.
func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	var page domain.Page[domain.Restaurant]
	if q := r.URL.Query(); q.Has("by-name") {
		page, err = h.Restaurants.FindByLikeName(r.Context(), q.Get("by-name"), req)
	} else {
		page, err = h.Restaurants.FindAll(r.Context(), req)
	}
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.MapPage(page, toRestaurantSummary))
}

func (h *Handler) listFreeDelivery(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	page, err := h.Restaurants.FindWithFreeDelivery(r.Context(), req)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.MapPage(page, toRestaurantSummary))
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var input domain.RestaurantInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := input.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}
	restaurant, err := h.Restaurants.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.Header().Set("Location", "/restaurants/"+restaurant.Code)
	writeJSON(w, http.StatusCreated, toRestaurantSummary(*restaurant))
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var input domain.RestaurantInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := input.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}
	restaurant, err := h.Restaurants.Update(r.Context(), mux.Vars(r)["code"], input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRestaurantSummary(*restaurant))
}

func (h *Handler) updateAddress(w http.ResponseWriter, r *http.Request) {
	var input domain.AddressInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := input.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}
	restaurant, err := h.Restaurants.UpdateAddress(r.Context(), mux.Vars(r)["code"], input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRestaurantModel(*restaurant))
}

func (h *Handler) activateRestaurant(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.Restaurants.Activate(r.Context(), mux.Vars(r)["code"]))
}

func (h *Handler) inactivateRestaurant(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.Restaurants.Inactivate(r.Context(), mux.Vars(r)["code"]))
}

func (h *Handler) openRestaurant(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.Restaurants.Open(r.Context(), mux.Vars(r)["code"]))
}

func (h *Handler) closeRestaurant(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.Restaurants.Close(r.Context(), mux.Vars(r)["code"]))
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.Restaurants.DeleteByCode(r.Context(), mux.Vars(r)["code"]))
}

func (h *Handler) activateMultiples(w http.ResponseWriter, r *http.Request) {
	var codes []string
	if err := decodeJSON(r, &codes); err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.noContent(w, h.Restaurants.ActivateMultiples(r.Context(), codes))
}

func (h *Handler) inactivateMultiples(w http.ResponseWriter, r *http.Request) {
	var codes []string
	if err := decodeJSON(r, &codes); err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.noContent(w, h.Restaurants.InactivateMultiples(r.Context(), codes))
}

func (h *Handler) getRestaurantQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Restaurants.QRCode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) noContent(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
