package httpapi

import (
	"net/http"
	"strconv"

	"food-catalog/catalog-svc/internal/domain"
)

func (h *Handler) listKitchens(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	page, err := h.Kitchens.FindAll(r.Context(), req)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) getKitchen(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	kitchen, err := h.Kitchens.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, kitchen)
}

func (h *Handler) getKitchenRestaurants(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	restaurants, err := h.Kitchens.FindRestaurants(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRestaurantSummaries(restaurants))
}

func (h *Handler) createKitchen(w http.ResponseWriter, r *http.Request) {
	var input domain.KitchenInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := input.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}
	kitchen, err := h.Kitchens.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.Header().Set("Location", "/kitchens/"+strconv.FormatInt(kitchen.ID, 10))
	writeJSON(w, http.StatusCreated, kitchen)
}

func (h *Handler) updateKitchen(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var input domain.KitchenInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := input.Validate(); err != nil {
		writeError(w, h.Log, err)
		return
	}
	kitchen, err := h.Kitchens.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, kitchen)
}

func (h *Handler) deleteKitchen(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.noContent(w, h.Kitchens.DeleteByID(r.Context(), id))
}
