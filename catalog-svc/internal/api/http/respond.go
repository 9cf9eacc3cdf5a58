package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"food-catalog/catalog-svc/internal/auth"
	"food-catalog/catalog-svc/internal/domain"
	"food-catalog/logger"

	"github.com/gorilla/mux"
)

type problem struct {
	Status    int                 `json:"status"`
	Title     string              `json:"title"`
	Detail    string              `json:"detail"`
	Timestamp string              `json:"timestamp"`
	Fields    []domain.FieldError `json:"fields,omitempty"`
}

var errMalformedBody = errors.New("malformed request body")

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string, fields []domain.FieldError) {
	writeJSON(w, status, problem{
		Status:    status,
		Title:     title,
		Detail:    detail,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Fields:    fields,
	})
}

// writeError maps the error taxonomy onto status codes. Anything unknown is
// logged and answered with a generic 500.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "authentication is required", nil)
	case errors.Is(err, auth.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", "you are not allowed to perform this operation", nil)
	case errors.As(err, &validation):
		writeProblem(w, http.StatusBadRequest, "Invalid input", validation.Error(), validation.Fields)
	case errors.Is(err, errMalformedBody):
		writeProblem(w, http.StatusBadRequest, "Malformed request", err.Error(), nil)
	case domain.IsBusinessRuleViolation(err):
		writeProblem(w, http.StatusBadRequest, "Business rule violation", err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidState):
		writeProblem(w, http.StatusBadRequest, "Business rule violation", err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Resource not found", err.Error(), nil)
	case errors.Is(err, domain.ErrEntityInUse):
		writeProblem(w, http.StatusConflict, "Entity in use", err.Error(), nil)
	default:
		if log != nil {
			log.Error("request failed", "error", err)
		}
		writeProblem(w, http.StatusInternalServerError, "Internal error",
			"an unexpected internal error occurred, try again later", nil)
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errMalformedBody
	}
	return nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidField(name, "must be a positive id")
	}
	return id, nil
}

// pageRequest reads page, size and sort. Missing values fall back to the
// defaults applied by domain.PageRequest.Normalize.
func pageRequest(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()
	req := domain.PageRequest{Sort: q.Get("sort")}
	var v domain.ValidationError
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			v.Fields = append(v.Fields, domain.FieldError{Name: "page", Message: "must be a non-negative integer"})
		}
		req.Page = n
	}
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			v.Fields = append(v.Fields, domain.FieldError{Name: "size", Message: "must be a positive integer"})
		}
		req.Size = n
	}
	if len(v.Fields) > 0 {
		return req, &v
	}
	return req.Normalize(), nil
}
