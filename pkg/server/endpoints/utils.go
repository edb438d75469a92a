package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithStoreError maps the store error taxonomy onto HTTP statuses
func respondWithStoreError(w http.ResponseWriter, err error) {
	var (
		notFound   *store.NotFoundError
		validation *store.ValidationError
		conflict   *store.ConflictError
		outOfOrder *store.OutOfOrderError
		transition *store.StateTransitionError
	)

	switch {
	case errors.As(err, &notFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &conflict):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.As(err, &outOfOrder):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &transition):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
