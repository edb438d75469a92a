package endpoints

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/prabaj-wq/accessgov/pkg/audit"
	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server"
	"github.com/prabaj-wq/accessgov/pkg/server/middleware"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// GrantRequest is the body of a set-grant call
type GrantRequest struct {
	Level string `json:"level"`
}

// BulkGrantRequest is the body of a bulk-apply call
type BulkGrantRequest struct {
	RoleIDs     []string `json:"role_ids"`
	ResourceIDs []string `json:"resource_ids"`
	Level       string   `json:"level"`
}

// GrantResponse reports one matrix cell
type GrantResponse struct {
	RoleID     string `json:"role_id"`
	ResourceID string `json:"resource_id"`
	Level      string `json:"level"`
}

// RegisterGrantsEndpoints registers the permission matrix API endpoints
func RegisterGrantsEndpoints(s *server.Server) {
	grants := s.Stores.Grants

	identity := middleware.NewIdentityAuthenticator([]byte(os.Getenv("GOV_TOKEN_SECRET")))

	grantsRouter := s.Router.PathPrefix("/grants").Subrouter()
	grantsRouter.Use(identity.Middleware)

	grantsRouter.HandleFunc("", handleMatrix(grants)).Methods("GET")
	grantsRouter.HandleFunc("/bulk", handleBulkApply(grants)).Methods("POST")
	grantsRouter.HandleFunc("/{role}/{resource}", handleEffectiveLevel(grants)).Methods("GET")
	grantsRouter.HandleFunc("/{role}/{resource}", handleSetGrant(grants)).Methods("PUT")
	grantsRouter.HandleFunc("/{role}/{resource}/cycle", handleCycleGrant(grants)).Methods("POST")
}

func handleMatrix(grants store.GrantsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matrix, err := grants.Matrix()
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		cells := make([]GrantResponse, 0, len(matrix))
		for _, g := range matrix {
			cells = append(cells, GrantResponse{
				RoleID:     g.RoleID,
				ResourceID: g.ResourceID,
				Level:      g.Level.String(),
			})
		}
		respondWithJSON(w, http.StatusOK, cells)
	}
}

func handleEffectiveLevel(grants store.GrantsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		level, err := grants.EffectiveLevel(vars["role"], vars["resource"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, GrantResponse{
			RoleID:     vars["role"],
			ResourceID: vars["resource"],
			Level:      level.String(),
		})
	}
}

func handleSetGrant(grants store.GrantsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body GrantRequest
		if !decodeBody(w, r, &body) {
			return
		}

		level, err := model.LevelString(body.Level)
		if err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, "level must be one of none, read, write")
			return
		}

		vars := mux.Vars(r)
		if err := grants.SetGrant(vars["role"], vars["resource"], level); err != nil {
			respondWithStoreError(w, err)
			return
		}

		audit.Log(audit.GrantEvent{
			Actor:      middleware.Identity(r),
			RoleID:     vars["role"],
			ResourceID: vars["resource"],
			Level:      level.String(),
			Operation:  "set",
		})
		respondWithJSON(w, http.StatusOK, GrantResponse{
			RoleID:     vars["role"],
			ResourceID: vars["resource"],
			Level:      level.String(),
		})
	}
}

func handleCycleGrant(grants store.GrantsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		level, err := grants.CycleGrant(vars["role"], vars["resource"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		audit.Log(audit.GrantEvent{
			Actor:      middleware.Identity(r),
			RoleID:     vars["role"],
			ResourceID: vars["resource"],
			Level:      level.String(),
			Operation:  "cycle",
		})
		respondWithJSON(w, http.StatusOK, GrantResponse{
			RoleID:     vars["role"],
			ResourceID: vars["resource"],
			Level:      level.String(),
		})
	}
}

func handleBulkApply(grants store.GrantsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body BulkGrantRequest
		if !decodeBody(w, r, &body) {
			return
		}

		level, err := model.LevelString(body.Level)
		if err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, "level must be one of none, read, write")
			return
		}

		if err := grants.BulkApply(body.RoleIDs, body.ResourceIDs, level); err != nil {
			respondWithStoreError(w, err)
			return
		}

		cells := len(body.RoleIDs) * len(body.ResourceIDs)
		audit.Log(audit.GrantEvent{
			Actor:     middleware.Identity(r),
			Level:     level.String(),
			Operation: "bulk",
			CellCount: cells,
		})
		respondWithJSON(w, http.StatusOK, map[string]int{"cells": cells})
	}
}
