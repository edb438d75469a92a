package endpoints

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server"
	"github.com/prabaj-wq/accessgov/pkg/server/middleware"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// RoleRequest is the body of role create/update calls
type RoleRequest struct {
	RoleID         string `json:"role_id"`
	Name           string `json:"name"`
	Classification string `json:"classification"`
	IsTemplate     bool   `json:"is_template"`
}

// ResourceRequest is the body of resource create calls
type ResourceRequest struct {
	ResourceID string `json:"resource_id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
}

// RegisterCatalogEndpoints registers the role and resource API endpoints
func RegisterCatalogEndpoints(s *server.Server) {
	catalog := s.Stores.Catalog

	identity := middleware.NewIdentityAuthenticator([]byte(os.Getenv("GOV_TOKEN_SECRET")))

	rolesRouter := s.Router.PathPrefix("/roles").Subrouter()
	rolesRouter.Use(identity.Middleware)
	rolesRouter.HandleFunc("", handleCreateRole(catalog)).Methods("POST")
	rolesRouter.HandleFunc("", handleListRoles(catalog)).Methods("GET")
	rolesRouter.HandleFunc("/{id}", handleShowRole(catalog)).Methods("GET")
	rolesRouter.HandleFunc("/{id}", handleUpdateRole(catalog)).Methods("PUT")
	rolesRouter.HandleFunc("/{id}", handleDeleteRole(catalog)).Methods("DELETE")

	resourcesRouter := s.Router.PathPrefix("/resources").Subrouter()
	resourcesRouter.Use(identity.Middleware)
	resourcesRouter.HandleFunc("", handleCreateResource(catalog)).Methods("POST")
	resourcesRouter.HandleFunc("", handleListResources(catalog)).Methods("GET")
	resourcesRouter.HandleFunc("/{id}", handleShowResource(catalog)).Methods("GET")
	resourcesRouter.HandleFunc("/{id}", handleRetireResource(catalog)).Methods("DELETE")
}

func handleCreateRole(catalog store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body RoleRequest
		if !decodeBody(w, r, &body) {
			return
		}

		role := model.Role{
			RoleID:         body.RoleID,
			Name:           body.Name,
			Classification: model.Classification(body.Classification),
			IsTemplate:     body.IsTemplate,
		}
		if err := catalog.CreateRole(role); err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, role)
	}
}

func handleListRoles(catalog store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := catalog.ListRoles()
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, roles)
	}
}

func handleShowRole(catalog store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := catalog.FetchRole(mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, role)
	}
}

func handleUpdateRole(catalog store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body RoleRequest
		if !decodeBody(w, r, &body) {
			return
		}

		roleID := mux.Vars(r)["id"]
		if err := catalog.UpdateRole(roleID, body.Name, model.Classification(body.Classification)); err != nil {
			respondWithStoreError(w, err)
			return
		}

		role, err := catalog.FetchRole(roleID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, role)
	}
}

func handleDeleteRole(catalog store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cascade := r.URL.Query().Get("cascade") == "true"
		if err := catalog.DeleteRole(mux.Vars(r)["id"], cascade); err != nil {
			respondWithStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleCreateResource(catalog store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ResourceRequest
		if !decodeBody(w, r, &body) {
			return
		}

		resource := model.Resource{
			ResourceID: body.ResourceID,
			Name:       body.Name,
			Category:   body.Category,
		}
		if err := catalog.CreateResource(resource); err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, resource)
	}
}

func handleListResources(catalog store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resources, err := catalog.ListResources()
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, resources)
	}
}

func handleShowResource(catalog store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resource, err := catalog.FetchResource(mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, resource)
	}
}

func handleRetireResource(catalog store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := catalog.RetireResource(mux.Vars(r)["id"]); err != nil {
			respondWithStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
