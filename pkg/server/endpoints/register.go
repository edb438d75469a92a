package endpoints

import (
	"github.com/prabaj-wq/accessgov/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterCatalogEndpoints(srv)
	RegisterGrantsEndpoints(srv)
	RegisterRequestsEndpoints(srv)
	RegisterComplianceEndpoints(srv)
}
