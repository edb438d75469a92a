package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/prabaj-wq/accessgov/pkg/compliance"
	"github.com/prabaj-wq/accessgov/pkg/config"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
	"github.com/prabaj-wq/accessgov/pkg/workflow"
)

// Stores bundles the persistence interfaces the server serves from. Both
// the database and the in-memory backend satisfy all of them.
type Stores struct {
	Catalog    store.CatalogStore
	Grants     store.GrantsStore
	Requests   store.RequestsStore
	Violations store.ViolationsStore
	Metrics    store.MetricsStore
	Health     store.HealthStore
}

type Server struct {
	Router     *mux.Router
	DB         *gorm.DB
	Stores     Stores
	Engine     *workflow.Engine
	Aggregator *compliance.Aggregator
	Config     *config.GovConfig
	srv        *http.Server
}

func NewServer(
	stores Stores,
	engine *workflow.Engine,
	aggregator *compliance.Aggregator,
	cfg *config.GovConfig,
	db *gorm.DB,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:     router,
		DB:         db,
		Stores:     stores,
		Engine:     engine,
		Aggregator: aggregator,
		Config:     cfg,
		srv:        srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
