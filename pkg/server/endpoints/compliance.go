package endpoints

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/prabaj-wq/accessgov/pkg/audit"
	"github.com/prabaj-wq/accessgov/pkg/compliance"
	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server"
	"github.com/prabaj-wq/accessgov/pkg/server/middleware"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// ViolationRequest is the body of a violation ingest call
type ViolationRequest struct {
	ViolationID     string `json:"violation_id"`
	Title           string `json:"title"`
	Severity        string `json:"severity"`
	Framework       string `json:"framework"`
	Department      string `json:"department"`
	User            string `json:"user"`
	System          string `json:"system"`
	RiskScore       int    `json:"risk_score"`
	DetectedAt      string `json:"detected_at,omitempty"` // RFC 3339, defaults to now
	AffectedRecords int    `json:"affected_records"`
}

// ViolationStatusRequest is the body of a violation status update
type ViolationStatusRequest struct {
	Status string `json:"status"`
}

// RegisterComplianceEndpoints registers the violation and metric API
// endpoints
func RegisterComplianceEndpoints(s *server.Server) {
	violations := s.Stores.Violations
	metrics := s.Stores.Metrics
	aggregator := s.Aggregator

	identity := middleware.NewIdentityAuthenticator([]byte(os.Getenv("GOV_TOKEN_SECRET")))

	violationsRouter := s.Router.PathPrefix("/violations").Subrouter()
	violationsRouter.Use(identity.Middleware)
	violationsRouter.HandleFunc("", handleRecordViolation(violations)).Methods("POST")
	violationsRouter.HandleFunc("", handleListViolations(violations)).Methods("GET")
	violationsRouter.HandleFunc("/{id}", handleShowViolation(violations)).Methods("GET")
	violationsRouter.HandleFunc("/{id}/status", handleViolationStatus(violations)).Methods("PUT")

	complianceRouter := s.Router.PathPrefix("/compliance").Subrouter()
	complianceRouter.Use(identity.Middleware)
	complianceRouter.HandleFunc("/metrics", handleLatestMetrics(metrics)).Methods("GET")
	complianceRouter.HandleFunc("/metrics/{framework}", handleShowMetric(metrics)).Methods("GET")
	complianceRouter.HandleFunc("/recompute", handleRecompute(aggregator)).Methods("POST")
}

func handleRecordViolation(violations store.ViolationsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ViolationRequest
		if !decodeBody(w, r, &body) {
			return
		}

		detectedAt := time.Now()
		if body.DetectedAt != "" {
			parsed, err := time.Parse(time.RFC3339, body.DetectedAt)
			if err != nil {
				respondWithError(w, http.StatusUnprocessableEntity, "detected_at must be RFC 3339")
				return
			}
			detectedAt = parsed
		}

		v := &model.Violation{
			ViolationID:     body.ViolationID,
			Title:           body.Title,
			Severity:        model.Severity(body.Severity),
			Framework:       body.Framework,
			Department:      body.Department,
			User:            body.User,
			System:          body.System,
			RiskScore:       body.RiskScore,
			Status:          model.ViolationOpen,
			DetectedAt:      detectedAt,
			AffectedRecords: body.AffectedRecords,
		}
		if err := violations.RecordViolation(v); err != nil {
			respondWithStoreError(w, err)
			return
		}

		audit.Log(audit.ViolationEvent{
			ViolationID: v.ViolationID,
			Framework:   v.Framework,
			Sev:         string(v.Severity),
			Status:      string(v.Status),
			Actor:       middleware.Identity(r),
		})
		respondWithJSON(w, http.StatusCreated, v)
	}
}

func handleListViolations(violations store.ViolationsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		from := time.Time{}
		until := time.Now().Add(time.Hour)
		if fromParam := query.Get("from"); fromParam != "" {
			parsed, err := time.Parse(time.RFC3339, fromParam)
			if err != nil {
				respondWithError(w, http.StatusUnprocessableEntity, "from must be RFC 3339")
				return
			}
			from = parsed
		}
		if untilParam := query.Get("until"); untilParam != "" {
			parsed, err := time.Parse(time.RFC3339, untilParam)
			if err != nil {
				respondWithError(w, http.StatusUnprocessableEntity, "until must be RFC 3339")
				return
			}
			until = parsed
		}

		results, err := violations.ListViolations(query.Get("framework"), from, until)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, results)
	}
}

func handleShowViolation(violations store.ViolationsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := violations.FetchViolation(mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, v)
	}
}

func handleViolationStatus(violations store.ViolationsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ViolationStatusRequest
		if !decodeBody(w, r, &body) {
			return
		}

		violationID := mux.Vars(r)["id"]
		if err := violations.UpdateViolationStatus(violationID, model.ViolationStatus(body.Status)); err != nil {
			respondWithStoreError(w, err)
			return
		}

		v, err := violations.FetchViolation(violationID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		audit.Log(audit.ViolationEvent{
			ViolationID: v.ViolationID,
			Framework:   v.Framework,
			Sev:         string(v.Severity),
			Status:      string(v.Status),
			Actor:       middleware.Identity(r),
		})
		respondWithJSON(w, http.StatusOK, v)
	}
}

func handleLatestMetrics(metrics store.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		latest, err := metrics.LatestMetrics()
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, latest)
	}
}

func handleShowMetric(metrics store.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		framework := mux.Vars(r)["framework"]

		periodParam := r.URL.Query().Get("period_start")
		if periodParam == "" {
			latest, err := metrics.LatestMetrics()
			if err != nil {
				respondWithStoreError(w, err)
				return
			}
			for _, m := range latest {
				if m.Framework == framework {
					respondWithJSON(w, http.StatusOK, m)
					return
				}
			}
			respondWithStoreError(w, &store.NotFoundError{Kind: "metric", ID: framework})
			return
		}

		periodStart, err := time.Parse(time.RFC3339, periodParam)
		if err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, "period_start must be RFC 3339")
			return
		}
		m, err := metrics.FetchMetric(framework, periodStart)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, m)
	}
}

func handleRecompute(aggregator *compliance.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if framework := r.URL.Query().Get("framework"); framework != "" {
			metric, err := aggregator.Recompute(r.Context(), framework)
			if err != nil {
				respondWithStoreError(w, err)
				return
			}
			respondWithJSON(w, http.StatusOK, metric)
			return
		}

		metrics, err := aggregator.RecomputeAll(r.Context())
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, metrics)
	}
}
