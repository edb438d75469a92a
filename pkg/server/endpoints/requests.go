package endpoints

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/prabaj-wq/accessgov/pkg/config"
	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server"
	"github.com/prabaj-wq/accessgov/pkg/server/middleware"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
	"github.com/prabaj-wq/accessgov/pkg/workflow"
)

// CreateRequestBody is the body of a request submission
type CreateRequestBody struct {
	RequesterRole string `json:"requester_role"`
	Department    string `json:"department"`
	ResourceID    string `json:"resource_id"`
	AccessType    string `json:"access_type"`
	Priority      string `json:"priority"`
	Justification string `json:"justification"`
	DueAt         string `json:"due_at,omitempty"` // RFC 3339, optional
}

// DecisionBody is the body of an approve/reject call
type DecisionBody struct {
	Comment string `json:"comment"`
}

// EscalateBody is the body of an escalate call
type EscalateBody struct {
	Reason string `json:"reason"`
}

// BulkDispositionBody is the body of a bulk disposition call
type BulkDispositionBody struct {
	Action     string   `json:"action"` // "approve", "reject" or "escalate"
	RequestIDs []string `json:"request_ids"`
	Comment    string   `json:"comment"`
}

// DispositionResponse reports one request's outcome in a bulk disposition
type DispositionResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
}

// RegisterRequestsEndpoints registers the access request API endpoints
func RegisterRequestsEndpoints(s *server.Server) {
	engine := s.Engine
	requests := s.Stores.Requests

	identity := middleware.NewIdentityAuthenticator([]byte(os.Getenv("GOV_TOKEN_SECRET")))

	requestsRouter := s.Router.PathPrefix("/requests").Subrouter()
	requestsRouter.Use(identity.Middleware)

	requestsRouter.HandleFunc("", handleCreateRequest(engine)).Methods("POST")
	requestsRouter.HandleFunc("", handleListRequests(requests)).Methods("GET")
	requestsRouter.HandleFunc("/bulk", handleBulkDisposition(engine)).Methods("POST")
	requestsRouter.HandleFunc("/{id}", handleShowRequest(requests)).Methods("GET")
	requestsRouter.HandleFunc("/{id}/approve", handleDecision(engine, workflow.DecisionApprove)).Methods("POST")
	requestsRouter.HandleFunc("/{id}/reject", handleDecision(engine, workflow.DecisionReject)).Methods("POST")
	requestsRouter.HandleFunc("/{id}/escalate", handleEscalate(engine)).Methods("POST")
	requestsRouter.HandleFunc("/{id}/reassess", handleReassess(engine)).Methods("POST")
}

func handleCreateRequest(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateRequestBody
		if !decodeBody(w, r, &body) {
			return
		}

		var dueAt time.Time
		if body.DueAt != "" {
			parsed, err := time.Parse(time.RFC3339, body.DueAt)
			if err != nil {
				respondWithError(w, http.StatusUnprocessableEntity, "due_at must be RFC 3339")
				return
			}
			dueAt = parsed
		}

		req, err := engine.Create(workflow.CreateInput{
			Requester:     middleware.Identity(r),
			RequesterRole: body.RequesterRole,
			Department:    body.Department,
			ResourceID:    body.ResourceID,
			AccessType:    model.AccessType(body.AccessType),
			Priority:      model.Priority(body.Priority),
			Justification: body.Justification,
			DueAt:         dueAt,
		})
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, req)
	}
}

func handleListRequests(requests store.RequestsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var filter store.RequestFilter
		if statusParam := query.Get("status"); statusParam != "" {
			status, err := model.RequestStatusString(statusParam)
			if err != nil {
				respondWithError(w, http.StatusUnprocessableEntity, "unknown status")
				return
			}
			filter.Status = &status
		}
		filter.Priority = model.Priority(query.Get("priority"))
		filter.Department = query.Get("department")
		filter.AccessType = model.AccessType(query.Get("access_type"))
		filter.AssignedApprover = query.Get("assigned_approver")

		if fromParam := query.Get("from"); fromParam != "" {
			from, err := time.Parse(time.RFC3339, fromParam)
			if err != nil {
				respondWithError(w, http.StatusUnprocessableEntity, "from must be RFC 3339")
				return
			}
			filter.SubmittedFrom = &from
		}
		if untilParam := query.Get("until"); untilParam != "" {
			until, err := time.Parse(time.RFC3339, untilParam)
			if err != nil {
				respondWithError(w, http.StatusUnprocessableEntity, "until must be RFC 3339")
				return
			}
			filter.SubmittedUntil = &until
		}

		results, err := requests.ListRequests(filter)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		// The cap follows the live config so a reload takes effect without
		// a restart.
		limit := config.Get().APIListLimitMax
		if limitParam := query.Get("limit"); limitParam != "" {
			if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l < limit {
				limit = l
			}
		}
		if len(results) > limit {
			results = results[:limit]
		}
		respondWithJSON(w, http.StatusOK, results)
	}
}

func handleShowRequest(requests store.RequestsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := requests.FetchRequest(mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, req)
	}
}

func handleDecision(engine *workflow.Engine, decision workflow.Decision) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body DecisionBody
		if !decodeBody(w, r, &body) {
			return
		}

		requestID := mux.Vars(r)["id"]
		approver := middleware.Identity(r)

		var (
			req *model.AccessRequest
			err error
		)
		if decision == workflow.DecisionApprove {
			req, err = engine.Approve(requestID, approver, body.Comment)
		} else {
			req, err = engine.Reject(requestID, approver, body.Comment)
		}
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, req)
	}
}

func handleEscalate(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body EscalateBody
		if !decodeBody(w, r, &body) {
			return
		}
		if body.Reason == "" {
			body.Reason = "admin"
		}

		req, err := engine.Escalate(mux.Vars(r)["id"], middleware.Identity(r), body.Reason)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, req)
	}
}

func handleReassess(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := engine.Reassess(mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, req)
	}
}

func handleBulkDisposition(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body BulkDispositionBody
		if !decodeBody(w, r, &body) {
			return
		}
		if len(body.RequestIDs) == 0 {
			respondWithError(w, http.StatusUnprocessableEntity, "request_ids required")
			return
		}

		actor := middleware.Identity(r)

		var results []workflow.DispositionResult
		switch body.Action {
		case "approve":
			results = engine.BulkApprove(body.RequestIDs, actor, body.Comment)
		case "reject":
			results = engine.BulkReject(body.RequestIDs, actor, body.Comment)
		case "escalate":
			results = engine.BulkEscalate(body.RequestIDs, actor, body.Comment)
		default:
			respondWithError(w, http.StatusUnprocessableEntity, "action must be one of approve, reject, escalate")
			return
		}

		response := make([]DispositionResponse, 0, len(results))
		for _, result := range results {
			item := DispositionResponse{RequestID: result.RequestID}
			if result.Err != nil {
				item.Error = result.Err.Error()
			} else {
				item.Status = result.Status.String()
			}
			response = append(response, item)
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}
