package gorm

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// Ensure RequestsStore implements store.RequestsStore
var _ store.RequestsStore = (*RequestsStore)(nil)

// RequestsStore implements store.RequestsStore using GORM
type RequestsStore struct {
	db *gorm.DB
}

// NewRequestsStore creates a new RequestsStore
func NewRequestsStore(db *gorm.DB) *RequestsStore {
	return &RequestsStore{db: db}
}

// CreateRequest validates required fields and persists a request with its
// chain and risk factors.
func (s *RequestsStore) CreateRequest(req *model.AccessRequest) error {
	if err := store.ValidateNewRequest(req); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if !resourceExists(tx, req.ResourceID) {
			return &store.NotFoundError{Kind: "resource", ID: req.ResourceID}
		}
		if requestExists(tx, req.RequestID) {
			return &store.ConflictError{Kind: "request", ID: req.RequestID}
		}
		return tx.Create(req).Error
	})
}

func requestExists(db *gorm.DB, requestID string) bool {
	var exists bool
	db.Raw(`SELECT EXISTS(SELECT 1 FROM access_requests WHERE request_id = ?)`, requestID).Scan(&exists)
	return exists
}

// FetchRequest retrieves a request with chain and factors, ordered by
// step/factor position.
func (s *RequestsStore) FetchRequest(requestID string) (*model.AccessRequest, error) {
	return fetchRequest(s.db, requestID)
}

func fetchRequest(db *gorm.DB, requestID string) (*model.AccessRequest, error) {
	var req model.AccessRequest
	err := db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Factors", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&req, "request_id = ?", requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &store.NotFoundError{Kind: "request", ID: requestID}
		}
		return nil, err
	}
	return &req, nil
}

// ListRequests returns requests matching the filter, newest first.
func (s *RequestsStore) ListRequests(filter store.RequestFilter) ([]model.AccessRequest, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query := s.db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Factors", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Order("submitted_at DESC, request_id")

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.AccessType != "" {
		query = query.Where("access_type = ?", filter.AccessType)
	}
	if filter.SubmittedFrom != nil {
		query = query.Where("submitted_at >= ?", *filter.SubmittedFrom)
	}
	if filter.SubmittedUntil != nil {
		query = query.Where("submitted_at < ?", *filter.SubmittedUntil)
	}

	requests := []model.AccessRequest{}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}

	if filter.AssignedApprover == "" {
		return requests, nil
	}
	matched := requests[:0]
	for _, req := range requests {
		if store.CurrentApprover(&req) == filter.AssignedApprover {
			matched = append(matched, req)
		}
	}
	return matched, nil
}

// UpdateDecision persists a new status and chain for a request iff its
// version still equals expectedVersion.
func (s *RequestsStore) UpdateDecision(requestID string, expectedVersion int, status model.RequestStatus, steps []model.ApprovalStep) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := casUpdate(tx, requestID, expectedVersion, map[string]interface{}{
			"status": status.String(),
		}); err != nil {
			return err
		}
		if steps == nil {
			return nil
		}
		if err := tx.Exec(`DELETE FROM approval_steps WHERE request_id = ?`, requestID).Error; err != nil {
			return err
		}
		for i := range steps {
			steps[i].ID = 0
			steps[i].RequestID = requestID
		}
		return tx.Create(&steps).Error
	})
}

// UpdateAssessment replaces a request's risk assessment, CAS-guarded the
// same way as UpdateDecision.
func (s *RequestsStore) UpdateAssessment(requestID string, expectedVersion int, score int, level model.RiskLevel, factors []model.RiskFactor) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := casUpdate(tx, requestID, expectedVersion, map[string]interface{}{
			"risk_score": score,
			"risk_level": string(level),
		}); err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM risk_factors WHERE request_id = ?`, requestID).Error; err != nil {
			return err
		}
		if len(factors) == 0 {
			return nil
		}
		for i := range factors {
			factors[i].ID = 0
			factors[i].RequestID = requestID
			factors[i].Position = i
		}
		return tx.Create(&factors).Error
	})
}

// casUpdate applies column updates guarded by the optimistic version stamp,
// bumping the version on success. A stale version surfaces as ConflictError,
// a missing row as NotFoundError.
func casUpdate(tx *gorm.DB, requestID string, expectedVersion int, updates map[string]interface{}) error {
	updates["version"] = gorm.Expr("version + 1")
	result := tx.Model(&model.AccessRequest{}).
		Where("request_id = ? AND version = ?", requestID, expectedVersion).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if requestExists(tx, requestID) {
			return &store.ConflictError{Kind: "request", ID: requestID}
		}
		return &store.NotFoundError{Kind: "request", ID: requestID}
	}
	return nil
}

// ListOverdue returns requests still pending whose due timestamp has passed
// at the supplied instant.
func (s *RequestsStore) ListOverdue(now time.Time) ([]model.AccessRequest, error) {
	requests := []model.AccessRequest{}
	err := s.db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("status = ? AND due_at <= ?", model.StatusPending.String(), now).
		Order("due_at").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
