package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/regsight/regsight-core/internal/metrics"
	"github.com/regsight/regsight-core/internal/models"
	"github.com/regsight/regsight-core/internal/repo"
	"github.com/regsight/regsight-core/pkg/logger"
)

// CAPAService owns the corrective-action lifecycle: it validates drafts,
// assigns identities, and applies the register's write rules on top of the
// store.
type CAPAService struct {
	store   *repo.CAPAStore
	catalog *repo.RPICatalog
	logger  logger.Logger
	now     func() time.Time
}

func NewCAPAService(store *repo.CAPAStore, catalog *repo.RPICatalog, log logger.Logger) *CAPAService {
	return &CAPAService{
		store:   store,
		catalog: catalog,
		logger:  log,
		now:     time.Now,
	}
}

// Create validates the draft and inserts a new record. New records always
// enter the register as Open regardless of caller input; the id is a fresh
// uuid. On validation failure nothing is written and the failing fields are
// returned together.
func (s *CAPAService) Create(draft models.CAPADraft) (*models.CAPA, models.ValidationErrors) {
	if errs := ValidateCAPADraft(draft, s.now()); errs.HasErrors() {
		metrics.CAPAOperationsTotal.WithLabelValues("create", "invalid").Inc()
		return nil, errs
	}

	if s.catalog.Get(draft.RPIID) == nil {
		// Weak reference: renders as an unknown indicator downstream.
		s.logger.Warn("CAPA created against unknown indicator", "rpiId", draft.RPIID)
	}

	record := &models.CAPA{
		ID:         uuid.New().String(),
		RPIID:      draft.RPIID,
		RootCause:  draft.RootCause,
		ActionPlan: draft.ActionPlan,
		Owner:      draft.Owner,
		DueDate:    draft.DueDate,
		Status:     models.CAPAOpen,
	}
	s.store.Insert(record)

	metrics.CAPAOperationsTotal.WithLabelValues("create", "success").Inc()
	s.logger.Info("CAPA created", "id", record.ID, "rpiId", record.RPIID, "owner", record.Owner)
	return record, nil
}

// Update fully replaces the record with the given id. The update must pass
// the same rules as a fresh draft, and the status must be a known state.
// Returns repo.ErrCAPANotFound when the id is unknown; there is no upsert.
func (s *CAPAService) Update(id string, upd models.CAPAUpdate) (*models.CAPA, models.ValidationErrors, error) {
	errs := ValidateCAPADraft(upd.Draft(), s.now())
	if !upd.Status.Valid() {
		errs["status"] = "Status must be Open, Resolved, or Overdue."
	}
	if errs.HasErrors() {
		metrics.CAPAOperationsTotal.WithLabelValues("update", "invalid").Inc()
		return nil, errs, nil
	}

	record := &models.CAPA{
		ID:         id,
		RPIID:      upd.RPIID,
		RootCause:  upd.RootCause,
		ActionPlan: upd.ActionPlan,
		Owner:      upd.Owner,
		DueDate:    upd.DueDate,
		Status:     upd.Status,
	}
	if err := s.store.Replace(id, record); err != nil {
		metrics.CAPAOperationsTotal.WithLabelValues("update", "not_found").Inc()
		return nil, nil, err
	}

	metrics.CAPAOperationsTotal.WithLabelValues("update", "success").Inc()
	s.logger.Info("CAPA updated", "id", id, "status", record.Status)
	return record, nil, nil
}

// Delete removes the record. Unknown ids are a silent no-op.
func (s *CAPAService) Delete(id string) {
	s.store.Delete(id)
	metrics.CAPAOperationsTotal.WithLabelValues("delete", "success").Inc()
	s.logger.Info("CAPA deleted", "id", id)
}

// Get returns one record, or nil when unknown.
func (s *CAPAService) Get(id string) *models.CAPA {
	return s.store.Get(id)
}

// List returns records matching the filters in register order.
func (s *CAPAService) List(req models.CAPAListRequest) []*models.CAPA {
	return s.store.List(req)
}

// ListByRPI returns the records attached to one indicator.
func (s *CAPAService) ListByRPI(rpiID string) []*models.CAPA {
	return s.store.ListByRPI(rpiID)
}
