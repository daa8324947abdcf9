package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/expensekeeper/internal/common"
	"github.com/dmitrijs2005/expensekeeper/internal/dbx"
	"github.com/dmitrijs2005/expensekeeper/internal/logging"
	"github.com/dmitrijs2005/expensekeeper/internal/server/models"
	"github.com/dmitrijs2005/expensekeeper/internal/server/repositories/repomanager"
)

// EntryService is the application-facing API over receipt entries.
type EntryService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewEntryService(db dbx.DBTX, repomanager repomanager.RepositoryManager, logger logging.Logger) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: repomanager,
		logger:      logger.With("module", "entry_service"),
	}
}

// List returns entries matching filter, newest purchase first.
func (s *EntryService) List(ctx context.Context, filter models.EntryFilter) ([]*models.Entry, error) {
	return s.repomanager.Entries(s.db).FindAll(ctx, filter)
}

// Get returns a single entry or common.ErrNotFound.
func (s *EntryService) Get(ctx context.Context, id int64) (*models.Entry, error) {
	return s.repomanager.Entries(s.db).FindByID(ctx, id)
}

// Create stores a new entry. Omitted fields take their column defaults;
// a missing store name is stored as NULL rather than rejected.
func (s *EntryService) Create(ctx context.Context, fields *models.EntryFields) (*models.Entry, error) {
	if fields == nil {
		fields = &models.EntryFields{}
	}

	entry, err := s.repomanager.Entries(s.db).Insert(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	if entry.StoreName == nil {
		s.logger.Warn(ctx, "Entry created without store name", "entry_id", entry.ID)
	}
	s.logger.Info(ctx, "Entry created", "entry_id", entry.ID)
	return entry, nil
}

// Update replaces every editable field of entry id. Fields the caller
// leaves out are reset to their defaults; there is no partial update.
// Concurrent updates are not serialised, the last write wins.
func (s *EntryService) Update(ctx context.Context, id int64, fields *models.EntryFields) (*models.Entry, error) {
	if fields == nil {
		fields = &models.EntryFields{}
	}

	entry, err := s.repomanager.Entries(s.db).Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "Update of missing entry", "entry_id", id)
		}
		return nil, fmt.Errorf("error updating entry: %w", err)
	}

	s.logger.Info(ctx, "Entry updated", "entry_id", entry.ID, "approved", entry.Approved)
	return entry, nil
}
