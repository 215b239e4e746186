package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cadastr/internal/common"
	"github.com/dmitrijs2005/cadastr/internal/dbx"
	"github.com/dmitrijs2005/cadastr/internal/server/external"
	"github.com/dmitrijs2005/cadastr/internal/server/models"
	"github.com/dmitrijs2005/cadastr/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// QueryService implements the lookup pipeline (forward to the provider, log
// the outcome) and history retrieval. The active-user requirement on these
// operations is enforced at the HTTP boundary, not re-checked here.
type QueryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	lookup      external.Client
}

// NewQueryService constructs a QueryService.
func NewQueryService(db *sql.DB, m repomanager.RepositoryManager, lookup external.Client) *QueryService {
	return &QueryService{db: db, repomanager: m, lookup: lookup}
}

// Process forwards the query to the provider exactly once. Found and
// NotFound outcomes are persisted and returned; an unavailable provider
// aborts without writing anything, so every stored row corresponds to one
// completed provider call.
func (s *QueryService) Process(ctx context.Context, cadastralNumber string, latitude, longitude float64) (*models.QueryLog, error) {

	result, err := s.lookup.Lookup(ctx, cadastralNumber, latitude, longitude)
	if err != nil {
		return nil, err
	}

	log := &models.QueryLog{
		ID:                     uuid.NewString(),
		CadastralNumber:        cadastralNumber,
		Latitude:               latitude,
		Longitude:              longitude,
		ExternalServerResponse: result.Payload,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.QueryLogs(tx)
		var createErr error
		log, createErr = repo.Create(ctx, log)
		return createErr
	}); err != nil {
		return nil, common.ErrorInternal
	}

	return log, nil
}

// History returns logged queries newest-first. A filtered request with no
// matches is ErrorNotFound; an unfiltered empty history is a valid empty
// list.
func (s *QueryService) History(ctx context.Context, cadastralNumber string) ([]models.QueryLog, error) {
	repo := s.repomanager.QueryLogs(s.db)

	logs, err := repo.List(ctx, cadastralNumber)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if len(logs) == 0 && cadastralNumber != "" {
		return nil, common.ErrorNotFound
	}

	return logs, nil
}
