// Package querylogs provides persistence for completed lookup attempts.
package querylogs

import (
	"context"

	"github.com/dmitrijs2005/cadastr/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, log *models.QueryLog) (*models.QueryLog, error)
	// List returns logs newest-first. An empty cadastralNumber means no filter.
	List(ctx context.Context, cadastralNumber string) ([]models.QueryLog, error)
}
