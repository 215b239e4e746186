package querylogs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cadastr/internal/dbx"
	"github.com/dmitrijs2005/cadastr/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, log *models.QueryLog) (*models.QueryLog, error) {

	query :=
		`INSERT INTO query_logs (id, cadastral_number, latitude, longitude, external_server_response)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING created_at
         `

	err := r.db.QueryRowContext(ctx, query,
		log.ID, log.CadastralNumber, log.Latitude, log.Longitude, log.ExternalServerResponse).
		Scan(&log.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return log, nil
}

// List returns logs ordered newest-first. The id tiebreak keeps repeated
// reads stable when timestamps collide.
func (r *PostgresRepository) List(ctx context.Context, cadastralNumber string) ([]models.QueryLog, error) {

	query :=
		`SELECT id, cadastral_number, latitude, longitude, external_server_response, created_at FROM query_logs
         ORDER BY created_at DESC, id
         `
	args := []any{}

	if cadastralNumber != "" {
		query =
			`SELECT id, cadastral_number, latitude, longitude, external_server_response, created_at FROM query_logs
             WHERE cadastral_number = $1
             ORDER BY created_at DESC, id
             `
		args = append(args, cadastralNumber)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	logs := []models.QueryLog{}
	for rows.Next() {
		var l models.QueryLog
		if err := rows.Scan(&l.ID, &l.CadastralNumber, &l.Latitude, &l.Longitude,
			&l.ExternalServerResponse, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return logs, nil
}
