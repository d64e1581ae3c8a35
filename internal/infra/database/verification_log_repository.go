package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/cezarfreitas/completa-hub/internal/entity"
)

type VerificationLogRepository struct {
	DB *sql.DB
}

func NewVerificationLogRepository(db *sql.DB) *VerificationLogRepository {
	return &VerificationLogRepository{DB: db}
}

func (r *VerificationLogRepository) Create(ctx context.Context, l *entity.VerificationLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	if l.Type == "" {
		l.Type = entity.LogTypeViabilidade
	}

	query := `
		INSERT INTO verification_logs (id, integration_slug, type, request, response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		l.ID,
		l.IntegrationSlug,
		l.Type,
		[]byte(l.Request),
		[]byte(l.Response),
		l.CreatedAt,
	)
	return err
}

// List devolve os logs mais recentes primeiro. Slug vazio = todos.
func (r *VerificationLogRepository) List(ctx context.Context, slug string, limit int) ([]*entity.VerificationLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	query := `
		SELECT id, integration_slug, type, request, response, created_at
		FROM verification_logs
		WHERE ($1 = '' OR integration_slug = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, slug, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*entity.VerificationLog
	for rows.Next() {
		var l entity.VerificationLog
		var request, response []byte
		if err := rows.Scan(&l.ID, &l.IntegrationSlug, &l.Type, &request, &response, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Request = request
		l.Response = response
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

// TodayStats agrega os logs desde a meia-noite local. Sucesso = resposta com
// Cobertura e sem chave "error"; erro = resposta com chave "error". O mesmo
// critério do dashboard original.
func (r *VerificationLogRepository) TodayStats(ctx context.Context) (total, success, errors int, err error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE response ? 'Cobertura' AND NOT response ? 'error'),
			COUNT(*) FILTER (WHERE response ? 'error')
		FROM verification_logs
		WHERE created_at >= date_trunc('day', now())
	`

	err = r.DB.QueryRowContext(ctx, query).Scan(&total, &success, &errors)
	return total, success, errors, err
}

// StatsByDay agrupa por dia desde a data dada. Dias sem logs não aparecem;
// o chamador preenche os buracos.
func (r *VerificationLogRepository) StatsByDay(ctx context.Context, since time.Time) ([]entity.DayStats, error) {
	query := `
		SELECT
			to_char(created_at, 'YYYY-MM-DD') AS day,
			COUNT(*),
			COUNT(*) FILTER (WHERE response ? 'Cobertura' AND NOT response ? 'error'),
			COUNT(*) FILTER (WHERE response ? 'error')
		FROM verification_logs
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []entity.DayStats
	for rows.Next() {
		var d entity.DayStats
		if err := rows.Scan(&d.Date, &d.Total, &d.Success, &d.Errors); err != nil {
			return nil, err
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}
