package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"

	"github.com/cezarfreitas/completa-hub/internal/entity"
)

type IntegrationRepository struct {
	DB *sql.DB
}

func NewIntegrationRepository(db *sql.DB) *IntegrationRepository {
	return &IntegrationRepository{DB: db}
}

const integrationColumns = `
	id, slug, name, plan_id, completa_api_url, completa_origin,
	n8n_webhook_url, n8n_config_url, notify_email,
	documentacao_api_url, documentacao_origin, documentacao_plan_id,
	active, created_at, updated_at
`

func (r *IntegrationRepository) Create(ctx context.Context, i *entity.Integration) error {
	query := `
		INSERT INTO integrations (
			id, slug, name, plan_id, completa_api_url, completa_origin,
			n8n_webhook_url, n8n_config_url, notify_email,
			documentacao_api_url, documentacao_origin, documentacao_plan_id,
			active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.DB.ExecContext(ctx, query,
		i.ID,
		i.Slug,
		i.Name,
		i.PlanID,
		i.CompletaAPIURL,
		i.CompletaOrigin,
		nullString(i.N8NWebhookURL),
		nullString(i.N8NConfigURL),
		nullString(i.NotifyEmail),
		nullString(i.DocumentacaoAPIURL),
		nullString(i.DocumentacaoOrigin),
		nullInt(i.DocumentacaoPlanID),
		i.Active,
		i.CreatedAt,
		i.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrSlugAlreadyExists
		}
		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	return nil
}

func (r *IntegrationRepository) FindBySlug(ctx context.Context, slug string) (*entity.Integration, error) {
	query := `SELECT ` + integrationColumns + ` FROM integrations WHERE slug = $1 AND active = true`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *IntegrationRepository) FindByID(ctx context.Context, id string) (*entity.Integration, error) {
	query := `SELECT ` + integrationColumns + ` FROM integrations WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *IntegrationRepository) ListActive(ctx context.Context) ([]*entity.Integration, error) {
	query := `SELECT ` + integrationColumns + ` FROM integrations WHERE active = true ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.Integration
	for rows.Next() {
		i, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

func (r *IntegrationRepository) ListSlugs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT slug FROM integrations WHERE active = true ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

func (r *IntegrationRepository) Update(ctx context.Context, i *entity.Integration) error {
	query := `
		UPDATE integrations SET
			name = $2, plan_id = $3, completa_api_url = $4, completa_origin = $5,
			n8n_webhook_url = $6, n8n_config_url = $7, notify_email = $8,
			documentacao_api_url = $9, documentacao_origin = $10, documentacao_plan_id = $11,
			active = $12, updated_at = now()
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		i.ID,
		i.Name,
		i.PlanID,
		i.CompletaAPIURL,
		i.CompletaOrigin,
		nullString(i.N8NWebhookURL),
		nullString(i.N8NConfigURL),
		nullString(i.NotifyEmail),
		nullString(i.DocumentacaoAPIURL),
		nullString(i.DocumentacaoOrigin),
		nullInt(i.DocumentacaoPlanID),
		i.Active,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrIntegrationNotFound
	}
	return nil
}

// Deactivate é o soft delete: active=false, o registro fica para histórico.
func (r *IntegrationRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE integrations SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrIntegrationNotFound
	}
	return nil
}

func (r *IntegrationRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM integrations`).Scan(&count)
	return count, err
}

func (r *IntegrationRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM integrations WHERE active = true`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *IntegrationRepository) scanOne(row rowScanner) (*entity.Integration, error) {
	var i entity.Integration
	var n8nWebhook, n8nConfig, notifyEmail, docURL, docOrigin sql.NullString
	var docPlanID sql.NullInt64

	err := row.Scan(
		&i.ID,
		&i.Slug,
		&i.Name,
		&i.PlanID,
		&i.CompletaAPIURL,
		&i.CompletaOrigin,
		&n8nWebhook,
		&n8nConfig,
		&notifyEmail,
		&docURL,
		&docOrigin,
		&docPlanID,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrIntegrationNotFound
		}
		return nil, err
	}

	i.N8NWebhookURL = n8nWebhook.String
	i.N8NConfigURL = n8nConfig.String
	i.NotifyEmail = notifyEmail.String
	i.DocumentacaoAPIURL = docURL.String
	i.DocumentacaoOrigin = docOrigin.String
	if docPlanID.Valid {
		v := int(docPlanID.Int64)
		i.DocumentacaoPlanID = &v
	}

	return &i, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
