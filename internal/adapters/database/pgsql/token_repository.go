package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	"github.com/byildiz78/kd-cdc-sub000/internal/models"
	"github.com/byildiz78/kd-cdc-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type erpTokenRepository struct {
	pool *pgxpool.Pool
}

// NewERPTokenRepository creates a new repository for ERP bearer tokens.
func NewERPTokenRepository(pool *pgxpool.Pool) portsrepo.ERPTokenRepository {
	return &erpTokenRepository{pool: pool}
}

func (r *erpTokenRepository) Create(ctx context.Context, token *domain.ERPToken) error {
	query := `
		INSERT INTO erp_tokens (token_id, company_id, name, token_hash, last_used_at, expires_at, created_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	m := mapping.ToModelERPToken(*token)
	_, err := r.pool.Exec(ctx, query,
		m.TokenID,
		m.CompanyID,
		m.Name,
		m.TokenHash,
		m.LastUsedAt,
		m.ExpiresAt,
		m.CreatedAt,
		m.RevokedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create erp token %s: %w", token.TokenID, err)
	}
	return nil
}

func (r *erpTokenRepository) FindActiveTokens(ctx context.Context) ([]domain.ERPToken, error) {
	query := `
		SELECT token_id, company_id, name, token_hash, last_used_at, expires_at, created_at, revoked_at
		FROM erp_tokens
		WHERE revoked_at IS NULL
		  AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active erp tokens: %w", err)
	}
	defer rows.Close()

	tokens := []domain.ERPToken{}
	for rows.Next() {
		var m models.ERPToken
		if err := rows.Scan(
			&m.TokenID,
			&m.CompanyID,
			&m.Name,
			&m.TokenHash,
			&m.LastUsedAt,
			&m.ExpiresAt,
			&m.CreatedAt,
			&m.RevokedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan erp token row: %w", err)
		}
		tokens = append(tokens, mapping.ToDomainERPToken(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating erp token rows: %w", err)
	}
	return tokens, nil
}

func (r *erpTokenRepository) UpdateLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	query := `
		UPDATE erp_tokens
		SET last_used_at = $2
		WHERE token_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, tokenID, usedAt)
	if err != nil {
		return fmt.Errorf("failed to stamp erp token %s: %w", tokenID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *erpTokenRepository) Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error {
	query := `
		UPDATE erp_tokens
		SET revoked_at = $2
		WHERE token_id = $1 AND revoked_at IS NULL;
	`
	tag, err := r.pool.Exec(ctx, query, tokenID, revokedAt)
	if err != nil {
		return fmt.Errorf("failed to revoke erp token %s: %w", tokenID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
