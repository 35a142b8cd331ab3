// internal/repository/postgres/alert_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
)

type alertRepository struct {
	db *DB
}

func NewAlertRepository(db *DB) repository.AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) FindUnresolved(ctx context.Context, productID int64, kind domain.AlertKind) (*domain.Alert, error) {
	query := `
		SELECT id, product_id, kind, message, generated_at, resolved
		FROM alerts
		WHERE product_id = $1 AND kind = $2 AND NOT resolved
	`

	var alert domain.Alert
	err := r.db.GetContext(ctx, &alert, query, productID, kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding unresolved %s alert for product %d: %w", kind, productID, err)
	}
	return &alert, nil
}

func (r *alertRepository) Insert(ctx context.Context, alert *domain.Alert) error {
	// The partial unique index on (product_id, kind) WHERE NOT resolved makes
	// a racing double-insert fail loudly instead of duplicating.
	query := `
		INSERT INTO alerts (product_id, kind, message, generated_at, resolved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		alert.ProductID, alert.Kind, alert.Message, alert.GeneratedAt, alert.Resolved,
	).Scan(&alert.ID)
	if err != nil {
		return fmt.Errorf("error inserting alert: %w", err)
	}
	return nil
}

func (r *alertRepository) Update(ctx context.Context, alert *domain.Alert) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET message = $2, generated_at = $3 WHERE id = $1`,
		alert.ID, alert.Message, alert.GeneratedAt)
	if err != nil {
		return fmt.Errorf("error updating alert %d: %w", alert.ID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}

func (r *alertRepository) MarkResolved(ctx context.Context, id int64) error {
	// Missing ids affect zero rows, keeping resolution idempotent.
	if _, err := r.db.ExecContext(ctx, `UPDATE alerts SET resolved = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error resolving alert %d: %w", id, err)
	}
	return nil
}

func (r *alertRepository) List(ctx context.Context) ([]domain.Alert, error) {
	query := `
		SELECT a.id, a.product_id, p.name AS product_name, a.kind, a.message, a.generated_at, a.resolved
		FROM alerts a
		JOIN products p ON p.id = a.product_id
		ORDER BY a.generated_at DESC
	`

	var alerts []domain.Alert
	if err := r.db.SelectContext(ctx, &alerts, query); err != nil {
		return nil, fmt.Errorf("error listing alerts: %w", err)
	}
	return alerts, nil
}

func (r *alertRepository) TopUnresolved(ctx context.Context, limit int) ([]domain.Alert, error) {
	query := `
		SELECT a.id, a.product_id, p.name AS product_name, a.kind, a.message, a.generated_at, a.resolved
		FROM alerts a
		JOIN products p ON p.id = a.product_id
		WHERE NOT a.resolved
		ORDER BY a.generated_at DESC
		LIMIT $1
	`

	var alerts []domain.Alert
	if err := r.db.SelectContext(ctx, &alerts, query, limit); err != nil {
		return nil, fmt.Errorf("error listing top unresolved alerts: %w", err)
	}
	return alerts, nil
}

func (r *alertRepository) DistributionByKind(ctx context.Context) ([]domain.AlertDistribution, error) {
	query := `
		SELECT kind, COUNT(*) AS count
		FROM alerts
		WHERE NOT resolved
		GROUP BY kind
	`

	var dist []domain.AlertDistribution
	if err := r.db.SelectContext(ctx, &dist, query); err != nil {
		return nil, fmt.Errorf("error getting alert distribution: %w", err)
	}
	return dist, nil
}
