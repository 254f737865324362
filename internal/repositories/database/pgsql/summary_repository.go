package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const summaryColumns = `summary_id, user_id, month_group, initial_balance, total_expenses, total_credits, current_balance, created_at, updated_at`

type PgxSummaryRepository struct {
	BaseRepository
}

// newPgxSummaryRepository creates a new repository for month summaries.
func newPgxSummaryRepository(pool *pgxpool.Pool) portsrepo.SummaryRepositoryFacade {
	return &PgxSummaryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SummaryRepositoryFacade = (*PgxSummaryRepository)(nil)

// FindSummary retrieves the owner's summary for a month.
func (r *PgxSummaryRepository) FindSummary(ctx context.Context, userID, monthGroup string) (*domain.MonthSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM month_summaries
		WHERE user_id = $1 AND month_group = $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, monthGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary for month %s: %w", monthGroup, err)
	}
	modelSummary, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.MonthSummary])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan summary for month %s: %w", monthGroup, err)
	}

	summary := mapping.ToDomainMonthSummary(modelSummary)
	return &summary, nil
}

// ListSummaries retrieves all of the owner's summaries, newest month first.
func (r *PgxSummaryRepository) ListSummaries(ctx context.Context, userID string) ([]domain.MonthSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM month_summaries
		WHERE user_id = $1
		ORDER BY month_group DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}

	modelSummaries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MonthSummary])
	if err != nil {
		return nil, fmt.Errorf("failed to scan summaries: %w", err)
	}

	return mapping.ToDomainMonthSummarySlice(modelSummaries), nil
}

// UpsertInitialBalance sets initial_balance, creating the summary at zero if
// absent. current_balance is re-derived only when recompute is true.
func (r *PgxSummaryRepository) UpsertInitialBalance(ctx context.Context, userID, monthGroup string, initialBalance decimal.Decimal, recompute bool, now time.Time) (*domain.MonthSummary, error) {
	query := `
		INSERT INTO month_summaries (` + summaryColumns + `)
		VALUES ($1, $2, $3, $4::numeric, 0, 0, CASE WHEN $5::boolean THEN $4::numeric ELSE 0 END, $6, $6)
		ON CONFLICT (user_id, month_group) DO UPDATE SET
			initial_balance = EXCLUDED.initial_balance,
			current_balance = CASE
				WHEN $5::boolean THEN EXCLUDED.initial_balance + month_summaries.total_credits - month_summaries.total_expenses
				ELSE month_summaries.current_balance
			END,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + summaryColumns + `;
	`
	rows, err := r.Pool.Query(ctx, query, uuid.NewString(), userID, monthGroup, initialBalance, recompute, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert initial balance for month "+monthGroup, err)
	}
	modelSummary, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.MonthSummary])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan upserted summary for month "+monthGroup, err)
	}

	summary := mapping.ToDomainMonthSummary(modelSummary)
	return &summary, nil
}

// DeleteSummariesBefore deletes the owner's summaries older than cutoff.
func (r *PgxSummaryRepository) DeleteSummariesBefore(ctx context.Context, userID, cutoff string) (int64, error) {
	query := `DELETE FROM month_summaries WHERE user_id = $1 AND month_group < $2;`
	tag, err := r.Pool.Exec(ctx, query, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete summaries before %s: %w", cutoff, err)
	}
	return tag.RowsAffected(), nil
}
