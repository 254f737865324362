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
)

const transactionColumns = `transaction_id, user_id, description, amount, type, txn_date, month_group, created_at, updated_at`

// Creates the summary at zero and adds the delta in one statement, so
// concurrent first transactions of a month converge.
const upsertSummaryDeltaQuery = `
	INSERT INTO month_summaries (
		summary_id, user_id, month_group, initial_balance,
		total_expenses, total_credits, current_balance, created_at, updated_at
	)
	VALUES ($1, $2, $3, 0, $4, $5, $6, $7, $7)
	ON CONFLICT (user_id, month_group) DO UPDATE SET
		total_expenses  = month_summaries.total_expenses + EXCLUDED.total_expenses,
		total_credits   = month_summaries.total_credits + EXCLUDED.total_credits,
		current_balance = month_summaries.current_balance + EXCLUDED.current_balance,
		updated_at      = EXCLUDED.updated_at;
`

// Reversals never create a summary.
const updateSummaryDeltaQuery = `
	UPDATE month_summaries SET
		total_expenses  = total_expenses + $3,
		total_credits   = total_credits + $4,
		current_balance = current_balance + $5,
		updated_at      = $6
	WHERE user_id = $1 AND month_group = $2;
`

type PgxTransactionRepository struct {
	BaseRepository
	now func() time.Time
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		now:            time.Now,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// SaveTransaction inserts the transaction and applies delta to its month
// summary within one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, delta domain.SummaryDelta) error {
	modelTxn, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if the transaction is committed successfully
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelTxn.TransactionID,
		modelTxn.UserID,
		modelTxn.Description,
		modelTxn.Amount,
		modelTxn.Type,
		modelTxn.TxnDate,
		modelTxn.MonthGroup,
		modelTxn.CreatedAt,
		modelTxn.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	_, err = tx.Exec(ctx, upsertSummaryDeltaQuery,
		uuid.NewString(),
		modelTxn.UserID,
		modelTxn.MonthGroup,
		delta.Expenses,
		delta.Credits,
		delta.Balance,
		modelTxn.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply summary delta for month "+modelTxn.MonthGroup, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the owner's transaction and reverses its delta on
// the month summary within one database transaction. If the summary row is
// missing the deletion still commits and the returned error wraps
// apperrors.ErrInconsistentSummary alongside the removed transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	deleteQuery := `
		DELETE FROM transactions
		WHERE transaction_id = $1 AND user_id = $2
		RETURNING ` + transactionColumns + `;
	`
	rows, err := tx.Query(ctx, deleteQuery, transactionID, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	modelTxn, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan deleted transaction "+transactionID, err)
	}

	removed := mapping.ToDomainTransaction(modelTxn)
	inverse := removed.Delta().Inverse()

	tag, err := tx.Exec(ctx, updateSummaryDeltaQuery,
		userID,
		removed.MonthGroup,
		inverse.Expenses,
		inverse.Credits,
		inverse.Balance,
		r.now(),
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to reverse summary delta for month "+removed.MonthGroup, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	if tag.RowsAffected() == 0 {
		return &removed, fmt.Errorf("%w: no summary for month %s", apperrors.ErrInconsistentSummary, removed.MonthGroup)
	}
	return &removed, nil
}

// FindTransactionByID retrieves the owner's transaction by ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND user_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %s: %w", transactionID, err)
	}
	modelTxn, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// ListTransactionsByMonth retrieves the owner's transactions for a month in
// creation order; seq breaks ties between identical timestamps.
func (r *PgxTransactionRepository) ListTransactionsByMonth(ctx context.Context, userID, monthGroup string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND month_group = $2
		ORDER BY created_at ASC, seq ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, monthGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for month %s: %w", monthGroup, err)
	}

	modelTxns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions for month %s: %w", monthGroup, err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// DeleteTransactionsBefore deletes the owner's transactions older than cutoff.
func (r *PgxTransactionRepository) DeleteTransactionsBefore(ctx context.Context, userID, cutoff string) (int64, error) {
	query := `DELETE FROM transactions WHERE user_id = $1 AND month_group < $2;`
	tag, err := r.Pool.Exec(ctx, query, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions before %s: %w", cutoff, err)
	}
	return tag.RowsAffected(), nil
}
