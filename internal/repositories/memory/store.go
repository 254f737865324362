// Package memory holds the process-local storage backend. It keeps the same
// guarantees as the PostgreSQL backend: a transaction write and its summary
// delta happen under one lock, so readers never observe one without the other.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type summaryKey struct {
	userID     string
	monthGroup string
}

type storedTransaction struct {
	seq uint64
	txn domain.Transaction
}

type Store struct {
	mu        sync.Mutex
	seq       uint64
	txns      map[string]storedTransaction
	summaries map[summaryKey]domain.MonthSummary
	now       func() time.Time
}

func New() *Store {
	return &Store{
		txns:      map[string]storedTransaction{},
		summaries: map[summaryKey]domain.MonthSummary{},
		now:       time.Now,
	}
}

var (
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.SummaryRepositoryFacade     = (*Store)(nil)
)

// NewRepositoryProvider backs every repository with one shared Store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	s := New()
	return portsrepo.RepositoryProvider{
		TransactionRepo: s,
		SummaryRepo:     s,
	}
}

// SaveTransaction stores txn and applies delta to its month summary.
func (s *Store) SaveTransaction(_ context.Context, txn domain.Transaction, delta domain.SummaryDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.txns[txn.TransactionID]; exists {
		return fmt.Errorf("transaction %s already exists", txn.TransactionID)
	}
	s.seq++
	s.txns[txn.TransactionID] = storedTransaction{seq: s.seq, txn: txn}

	key := summaryKey{userID: txn.UserID, monthGroup: txn.MonthGroup}
	summary, ok := s.summaries[key]
	if !ok {
		summary = domain.NewMonthSummary(uuid.NewString(), txn.UserID, txn.MonthGroup, txn.CreatedAt)
	}
	summary.Apply(delta, txn.CreatedAt)
	s.summaries[key] = summary
	return nil
}

// DeleteTransaction removes the owner's transaction and reverses its delta.
// A missing summary is reported with apperrors.ErrInconsistentSummary after
// the transaction has been removed.
func (s *Store) DeleteTransaction(_ context.Context, userID, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.txns[transactionID]
	if !ok || stored.txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	delete(s.txns, transactionID)

	removed := stored.txn
	key := summaryKey{userID: userID, monthGroup: removed.MonthGroup}
	summary, ok := s.summaries[key]
	if !ok {
		return &removed, fmt.Errorf("%w: no summary for month %s", apperrors.ErrInconsistentSummary, removed.MonthGroup)
	}
	summary.Apply(removed.Delta().Inverse(), s.now())
	s.summaries[key] = summary
	return &removed, nil
}

func (s *Store) FindTransactionByID(_ context.Context, userID, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.txns[transactionID]
	if !ok || stored.txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	txn := stored.txn
	return &txn, nil
}

// ListTransactionsByMonth returns the owner's transactions in creation order.
func (s *Store) ListTransactionsByMonth(_ context.Context, userID, monthGroup string) ([]domain.Transaction, error) {
	s.mu.Lock()
	matched := make([]storedTransaction, 0)
	for _, stored := range s.txns {
		if stored.txn.UserID == userID && stored.txn.MonthGroup == monthGroup {
			matched = append(matched, stored)
		}
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.txn.CreatedAt.Equal(b.txn.CreatedAt) {
			return a.txn.CreatedAt.Before(b.txn.CreatedAt)
		}
		return a.seq < b.seq
	})

	out := make([]domain.Transaction, len(matched))
	for i, stored := range matched {
		out[i] = stored.txn
	}
	return out, nil
}

func (s *Store) DeleteTransactionsBefore(_ context.Context, userID, cutoff string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, stored := range s.txns {
		if stored.txn.UserID == userID && domain.IsExpired(stored.txn.MonthGroup, cutoff) {
			delete(s.txns, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) FindSummary(_ context.Context, userID, monthGroup string) (*domain.MonthSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary, ok := s.summaries[summaryKey{userID: userID, monthGroup: monthGroup}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &summary, nil
}

// ListSummaries returns the owner's summaries, newest month first.
func (s *Store) ListSummaries(_ context.Context, userID string) ([]domain.MonthSummary, error) {
	s.mu.Lock()
	out := make([]domain.MonthSummary, 0)
	for key, summary := range s.summaries {
		if key.userID == userID {
			out = append(out, summary)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].MonthGroup > out[j].MonthGroup })
	return out, nil
}

func (s *Store) UpsertInitialBalance(_ context.Context, userID, monthGroup string, initialBalance decimal.Decimal, recompute bool, now time.Time) (*domain.MonthSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := summaryKey{userID: userID, monthGroup: monthGroup}
	summary, ok := s.summaries[key]
	if !ok {
		summary = domain.NewMonthSummary(uuid.NewString(), userID, monthGroup, now)
	}
	summary.SetInitialBalance(initialBalance, recompute, now)
	s.summaries[key] = summary
	return &summary, nil
}

func (s *Store) DeleteSummariesBefore(_ context.Context, userID, cutoff string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for key := range s.summaries {
		if key.userID == userID && domain.IsExpired(key.monthGroup, cutoff) {
			delete(s.summaries, key)
			n++
		}
	}
	return n, nil
}
