package services

import (
	"github.com/SscSPs/expense_tracker/internal/core/ports"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// locker may be nil, in which case retention sweeps run unlocked.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, locker ports.Locker) *portssvc.ServiceContainer {
	historyOpts := []HistoryServiceOption{WithRetentionMonths(cfg.RetentionMonths)}
	if locker != nil {
		historyOpts = append(historyOpts, WithSweepLocker(locker))
	}

	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(repos.TransactionRepo),
		Summary: NewSummaryService(
			repos.SummaryRepo,
			WithRecomputeBalance(cfg.RecomputeBalanceOnInitialSet),
		),
		History: NewHistoryService(repos.SummaryRepo, repos.TransactionRepo, historyOpts...),
	}
}
