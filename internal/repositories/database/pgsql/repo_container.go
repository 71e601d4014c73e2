package pgsql

import (
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(dbPool),
		ImportJobRepo:   newPgxImportJobRepository(dbPool),
		StatisticsRepo:  newStatisticsRepository(dbPool),
	}
}
