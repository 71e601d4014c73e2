package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
)

func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newSQLiteTransactionRepository(db),
		ImportJobRepo:   newSQLiteImportJobRepository(db),
		StatisticsRepo:  newStatisticsRepository(db),
	}
}
