package services

import (
	portsrepo "github.com/SscSPs/transaction_analyzer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_analyzer/internal/core/ports/services"
	"github.com/SscSPs/transaction_analyzer/internal/platform/config"
	"github.com/SscSPs/transaction_analyzer/internal/validation"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// events may be nil when no analytics sink is configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, events EventSink) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.ImportJob = NewImportJobService(repos.ImportJobRepo)

	importer := NewTransactionImporter(
		repos.TransactionRepo,
		validation.NewRecordValidator(),
		WithImportBatchSize(cfg.ImportBatchSize),
		WithAtomicityStrategy(cfg.ImportAtomicity),
	)

	processorOptions := []ImportJobProcessorOption{WithMaxConcurrentImports(cfg.ImportMaxConcurrentJobs)}
	if events != nil {
		processorOptions = append(processorOptions, WithEventSink(events))
	}
	processor := NewImportJobProcessor(container.ImportJob, importer, processorOptions...)
	container.ImportProcessor = processor

	container.Import = NewImportService(container.ImportJob, processor)
	container.Statistics = NewStatisticsService(repos.StatisticsRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo)

	return container
}
