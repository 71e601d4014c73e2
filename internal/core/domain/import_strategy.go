package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
)

// AtomicityStrategy controls how much of an import survives when a later row fails.
type AtomicityStrategy string

const (
	// AtomicityStreaming flushes each full batch immediately; batches written before a failure remain.
	AtomicityStreaming AtomicityStrategy = "STREAMING"
	// AtomicityBufferAll validates the whole file before the first write.
	AtomicityBufferAll AtomicityStrategy = "BUFFER_ALL"
	// AtomicityTransactional runs every flush in one storage transaction and rolls back on failure.
	AtomicityTransactional AtomicityStrategy = "TRANSACTIONAL"
)

// ParseAtomicityStrategy reads a configured strategy name; empty selects streaming.
func ParseAtomicityStrategy(raw string) (AtomicityStrategy, error) {
	switch s := AtomicityStrategy(strings.ToUpper(strings.TrimSpace(raw))); s {
	case "":
		return AtomicityStreaming, nil
	case AtomicityStreaming, AtomicityBufferAll, AtomicityTransactional:
		return s, nil
	default:
		return "", fmt.Errorf("%w: unknown import atomicity strategy %q", apperrors.ErrValidation, raw)
	}
}
