package services_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/SscSPs/transaction_analyzer/internal/core/services"
	"github.com/SscSPs/transaction_analyzer/internal/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBaseService_WithImportJob(t *testing.T) {
	var buf bytes.Buffer
	ctx := middleware.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	id := uuid.New()

	base := &services.BaseService{}
	base.LogInfo(base.WithImportJob(ctx, id), "Import job started")

	assert.Contains(t, buf.String(), `"import_job_id":"`+id.String()+`"`)
	assert.Contains(t, buf.String(), `"msg":"Import job started"`)
}
