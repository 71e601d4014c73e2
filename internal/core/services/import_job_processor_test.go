package services_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/SscSPs/transaction_analyzer/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// --- Test Suite ---
type ImportJobProcessorTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockJobs     *MockImportJobWriter
	mockImporter *MockTransactionImporter
	mockEvents   *MockEventSink
	job          domain.ImportJob
}

func (suite *ImportJobProcessorTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockJobs = new(MockImportJobWriter)
	suite.mockImporter = new(MockTransactionImporter)
	suite.mockEvents = new(MockEventSink)
	suite.job = domain.NewImportJob(time.Now().UTC())
}

func (suite *ImportJobProcessorTestSuite) processor(options ...services.ImportJobProcessorOption) *services.ImportJobProcessor {
	return services.NewImportJobProcessor(suite.mockJobs, suite.mockImporter, options...)
}

// --- Test Cases ---

func (suite *ImportJobProcessorTestSuite) TestSuccessfulRunCompletesJob() {
	input := newTrackingReadCloser(strings.NewReader("csv"))
	suite.mockImporter.On("ImportTransactions", mock.Anything, input).Return(nil).Once()
	completed := suite.job
	completed.Status = domain.ImportJobCompleted
	suite.mockJobs.On("MarkImportJobCompleted", mock.Anything, suite.job.ID).Return(&completed, nil).Once()

	p := suite.processor()
	suite.Require().NoError(p.Submit(suite.ctx, suite.job, input))
	suite.Require().NoError(p.Stop(suite.ctx))

	suite.mockJobs.AssertExpectations(suite.T())
	suite.True(input.isClosed())
	suite.Zero(p.FailedStatusUpdates())
}

func (suite *ImportJobProcessorTestSuite) TestFailedRunRecordsCauseMessage() {
	input := newTrackingReadCloser(strings.NewReader("csv"))
	runErr := &apperrors.ImportFailedError{Err: &apperrors.InvalidRowError{Line: 3, Row: "a,b"}}
	suite.mockImporter.On("ImportTransactions", mock.Anything, input).Return(runErr).Once()
	var marked atomic.Bool
	suite.mockJobs.On("MarkImportJobFailed", mock.Anything, suite.job.ID, "invalid transaction row at line 3: {a,b}").
		Run(func(mock.Arguments) { marked.Store(true) }).
		Return(&suite.job, nil).Once()

	p := suite.processor()
	suite.Require().NoError(p.Submit(suite.ctx, suite.job, input))

	// Completion is only observable through the job state.
	suite.Eventually(marked.Load, waitFor, tick)
	suite.Require().NoError(p.Stop(suite.ctx))
	suite.mockJobs.AssertExpectations(suite.T())
}

func (suite *ImportJobProcessorTestSuite) TestUnwrappedErrorMessage() {
	input := newTrackingReadCloser(strings.NewReader("csv"))
	suite.mockImporter.On("ImportTransactions", mock.Anything, input).Return(errors.New("plain failure")).Once()
	suite.mockJobs.On("MarkImportJobFailed", mock.Anything, suite.job.ID, "plain failure").Return(&suite.job, nil).Once()

	p := suite.processor()
	suite.Require().NoError(p.Submit(suite.ctx, suite.job, input))
	suite.Require().NoError(p.Stop(suite.ctx))

	suite.mockJobs.AssertExpectations(suite.T())
}

func (suite *ImportJobProcessorTestSuite) TestPanicBecomesFailure() {
	input := newTrackingReadCloser(strings.NewReader("csv"))
	suite.mockImporter.On("ImportTransactions", mock.Anything, input).Run(func(mock.Arguments) {
		panic("boom")
	}).Return(nil).Once()
	suite.mockJobs.On("MarkImportJobFailed", mock.Anything, suite.job.ID, "transaction import panicked: boom").
		Return(&suite.job, nil).Once()

	p := suite.processor()
	suite.Require().NoError(p.Submit(suite.ctx, suite.job, input))
	suite.Require().NoError(p.Stop(suite.ctx))

	suite.mockJobs.AssertExpectations(suite.T())
	suite.True(input.isClosed())
}

func (suite *ImportJobProcessorTestSuite) TestStatusUpdateFailureIsCountedAndReported() {
	input := newTrackingReadCloser(strings.NewReader("csv"))
	suite.mockImporter.On("ImportTransactions", mock.Anything, input).Return(nil).Once()
	suite.mockJobs.On("MarkImportJobCompleted", mock.Anything, suite.job.ID).Return(nil, errors.New("db down")).Once()
	suite.mockEvents.On("Enqueue", mock.Anything, services.StatusUpdateFailedEvent, mock.MatchedBy(func(props map[string]any) bool {
		return props["import_job_id"] == suite.job.ID.String() && props["status"] == string(domain.ImportJobCompleted)
	})).Once()

	p := suite.processor(services.WithEventSink(suite.mockEvents))
	suite.Require().NoError(p.Submit(suite.ctx, suite.job, input))
	suite.Require().NoError(p.Stop(suite.ctx))

	suite.Equal(int64(1), p.FailedStatusUpdates())
	suite.mockEvents.AssertExpectations(suite.T())
}

func (suite *ImportJobProcessorTestSuite) TestRunOutlivesSubmitContext() {
	input := newTrackingReadCloser(strings.NewReader("csv"))
	release := make(chan struct{})
	var sawCancel atomic.Bool
	suite.mockImporter.On("ImportTransactions", mock.Anything, input).Run(func(args mock.Arguments) {
		<-release
		sawCancel.Store(args.Get(0).(context.Context).Err() != nil)
	}).Return(nil).Once()
	suite.mockJobs.On("MarkImportJobCompleted", mock.Anything, suite.job.ID).Return(&suite.job, nil).Once()

	requestCtx, cancel := context.WithCancel(suite.ctx)
	p := suite.processor()
	suite.Require().NoError(p.Submit(requestCtx, suite.job, input))
	cancel()
	close(release)

	suite.Require().NoError(p.Stop(suite.ctx))
	suite.False(sawCancel.Load())
	suite.mockJobs.AssertExpectations(suite.T())
}

func (suite *ImportJobProcessorTestSuite) TestSubmitAfterStopIsRejected() {
	p := suite.processor()
	suite.Require().NoError(p.Stop(suite.ctx))

	input := newTrackingReadCloser(strings.NewReader("csv"))
	err := p.Submit(suite.ctx, suite.job, input)

	suite.ErrorIs(err, apperrors.ErrProcessorStopped)
	suite.True(input.isClosed())
	suite.mockImporter.AssertNotCalled(suite.T(), "ImportTransactions", mock.Anything, mock.Anything)
}

func (suite *ImportJobProcessorTestSuite) TestStopTimesOutWhileImportRuns() {
	input := newTrackingReadCloser(strings.NewReader("csv"))
	release := make(chan struct{})
	suite.mockImporter.On("ImportTransactions", mock.Anything, input).Run(func(mock.Arguments) {
		<-release
	}).Return(nil).Once()
	suite.mockJobs.On("MarkImportJobCompleted", mock.Anything, suite.job.ID).Return(&suite.job, nil).Once()

	p := suite.processor()
	suite.Require().NoError(p.Submit(suite.ctx, suite.job, input))

	shortCtx, cancel := context.WithTimeout(suite.ctx, 20*time.Millisecond)
	defer cancel()
	suite.ErrorIs(p.Stop(shortCtx), context.DeadlineExceeded)

	close(release)
	suite.Require().NoError(p.Stop(suite.ctx))
	suite.mockJobs.AssertExpectations(suite.T())
}

func (suite *ImportJobProcessorTestSuite) TestMaxConcurrentImports() {
	release := make(chan struct{})
	var running, peak atomic.Int32
	suite.mockImporter.On("ImportTransactions", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		n := running.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		<-release
		running.Add(-1)
	}).Return(nil)
	suite.mockJobs.On("MarkImportJobCompleted", mock.Anything, mock.Anything).Return(&suite.job, nil)

	p := suite.processor(services.WithMaxConcurrentImports(1))
	for i := 0; i < 3; i++ {
		job := domain.NewImportJob(time.Now().UTC())
		suite.Require().NoError(p.Submit(suite.ctx, job, newTrackingReadCloser(strings.NewReader("csv"))))
	}

	suite.Eventually(func() bool { return running.Load() == 1 }, waitFor, tick)
	close(release)
	suite.Require().NoError(p.Stop(suite.ctx))

	suite.Equal(int32(1), peak.Load())
	suite.mockImporter.AssertNumberOfCalls(suite.T(), "ImportTransactions", 3)
}

func TestImportJobProcessorTestSuite(t *testing.T) {
	suite.Run(t, new(ImportJobProcessorTestSuite))
}
