package explorer

import (
	"context"

	domsummary "github.com/kailas-cloud/explorer/internal/domain/summary"
	healthuc "github.com/kailas-cloud/explorer/internal/usecase/health"
)

// --- summaryUseCase mock ---

type mockSummaryUC struct {
	summarizeFn func(ctx context.Context, req *domsummary.Request) (domsummary.Response, error)
}

func (m *mockSummaryUC) Summarize(ctx context.Context, req *domsummary.Request) (domsummary.Response, error) {
	return m.summarizeFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}
