package in

import (
	"context"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

type HistoryUseCase interface {
	// Loads the canonical list once per session; reload forces a new fetch
	LoadHistory(ctx context.Context, user domain.UserKey, reload bool) (*domain.LoadReport, error)

	// Filtered and sorted view of the canonical list with statistics over the full list
	GetHistory(ctx context.Context, user domain.UserKey, filter domain.FilterCriteria, sort domain.SortCriteria, debug bool) (*domain.HistoryView, error)
	GetStats(ctx context.Context, user domain.UserKey) (*domain.HistoryStats, error)

	// Feedback reconciliation
	OpenFeedback(ctx context.Context, user domain.UserKey, ref domain.RecordRef) (*domain.FeedbackDraft, error)
	SaveFeedback(ctx context.Context, user domain.UserKey, draft domain.FeedbackDraft) (*domain.FeedbackResult, error)

	ExportHistory(ctx context.Context, user domain.UserKey, filter domain.FilterCriteria, sort domain.SortCriteria, format domain.ExportFormat) (*domain.ExportFile, error)

	// Cache invalidation
	InvalidateHistory(ctx context.Context, user domain.UserKey) error
	InvalidateAllHistory(ctx context.Context) error
}
