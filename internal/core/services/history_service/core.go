package history_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

type HistoryService struct {
	consultationPort out.ConsultationPort
	cachePort        out.CachePort
	feedbackSync     out.FeedbackSyncPort
	logger           out.LoggerPort
	now              func() time.Time

	// one lock per user; loads and reconciliations of a user never interleave
	locks sync.Map
}

func NewHistoryService(
	consultationPort out.ConsultationPort,
	cachePort out.CachePort,
	feedbackSync out.FeedbackSyncPort,
	logger out.LoggerPort,
) *HistoryService {
	return &HistoryService{
		consultationPort: consultationPort,
		cachePort:        cachePort,
		feedbackSync:     feedbackSync,
		logger:           logger.WithModule("HistoryService"),
		now:              time.Now,
	}
}

// WithClock replaces the clock used for period filters and export names.
func (s *HistoryService) WithClock(now func() time.Time) *HistoryService {
	s.now = now
	return s
}

func (s *HistoryService) currentTime() time.Time {
	return s.now().In(config.TimeZone)
}

func (s *HistoryService) lock(user domain.UserKey) func() {
	mu, _ := s.locks.LoadOrStore(user.String(), &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	return mu.(*sync.Mutex).Unlock
}

func (s *HistoryService) LoadHistory(ctx context.Context, user domain.UserKey, reload bool) (*domain.LoadReport, error) {
	unlock := s.lock(user)
	defer unlock()

	if !reload {
		if history, exists := s.cachePort.GetHistory(ctx, user); exists {
			report := history.Report
			return &report, nil
		}
	}

	history, err := s.fetchLocked(ctx, user)
	if err != nil {
		return nil, err
	}
	return &history.Report, nil
}

func (s *HistoryService) ensureLoaded(ctx context.Context, user domain.UserKey) (*domain.ConsultationHistory, error) {
	if history, exists := s.cachePort.GetHistory(ctx, user); exists {
		return history, nil
	}

	unlock := s.lock(user)
	defer unlock()

	// another request may have loaded it while we waited
	if history, exists := s.cachePort.GetHistory(ctx, user); exists {
		return history, nil
	}
	return s.fetchLocked(ctx, user)
}

func (s *HistoryService) fetchLocked(ctx context.Context, user domain.UserKey) (*domain.ConsultationHistory, error) {
	s.logger.Info("history.load.started", out.LogFields{
		"user": user.String(),
	})

	raw, err := s.consultationPort.ListHistory(ctx, user)
	if err != nil {
		s.logger.Error("history.load.failed", out.LogFields{
			"user":  user.String(),
			"error": err.Error(),
		})
		return nil, fmt.Errorf("history.load.failed: %w", err)
	}

	records, report := NormalizeConsultations(raw)
	for _, issue := range report.Issues {
		s.logger.Warn("history.load.data_shape", out.LogFields{
			"user":     user.String(),
			"recordId": issue.RecordID,
			"field":    issue.Field,
			"value":    issue.Value,
			"reason":   issue.Reason,
		})
	}

	history := domain.ConsultationHistory{
		User:     user,
		Records:  records,
		LoadedAt: s.currentTime(),
		Report:   report,
	}
	s.cachePort.StoreHistory(ctx, history)

	s.logger.Info("history.load.completed", out.LogFields{
		"user":     user.String(),
		"received": report.Received,
		"loaded":   report.Loaded,
		"issues":   len(report.Issues),
	})

	return &history, nil
}

func normalizeCriteria(filter domain.FilterCriteria, sort domain.SortCriteria) (domain.FilterCriteria, domain.SortCriteria, error) {
	if filter.Period == "" {
		filter.Period = domain.PeriodAll
	}
	if !filter.Period.IsValid() {
		return filter, sort, domain.NewValidationError("Filtro inválido", map[string]string{
			"periodo": fmt.Sprintf("período desconhecido: %s", filter.Period),
		})
	}

	defaults := domain.DefaultSortCriteria()
	if sort.Field == "" {
		sort.Field = defaults.Field
	}
	if sort.Order == "" {
		sort.Order = defaults.Order
	}
	if !sort.Field.IsValid() || !sort.Order.IsValid() {
		return filter, sort, domain.NewValidationError("Ordenação inválida", map[string]string{
			"ordenarPor": "use date, rating ou type com ordem asc ou desc",
		})
	}

	return filter, sort, nil
}

func (s *HistoryService) GetHistory(ctx context.Context, user domain.UserKey, filter domain.FilterCriteria, sort domain.SortCriteria, debug bool) (*domain.HistoryView, error) {
	filter, sort, err := normalizeCriteria(filter, sort)
	if err != nil {
		return nil, err
	}

	history, err := s.ensureLoaded(ctx, user)
	if err != nil {
		return nil, err
	}

	debugInfo := newPipelineDebug(debug)
	records := s.view(history.Records, filter, sort, debugInfo)

	statsDebug := domain.StartDebug("history.view.stats", len(history.Records))
	stats := ComputeStats(history.Records)
	statsDebug.Finish(stats.Total)
	debugInfo.AddDebugInfo(statsDebug)

	return &domain.HistoryView{
		Records:  records,
		Stats:    stats,
		Filter:   filter,
		Sort:     sort,
		LoadedAt: history.LoadedAt,
		Debug:    debugInfo.Data(),
	}, nil
}

func (s *HistoryService) view(records []domain.ConsultationRecord, filter domain.FilterCriteria, sort domain.SortCriteria, debugInfo *pipelineDebug) []domain.ConsultationRecord {
	filterDebug := domain.StartDebug("history.view.filter", len(records))
	filtered := FilterRecords(records, filter, s.currentTime())
	filterDebug.Finish(len(filtered))
	debugInfo.AddDebugInfo(filterDebug)

	sortDebug := domain.StartDebug("history.view.sort", len(filtered))
	sorted := SortRecords(filtered, sort)
	sortDebug.Finish(len(sorted))
	debugInfo.AddDebugInfo(sortDebug)

	return sorted
}

func (s *HistoryService) GetStats(ctx context.Context, user domain.UserKey) (*domain.HistoryStats, error) {
	history, err := s.ensureLoaded(ctx, user)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(history.Records)
	return &stats, nil
}

func (s *HistoryService) OpenFeedback(ctx context.Context, user domain.UserKey, ref domain.RecordRef) (*domain.FeedbackDraft, error) {
	history, err := s.ensureLoaded(ctx, user)
	if err != nil {
		return nil, err
	}
	return OpenFeedbackDraft(history.Records, ref)
}

func (s *HistoryService) SaveFeedback(ctx context.Context, user domain.UserKey, draft domain.FeedbackDraft) (*domain.FeedbackResult, error) {
	// rating is checked before anything is loaded or locked
	if err := validateRating(draft.Rating); err != nil {
		return nil, err
	}

	record, stats, err := s.reconcile(ctx, user, draft)
	if err != nil {
		s.logger.Warn("history.feedback.rejected", out.LogFields{
			"user":   user.String(),
			"record": draft.Record.ID,
			"error":  err.Error(),
		})
		return nil, err
	}

	s.logger.Info("history.feedback.saved", out.LogFields{
		"user":   user.String(),
		"record": record.ID,
		"rating": record.Rating(),
	})

	s.syncFeedback(ctx, user, record)

	return &domain.FeedbackResult{
		Record:       record,
		Stats:        stats,
		Notification: domain.Notify("Feedback salvo!", "Obrigado pela sua avaliação."),
	}, nil
}

func (s *HistoryService) reconcile(ctx context.Context, user domain.UserKey, draft domain.FeedbackDraft) (domain.ConsultationRecord, domain.HistoryStats, error) {
	unlock := s.lock(user)
	defer unlock()

	history, exists := s.cachePort.GetHistory(ctx, user)
	if !exists {
		var err error
		if history, err = s.fetchLocked(ctx, user); err != nil {
			return domain.ConsultationRecord{}, domain.HistoryStats{}, err
		}
	}

	records, record, err := ReconcileFeedback(history.Records, draft)
	if err != nil {
		return domain.ConsultationRecord{}, domain.HistoryStats{}, err
	}

	updated := *history
	updated.Records = records
	s.cachePort.StoreHistory(ctx, updated)

	return record, ComputeStats(records), nil
}

// syncFeedback hands the reconciled feedback to the sync port. The local list stays
// authoritative: a failed publish is logged and nothing is rolled back.
func (s *HistoryService) syncFeedback(ctx context.Context, user domain.UserKey, record domain.ConsultationRecord) {
	if s.feedbackSync == nil {
		return
	}

	event := domain.FeedbackSubmitted{
		EventID:        uuid.NewString(),
		User:           user,
		ConsultationID: record.ID,
		Date:           record.Date,
		Time:           record.Time,
		Rating:         record.Rating(),
		SubmittedAt:    s.currentTime(),
	}
	if record.Feedback != nil {
		event.Comment = record.Feedback.Comment
	}

	if err := s.feedbackSync.PublishFeedback(ctx, event); err != nil {
		s.logger.Error("history.feedback.sync_failed", out.LogFields{
			"user":    user.String(),
			"record":  record.ID,
			"eventId": event.EventID,
			"error":   err.Error(),
		})
	}
}

func (s *HistoryService) ExportHistory(ctx context.Context, user domain.UserKey, filter domain.FilterCriteria, sort domain.SortCriteria, format domain.ExportFormat) (*domain.ExportFile, error) {
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedExport, format)
	}

	filter, sort, err := normalizeCriteria(filter, sort)
	if err != nil {
		return nil, err
	}

	if err := s.consultationPort.RequestExport(ctx, user); err != nil {
		s.logger.Error("history.export.request_failed", out.LogFields{
			"user":  user.String(),
			"error": err.Error(),
		})
		return nil, fmt.Errorf("history.export.request_failed: %w", err)
	}

	history, err := s.ensureLoaded(ctx, user)
	if err != nil {
		return nil, err
	}

	records := s.view(history.Records, filter, sort, nil)
	file, err := BuildExport(records, format, s.currentTime())
	if err != nil {
		s.logger.Error("history.export.build_failed", out.LogFields{
			"user":   user.String(),
			"format": format,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("history.export.build_failed: %w", err)
	}

	s.logger.Info("history.export.completed", out.LogFields{
		"user":    user.String(),
		"format":  format,
		"records": len(records),
		"bytes":   len(file.Data),
	})

	return file, nil
}

func (s *HistoryService) InvalidateHistory(ctx context.Context, user domain.UserKey) error {
	s.cachePort.InvalidateHistory(ctx, user)
	s.logger.Info("history.cache.invalidated", out.LogFields{
		"user": user.String(),
	})
	return nil
}

func (s *HistoryService) InvalidateAllHistory(ctx context.Context) error {
	s.cachePort.InvalidateAllHistory(ctx)
	s.logger.Info("history.cache.invalidated_all", out.LogFields{})
	return nil
}
