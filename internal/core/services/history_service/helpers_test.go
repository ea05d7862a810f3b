package history_service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/cache"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/logger"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func record(id string, date time.Time, status domain.ConsultationStatus) domain.ConsultationRecord {
	return domain.ConsultationRecord{
		ID:              id,
		Date:            date,
		Time:            "10:00",
		CounterpartName: "Ana Souza",
		Specialty:       "Psicologia",
		ServiceType:     "online",
		Status:          status,
		Duration:        domain.DefaultConsultationDuration,
	}
}

func completedPtr() *domain.ConsultationStatus {
	status := domain.ConsultationStatusCompleted
	return &status
}

type fakeConsultationPort struct {
	mu          sync.Mutex
	raw         []domain.RawConsultation
	listErr     error
	exportErr   error
	listCalls   int
	exportCalls int
}

func (f *fakeConsultationPort) ListHistory(ctx context.Context, user domain.UserKey) ([]domain.RawConsultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.raw, nil
}

func (f *fakeConsultationPort) RequestExport(ctx context.Context, user domain.UserKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exportCalls++
	return f.exportErr
}

type fakeFeedbackSync struct {
	mu     sync.Mutex
	events []domain.FeedbackSubmitted
	err    error
}

func (f *fakeFeedbackSync) PublishFeedback(ctx context.Context, event domain.FeedbackSubmitted) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

var errBackendDown = errors.New("backend down")

func newTestService(t *testing.T, port *fakeConsultationPort, feedbackSync *fakeFeedbackSync, now time.Time) *HistoryService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.HistorySize = 10
	cfg.Cache.ProfileSize = 10
	cfg.Cache.CepSize = 10
	cfg.Cache.CepTTL = time.Hour

	log := logger.NewZapLogger(zap.NewNop())
	cacheAdapter, err := cache.NewCacheAdapter(cfg, log)
	require.NoError(t, err)

	service := NewHistoryService(port, cacheAdapter, nil, log)
	if feedbackSync != nil {
		service = NewHistoryService(port, cacheAdapter, feedbackSync, log)
	}
	return service.WithClock(func() time.Time { return now })
}
