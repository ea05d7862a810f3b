package history_service

import (
	"sync"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

// pipelineDebug collects stage timings of one view computation. A nil collector
// records nothing.
type pipelineDebug struct {
	mu   sync.Mutex
	data []domain.DebugInfo
}

func newPipelineDebug(enabled bool) *pipelineDebug {
	if !enabled {
		return nil
	}
	return &pipelineDebug{data: make([]domain.DebugInfo, 0, 3)}
}

func (d *pipelineDebug) AddDebugInfo(info domain.DebugInfo) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.data = append(d.data, info)
	d.mu.Unlock()
}

func (d *pipelineDebug) Data() []domain.DebugInfo {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.DebugInfo(nil), d.data...)
}
