package domain

import "time"

// DebugInfo times one stage of a history pipeline run (normalize, filter, sort, stats)
// and records how many records went in and came out.
type DebugInfo struct {
	Event  string `json:"event"`
	Timing int64  `json:"timingMicros"`
	In     int    `json:"in"`
	Out    int    `json:"out"`

	started time.Time
}

func StartDebug(event string, in int) DebugInfo {
	return DebugInfo{Event: event, In: in, started: time.Now()}
}

func (d *DebugInfo) Finish(out int) {
	d.Out = out
	d.Timing = time.Since(d.started).Microseconds()
}
