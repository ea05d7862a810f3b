package domain

import "time"

type HistoryStats struct {
	Total          int     `json:"total"`
	CompletedCount int     `json:"completedCount"`
	CancelledCount int     `json:"cancelledCount"`
	AverageRating  float64 `json:"averageRating"`
	TotalSpent     float64 `json:"totalSpent"`
}

type HistoryView struct {
	Records  []ConsultationRecord `json:"records"`
	Stats    HistoryStats         `json:"stats"`
	Filter   FilterCriteria       `json:"filter"`
	Sort     SortCriteria         `json:"sort"`
	LoadedAt time.Time            `json:"loadedAt"`
	Debug    []DebugInfo          `json:"debug,omitempty"`
}

// ConsultationHistory is the canonical list of one user. Filter and sort never
// mutate it, only feedback reconciliation replaces records in it.
type ConsultationHistory struct {
	User     UserKey              `json:"user"`
	Records  []ConsultationRecord `json:"records"`
	LoadedAt time.Time            `json:"loadedAt"`
	Report   LoadReport           `json:"report"`
}

type FeedbackResult struct {
	Record       ConsultationRecord `json:"record"`
	Stats        HistoryStats       `json:"stats"`
	Notification Notification       `json:"notification"`
}

// LoadReport describes a normalization pass over a backend payload.
type LoadReport struct {
	Received int              `json:"received"`
	Loaded   int              `json:"loaded"`
	Issues   []DataShapeError `json:"issues,omitempty"`
}

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type FeedbackSubmitted struct {
	EventID        string    `json:"eventId"`
	User           UserKey   `json:"user"`
	ConsultationID string    `json:"consultationId"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`
	Rating         int       `json:"rating"`
	Comment        *string   `json:"comment,omitempty"`
	SubmittedAt    time.Time `json:"submittedAt"`
}
