package domain

import (
	"time"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/json_types"
)

type ConsultationStatus string

const (
	ConsultationStatusCompleted   ConsultationStatus = "realizada"
	ConsultationStatusCancelled   ConsultationStatus = "cancelada"
	ConsultationStatusRescheduled ConsultationStatus = "remarcada"
)

// IsKnown reports whether the status belongs to the closed set the backend documents.
// Unknown values are kept on the record for display only.
func (s ConsultationStatus) IsKnown() bool {
	switch s {
	case ConsultationStatusCompleted, ConsultationStatusCancelled, ConsultationStatusRescheduled:
		return true
	}
	return false
}

func (s ConsultationStatus) AcceptsFeedback() bool {
	return s == ConsultationStatusCompleted
}

const (
	DefaultConsultationDuration = 50
	DefaultConsultationTime     = "00:00"
)

type Feedback struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

func (f *Feedback) CommentText() string {
	if f == nil || f.Comment == nil {
		return ""
	}
	return *f.Comment
}

// RawConsultation is the consultation history payload as the backend sends it.
type RawConsultation struct {
	ID                      json_types.FlexibleID `json:"id"`
	Horario                 string                `json:"horario"`
	NomeVoluntario          string                `json:"nomeVoluntario"`
	EspecialidadeVoluntario string                `json:"especialidadeVoluntario"`
	Modalidade              string                `json:"modalidade"`
	Status                  string                `json:"status"`
	Avaliacao               *int                  `json:"avaliacao,omitempty"`
	Feedback                *string               `json:"feedback,omitempty"`
}

type ConsultationRecord struct {
	ID              string             `json:"id"`
	Date            time.Time          `json:"date"`
	Time            string             `json:"time"`
	CounterpartName string             `json:"counterpartName"`
	Specialty       string             `json:"specialty"`
	ServiceType     string             `json:"serviceType"`
	Status          ConsultationStatus `json:"status"`
	Feedback        *Feedback          `json:"feedback,omitempty"`
	Duration        int                `json:"duration"`
	Cost            float64            `json:"cost"`
	Prescription    *string            `json:"prescription,omitempty"`
	NextAppointment *time.Time         `json:"nextAppointment,omitempty"`
}

// At combines the calendar date with the HH:MM time of the record.
func (r ConsultationRecord) At() time.Time {
	at, err := time.ParseInLocation("15:04", r.Time, time.UTC)
	if err != nil {
		return r.Date
	}
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), at.Hour(), at.Minute(), 0, 0, r.Date.Location())
}

func (r ConsultationRecord) Rating() int {
	if r.Feedback == nil {
		return 0
	}
	return r.Feedback.Rating
}

// RecordRef identifies a record by id, or by (date, time) for lookups that have no id.
type RecordRef struct {
	ID   string    `json:"id,omitempty"`
	Date time.Time `json:"date,omitempty"`
	Time string    `json:"time,omitempty"`
}

func RefOf(r ConsultationRecord) RecordRef {
	return RecordRef{ID: r.ID, Date: r.Date, Time: r.Time}
}

func (ref RecordRef) Matches(r ConsultationRecord) bool {
	if ref.ID != "" {
		return r.ID == ref.ID
	}
	return sameDay(ref.Date, r.Date) && ref.Time == r.Time
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FeedbackDraft is the editable state seeded when the feedback dialog opens.
type FeedbackDraft struct {
	Record  RecordRef `json:"record"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
}
