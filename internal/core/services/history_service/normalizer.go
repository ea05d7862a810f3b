package history_service

import (
	"strconv"
	"strings"
	"time"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/json_types"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/utils"
)

// NormalizeConsultations maps the backend payload to records. Shape problems never fail
// the load: the field is defaulted and the problem goes to the report.
func NormalizeConsultations(raw []domain.RawConsultation) ([]domain.ConsultationRecord, domain.LoadReport) {
	report := domain.LoadReport{Received: len(raw)}
	records := make([]domain.ConsultationRecord, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, item := range raw {
		record, issues := normalizeConsultation(item)

		if record.ID != "" {
			if _, exists := seen[record.ID]; exists {
				report.Issues = append(report.Issues, domain.DataShapeError{
					RecordID: record.ID,
					Field:    "id",
					Value:    record.ID,
					Reason:   "duplicate id, record dropped",
				})
				continue
			}
			seen[record.ID] = struct{}{}
		}

		report.Issues = append(report.Issues, issues...)
		records = append(records, record)
	}

	report.Loaded = len(records)
	return records, report
}

func normalizeConsultation(raw domain.RawConsultation) (domain.ConsultationRecord, []domain.DataShapeError) {
	var issues []domain.DataShapeError
	id := raw.ID.String()

	record := domain.ConsultationRecord{
		ID:              id,
		Time:            timeOfHorario(raw.Horario),
		CounterpartName: raw.NomeVoluntario,
		Specialty:       raw.EspecialidadeVoluntario,
		ServiceType:     raw.Modalidade,
		Status:          domain.ConsultationStatus(raw.Status),
		Duration:        domain.DefaultConsultationDuration,
	}

	if id == "" {
		issues = append(issues, domain.DataShapeError{
			Field:  "id",
			Reason: "missing id, record is addressed by date and time",
		})
	}

	if at, err := json_types.ParseDateTime(raw.Horario); err == nil {
		record.Date = dateOfHorario(raw.Horario, at)
	} else {
		issues = append(issues, domain.DataShapeError{
			RecordID: id,
			Field:    "horario",
			Value:    raw.Horario,
			Reason:   "unparseable date, kept without date",
		})
	}

	if !record.Status.IsKnown() {
		issues = append(issues, domain.DataShapeError{
			RecordID: id,
			Field:    "status",
			Value:    raw.Status,
			Reason:   "unknown status, kept for display only",
		})
	}

	if raw.Avaliacao != nil && *raw.Avaliacao != 0 {
		rating := *raw.Avaliacao
		if rating >= 1 && rating <= 5 {
			record.Feedback = &domain.Feedback{Rating: rating, Comment: nonEmpty(raw.Feedback)}
		} else {
			issues = append(issues, domain.DataShapeError{
				RecordID: id,
				Field:    "avaliacao",
				Value:    strconv.Itoa(rating),
				Reason:   "rating out of range, feedback dropped",
			})
		}
	}

	return record, issues
}

// dateOfHorario keeps the calendar date written in horario, so it agrees with
// timeOfHorario even when the value carries an offset.
func dateOfHorario(horario string, at time.Time) time.Time {
	if len(horario) >= len(time.DateOnly) {
		if date, err := time.ParseInLocation(time.DateOnly, horario[:len(time.DateOnly)], config.TimeZone); err == nil {
			return date
		}
	}
	return utils.StartCurrentDay(at.In(config.TimeZone))
}

// timeOfHorario takes up to five characters after the date/time separator.
func timeOfHorario(horario string) string {
	_, after, found := strings.Cut(horario, "T")
	if !found || after == "" {
		return domain.DefaultConsultationTime
	}
	if len(after) > 5 {
		after = after[:5]
	}
	return after
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	value := *s
	return &value
}
