package history_service

import (
	"strings"
	"time"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/utils"
)

// FilterRecords keeps the records that pass every active predicate, in their
// original order. The input slice is not modified.
func FilterRecords(records []domain.ConsultationRecord, criteria domain.FilterCriteria, now time.Time) []domain.ConsultationRecord {
	cutoff, hasCutoff := periodCutoff(criteria.Period, now)
	term := strings.ToLower(criteria.SearchTerm)

	filtered := make([]domain.ConsultationRecord, 0, len(records))
	for _, record := range records {
		if criteria.StatusFilter != nil && record.Status != *criteria.StatusFilter {
			continue
		}
		if hasCutoff && record.Date.Before(cutoff) {
			continue
		}
		if term != "" && !matchesSearch(record, term) {
			continue
		}
		filtered = append(filtered, record)
	}

	return filtered
}

// periodCutoff is the start of the day one month, three months or one year before now.
func periodCutoff(period domain.Period, now time.Time) (time.Time, bool) {
	switch period {
	case domain.PeriodLastMonth:
		return utils.ShiftCalendar(now, 0, -1), true
	case domain.PeriodLast3Month:
		return utils.ShiftCalendar(now, 0, -3), true
	case domain.PeriodLastYear:
		return utils.ShiftCalendar(now, -1, 0), true
	}
	return time.Time{}, false
}

func matchesSearch(record domain.ConsultationRecord, term string) bool {
	fields := []string{
		record.CounterpartName,
		record.Specialty,
		record.ServiceType,
		utils.FormatLongPtBR(record.Date),
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
