package history_service

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

type RecordSlice []domain.ConsultationRecord

// Sorted returns a stably sorted copy. Descending order negates the comparator, so
// equal records keep their input order in both directions.
func (s RecordSlice) Sorted(criteria domain.SortCriteria) []domain.ConsultationRecord {
	sorted := make([]domain.ConsultationRecord, len(s))
	copy(sorted, s)

	compare := comparator(criteria.Field)
	sign := 1
	if criteria.Order == domain.SortOrderDesc {
		sign = -1
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sign*compare(sorted[i], sorted[j]) < 0
	})

	return sorted
}

func SortRecords(records []domain.ConsultationRecord, criteria domain.SortCriteria) []domain.ConsultationRecord {
	return RecordSlice(records).Sorted(criteria)
}

func comparator(field domain.SortField) func(a, b domain.ConsultationRecord) int {
	switch field {
	case domain.SortFieldDate:
		return func(a, b domain.ConsultationRecord) int {
			return a.At().Compare(b.At())
		}
	case domain.SortFieldRating:
		return func(a, b domain.ConsultationRecord) int {
			return a.Rating() - b.Rating()
		}
	case domain.SortFieldType:
		// collators keep internal buffers, one per sort
		collator := collate.New(language.BrazilianPortuguese)
		return func(a, b domain.ConsultationRecord) int {
			return collator.CompareString(a.Specialty, b.Specialty)
		}
	}
	return func(a, b domain.ConsultationRecord) int { return 0 }
}
