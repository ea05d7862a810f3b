package history_service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

func withRating(r domain.ConsultationRecord, rating int) domain.ConsultationRecord {
	r.Feedback = &domain.Feedback{Rating: rating}
	return r
}

func TestSortRecords_DateUsesTimeOfDay(t *testing.T) {
	morning := record("a", day(2024, 1, 10), domain.ConsultationStatusCompleted)
	morning.Time = "08:00"
	evening := record("b", day(2024, 1, 10), domain.ConsultationStatusCompleted)
	evening.Time = "19:30"
	earlier := record("c", day(2024, 1, 9), domain.ConsultationStatusCompleted)
	earlier.Time = "23:00"

	records := []domain.ConsultationRecord{evening, earlier, morning}

	asc := SortRecords(records, domain.SortCriteria{Field: domain.SortFieldDate, Order: domain.SortOrderAsc})
	assert.Equal(t, []string{"c", "a", "b"}, ids(asc))

	desc := SortRecords(records, domain.SortCriteria{Field: domain.SortFieldDate, Order: domain.SortOrderDesc})
	assert.Equal(t, []string{"b", "a", "c"}, ids(desc))
}

func TestSortRecords_RatingTreatsMissingFeedbackAsZero(t *testing.T) {
	records := []domain.ConsultationRecord{
		withRating(record("a", day(2024, 1, 1), domain.ConsultationStatusCompleted), 3),
		record("b", day(2024, 1, 2), domain.ConsultationStatusCompleted),
		withRating(record("c", day(2024, 1, 3), domain.ConsultationStatusCompleted), 5),
	}

	sorted := SortRecords(records, domain.SortCriteria{Field: domain.SortFieldRating, Order: domain.SortOrderAsc})
	assert.Equal(t, []string{"b", "a", "c"}, ids(sorted))
}

func TestSortRecords_StableForEqualKeys(t *testing.T) {
	records := []domain.ConsultationRecord{
		withRating(record("a", day(2024, 1, 1), domain.ConsultationStatusCompleted), 4),
		withRating(record("b", day(2024, 1, 2), domain.ConsultationStatusCompleted), 2),
		withRating(record("c", day(2024, 1, 3), domain.ConsultationStatusCompleted), 4),
		withRating(record("d", day(2024, 1, 4), domain.ConsultationStatusCompleted), 4),
	}

	asc := SortRecords(records, domain.SortCriteria{Field: domain.SortFieldRating, Order: domain.SortOrderAsc})
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(asc))

	desc := SortRecords(records, domain.SortCriteria{Field: domain.SortFieldRating, Order: domain.SortOrderDesc})
	assert.Equal(t, []string{"a", "c", "d", "b"}, ids(desc))
}

func TestSortRecords_DescIsExactReverseWithoutTies(t *testing.T) {
	records := sampleRecords()

	asc := SortRecords(records, domain.SortCriteria{Field: domain.SortFieldDate, Order: domain.SortOrderAsc})
	desc := SortRecords(records, domain.SortCriteria{Field: domain.SortFieldDate, Order: domain.SortOrderDesc})

	reversed := make([]domain.ConsultationRecord, len(asc))
	for i := range asc {
		reversed[len(asc)-1-i] = asc[i]
	}
	assert.Equal(t, reversed, desc)
}

func TestSortRecords_TypeUsesPortugueseCollation(t *testing.T) {
	specialties := []string{"Psicologia", "Ética", "assistência social", "Nutrição"}
	records := make([]domain.ConsultationRecord, 0, len(specialties))
	for i, specialty := range specialties {
		r := record(string(rune('a'+i)), day(2024, 1, 1), domain.ConsultationStatusCompleted)
		r.Specialty = specialty
		records = append(records, r)
	}

	sorted := SortRecords(records, domain.SortCriteria{Field: domain.SortFieldType, Order: domain.SortOrderAsc})

	got := make([]string, 0, len(sorted))
	for _, r := range sorted {
		got = append(got, r.Specialty)
	}
	assert.Equal(t, []string{"assistência social", "Ética", "Nutrição", "Psicologia"}, got)
}

func TestSortRecords_DoesNotModifyInput(t *testing.T) {
	records := sampleRecords()
	before := append([]domain.ConsultationRecord(nil), records...)

	_ = SortRecords(records, domain.SortCriteria{Field: domain.SortFieldDate, Order: domain.SortOrderDesc})
	assert.Equal(t, before, records)
}
