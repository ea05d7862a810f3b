package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveFailureNotification(t *testing.T) {
	notice := SaveFailureNotification(SectionAddress, errors.New("timeout"))
	assert.Equal(t, "Erro ao salvar endereço", notice.Title)
	assert.Equal(t, "timeout", notice.Description)
	assert.Equal(t, NotificationDestructive, notice.Variant)

	assert.Equal(t, "Erro ao atualizar foto", SaveFailureNotification(SectionPhoto, nil).Title)
	assert.Equal(t, "Erro ao salvar", SaveFailureNotification(Section("x"), nil).Title)
}

func TestParsePeriod(t *testing.T) {
	for input, want := range map[string]Period{
		"":            PeriodAll,
		"all":         PeriodAll,
		"month":       PeriodLastMonth,
		"3months":     PeriodLast3Month,
		"year":        PeriodLastYear,
		"lastYear":    PeriodLastYear,
		"last3Months": PeriodLast3Month,
	} {
		got, ok := ParsePeriod(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := ParsePeriod("decade")
	assert.False(t, ok)
}

func TestValidationErrorUnwrapsCause(t *testing.T) {
	err := &ValidationError{Message: "Foto inválida", Cause: ErrInvalidPhoto}
	assert.ErrorIs(t, err, ErrInvalidPhoto)

	vErr, ok := IsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, "validation failed: Foto inválida", vErr.Error())
}

func TestRecordRefMatches(t *testing.T) {
	record := ConsultationRecord{ID: "7", Time: "10:00"}
	assert.True(t, RecordRef{ID: "7"}.Matches(record))
	assert.False(t, RecordRef{ID: "8"}.Matches(record))
	assert.True(t, RecordRef{Time: "10:00"}.Matches(record))
}
