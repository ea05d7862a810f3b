package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShiftCalendar(t *testing.T) {
	now := time.Date(2024, time.May, 15, 17, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), ShiftCalendar(now, 0, -1))
	assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), ShiftCalendar(now, 0, -3))
	assert.Equal(t, time.Date(2023, time.May, 15, 0, 0, 0, 0, time.UTC), ShiftCalendar(now, -1, 0))
}

func TestShiftCalendar_MonthOverflow(t *testing.T) {
	endOfMarch := time.Date(2024, time.March, 31, 9, 0, 0, 0, time.UTC)

	// 31 February 2024 normalizes to 2 March
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), ShiftCalendar(endOfMarch, 0, -1))
}

func TestFormatLongPtBR(t *testing.T) {
	assert.Equal(t, "10 de janeiro de 2024", FormatLongPtBR(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "05 de março de 2023", FormatLongPtBR(time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)))
}

func TestFormatShortPtBR(t *testing.T) {
	assert.Equal(t, "01/02/2024", FormatShortPtBR(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)))
}
