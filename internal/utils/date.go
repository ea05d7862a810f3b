package utils

import (
	"fmt"
	"time"
)

func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ShiftCalendar moves t by whole months and years and truncates to the start of the
// day. Overflowing days roll forward the way time.AddDate normalizes them
// (31 March minus one month is 3 March, or 2 March in a leap year).
func ShiftCalendar(t time.Time, years, months int) time.Time {
	return StartCurrentDay(t.AddDate(years, months, 0))
}

var monthsPtBR = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatLongPtBR renders "dd 'de' MMMM 'de' yyyy" in Brazilian Portuguese,
// e.g. "05 de março de 2024".
func FormatLongPtBR(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %04d", t.Day(), monthsPtBR[t.Month()-1], t.Year())
}

// FormatShortPtBR renders dd/MM/yyyy.
func FormatShortPtBR(t time.Time) string {
	return t.Format("02/01/2006")
}
