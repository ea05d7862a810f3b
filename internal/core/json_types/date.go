package json_types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
)

// ParseDateTime accepts RFC3339, a local date-time without offset or a bare date.
// Values without an offset are read in the configured timezone.
func ParseDateTime(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err == nil {
		return parsedDate, nil
	}

	location := config.TimeZone
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		parsedDate, err = time.ParseInLocation(layout, str, location)
		if err == nil {
			return parsedDate, nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse time %q: %v", str, err)
}

// Date is a calendar date carried as YYYY-MM-DD.
type Date struct {
	Date time.Time
}

func (t *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*t = Date{}
		return nil
	}

	parsedDate, err := ParseDateTime(str)
	if err != nil {
		return err
	}

	*t = Date{Date: parsedDate}
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	if t.Date.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(t.Date.Format("2006-01-02"))
}

// FlexibleID accepts ids sent either as JSON numbers or strings.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*id = FlexibleID(strings.TrimSpace(str))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("failed to parse id %s: %v", raw, err)
	}
	if n, err := num.Int64(); err == nil {
		*id = FlexibleID(strconv.FormatInt(n, 10))
		return nil
	}
	*id = FlexibleID(num.String())
	return nil
}

func (id FlexibleID) String() string {
	return string(id)
}
