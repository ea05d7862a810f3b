package domain

type Period string

const (
	PeriodAll        Period = "all"
	PeriodLastMonth  Period = "lastMonth"
	PeriodLast3Month Period = "last3Months"
	PeriodLastYear   Period = "lastYear"
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodAll, PeriodLastMonth, PeriodLast3Month, PeriodLastYear:
		return true
	}
	return false
}

// ParsePeriod accepts the period names and the short forms the web client sends
// ("month", "3months", "year"). Empty means all.
func ParsePeriod(s string) (Period, bool) {
	switch s {
	case "", string(PeriodAll):
		return PeriodAll, true
	case "month":
		return PeriodLastMonth, true
	case "3months":
		return PeriodLast3Month, true
	case "year":
		return PeriodLastYear, true
	}
	p := Period(s)
	return p, p.IsValid()
}

type FilterCriteria struct {
	SearchTerm   string              `json:"searchTerm"`
	StatusFilter *ConsultationStatus `json:"statusFilter,omitempty"`
	Period       Period              `json:"period"`
}

type SortField string

const (
	SortFieldDate   SortField = "date"
	SortFieldRating SortField = "rating"
	SortFieldType   SortField = "type"
)

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

func (f SortField) IsValid() bool {
	return f == SortFieldDate || f == SortFieldRating || f == SortFieldType
}

func (o SortOrder) IsValid() bool {
	return o == SortOrderAsc || o == SortOrderDesc
}

type SortCriteria struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// DefaultSortCriteria is newest first.
func DefaultSortCriteria() SortCriteria {
	return SortCriteria{Field: SortFieldDate, Order: SortOrderDesc}
}
