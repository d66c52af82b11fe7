package enums

import (
	"fmt"
	"strings"
)

// ReportSpan is a fixed reporting window length anchored at a start date.
type ReportSpan string

const (
	ReportSpanDay   ReportSpan = "day"
	ReportSpanMonth ReportSpan = "month"
	ReportSpanYear  ReportSpan = "year"
)

var validReportSpans = []ReportSpan{
	ReportSpanDay,
	ReportSpanMonth,
	ReportSpanYear,
}

// String implements fmt.Stringer.
func (r ReportSpan) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ReportSpan.
func (r ReportSpan) IsValid() bool {
	for _, candidate := range validReportSpans {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReportSpan converts raw input into a ReportSpan.
func ParseReportSpan(value string) (ReportSpan, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validReportSpans {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report span %q", value)
}
