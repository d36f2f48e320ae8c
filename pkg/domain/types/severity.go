package types

// Severity is a derived classification of a risk score. It is never stored;
// it is always recomputed from the score.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// AllSeverities returns all severity levels, most severe first
func AllSeverities() []Severity {
	return []Severity{
		SeverityCritical,
		SeverityHigh,
		SeverityMedium,
		SeverityLow,
	}
}

// SeverityFromScore maps a risk score (likelihood * impact) to a severity
// level. Thresholds: Critical >= 15, High 8-14, Medium 4-7, Low < 4.
func SeverityFromScore(score int) Severity {
	switch {
	case score >= 15:
		return SeverityCritical
	case score >= 8:
		return SeverityHigh
	case score >= 4:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// String returns the string representation of the severity
func (s Severity) String() string {
	return string(s)
}

// Color returns the display color code for the severity level
func (s Severity) Color() string {
	switch s {
	case SeverityCritical:
		return "#ef4444"
	case SeverityHigh:
		return "#f97316"
	case SeverityMedium:
		return "#f59e0b"
	case SeverityLow:
		return "#22c55e"
	default:
		return "#6b7280"
	}
}
