package types

import "github.com/m-mizutani/goerr/v2"

// Status represents the lifecycle status of a risk
type Status string

const (
	StatusOpen      Status = "Open"
	StatusMitigated Status = "Mitigated"
	StatusClosed    Status = "Closed"
	StatusAccepted  Status = "Accepted"
)

// AllStatuses returns all valid risk statuses
func AllStatuses() []Status {
	return []Status{
		StatusOpen,
		StatusMitigated,
		StatusClosed,
		StatusAccepted,
	}
}

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusMitigated, StatusClosed, StatusAccepted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", goerr.New("invalid risk status", goerr.V("status", s))
	}
	return status, nil
}
