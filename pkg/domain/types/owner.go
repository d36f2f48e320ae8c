package types

import "github.com/m-mizutani/goerr/v2"

// Owner represents the organizational unit accountable for a risk
type Owner string

const (
	OwnerCompliance Owner = "Compliance"
	OwnerFinance    Owner = "Finance"
	OwnerIT         Owner = "IT"
	OwnerOperations Owner = "Operations"
	OwnerSecurity   Owner = "Security"
)

// AllOwners returns all valid risk owners
func AllOwners() []Owner {
	return []Owner{
		OwnerCompliance,
		OwnerFinance,
		OwnerIT,
		OwnerOperations,
		OwnerSecurity,
	}
}

// IsValid checks if the owner is valid
func (o Owner) IsValid() bool {
	switch o {
	case OwnerCompliance, OwnerFinance, OwnerIT, OwnerOperations, OwnerSecurity:
		return true
	default:
		return false
	}
}

// String returns the string representation of the owner
func (o Owner) String() string {
	return string(o)
}

// ParseOwner parses a string into an Owner
func ParseOwner(s string) (Owner, error) {
	owner := Owner(s)
	if !owner.IsValid() {
		return "", goerr.New("invalid risk owner", goerr.V("owner", s))
	}
	return owner, nil
}
