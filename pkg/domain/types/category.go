package types

import "github.com/m-mizutani/goerr/v2"

// Category represents a risk category
type Category string

const (
	CategoryAccessControl      Category = "Access Control"
	CategoryBusinessContinuity Category = "Business Continuity"
	CategoryConfiguration      Category = "Configuration"
	CategoryDataProtection     Category = "Data Protection"
	CategoryThirdParty         Category = "Third-party"
)

// AllCategories returns all valid risk categories
func AllCategories() []Category {
	return []Category{
		CategoryAccessControl,
		CategoryBusinessContinuity,
		CategoryConfiguration,
		CategoryDataProtection,
		CategoryThirdParty,
	}
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryAccessControl,
		CategoryBusinessContinuity,
		CategoryConfiguration,
		CategoryDataProtection,
		CategoryThirdParty:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", goerr.New("invalid risk category", goerr.V("category", s))
	}
	return category, nil
}
