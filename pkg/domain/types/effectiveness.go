package types

import "github.com/m-mizutani/goerr/v2"

// Effectiveness represents how effective the controls over a risk are
type Effectiveness string

const (
	EffectivenessLow    Effectiveness = "Low"
	EffectivenessMedium Effectiveness = "Medium"
	EffectivenessHigh   Effectiveness = "High"
)

// AllEffectiveness returns all valid control effectiveness levels
func AllEffectiveness() []Effectiveness {
	return []Effectiveness{
		EffectivenessLow,
		EffectivenessMedium,
		EffectivenessHigh,
	}
}

// IsValid checks if the effectiveness level is valid
func (e Effectiveness) IsValid() bool {
	switch e {
	case EffectivenessLow, EffectivenessMedium, EffectivenessHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the effectiveness level
func (e Effectiveness) String() string {
	return string(e)
}

// ParseEffectiveness parses a string into an Effectiveness
func ParseEffectiveness(s string) (Effectiveness, error) {
	eff := Effectiveness(s)
	if !eff.IsValid() {
		return "", goerr.New("invalid control effectiveness", goerr.V("effectiveness", s))
	}
	return eff, nil
}
