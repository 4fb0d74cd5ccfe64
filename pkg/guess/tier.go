package guess

import (
	"fmt"
	"strings"
)

// Tier names a difficulty preset.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// TierSpec is the inclusive range and attempt budget fixed by a Tier.
type TierSpec struct {
	Low      int
	High     int
	Attempts int
}

var tierTable = map[Tier]TierSpec{
	TierEasy:   {Low: 1, High: 10, Attempts: 5},
	TierMedium: {Low: 1, High: 50, Attempts: 7},
	TierHard:   {Low: 1, High: 100, Attempts: 10},
}

// Tiers returns all tiers ordered from easiest to hardest.
func Tiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard}
}

// LookupTier returns the preset for t.
func LookupTier(t Tier) (TierSpec, error) {
	spec, ok := tierTable[t]
	if !ok {
		return TierSpec{}, fmt.Errorf("%w: %q", ErrUnknownTier, string(t))
	}
	return spec, nil
}

// ParseTier converts a case-insensitive tier name.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tierTable[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

// Label returns a human-readable description such as "Easy (1-10)".
func (t Tier) Label() string {
	spec, ok := tierTable[t]
	if !ok {
		return string(t)
	}
	name := string(t)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s (%d-%d)", name, spec.Low, spec.High)
}
