package guess

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTier(t *testing.T) {
	tests := []struct {
		tier     Tier
		expected TierSpec
	}{
		{TierEasy, TierSpec{Low: 1, High: 10, Attempts: 5}},
		{TierMedium, TierSpec{Low: 1, High: 50, Attempts: 7}},
		{TierHard, TierSpec{Low: 1, High: 100, Attempts: 10}},
	}
	for _, tt := range tests {
		spec, err := LookupTier(tt.tier)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, spec, "tier %s", tt.tier)
		assert.LessOrEqual(t, spec.Low, spec.High)
	}

	_, err := LookupTier("")
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" Medium ")
	require.NoError(t, err)
	assert.Equal(t, TierMedium, tier)

	_, err = ParseTier("impossible")
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestTierLabel(t *testing.T) {
	assert.Equal(t, "Easy (1-10)", TierEasy.Label())
	assert.Equal(t, "Hard (1-100)", TierHard.Label())
	assert.Equal(t, "custom", Tier("custom").Label())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("USER")
	require.NoError(t, err)
	assert.Equal(t, ModeUser, m)

	m, err = ParseMode("computer")
	require.NoError(t, err)
	assert.Equal(t, ModeComputer, m)

	_, err = ParseMode("robot")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseSignal(t *testing.T) {
	tests := []struct {
		input    string
		expected Signal
	}{
		{"h", Higher},
		{"H", Higher},
		{"higher", Higher},
		{"l", Lower},
		{" Lower ", Lower},
		{"c", SignalCorrect},
		{"correct", SignalCorrect},
	}
	for _, tt := range tests {
		sig, err := ParseSignal(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.expected, sig, "input %q", tt.input)
	}

	_, err := ParseSignal("x")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatusMarshalsByName(t *testing.T) {
	b, err := json.Marshal(map[string]Status{"s": StatusWon})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"won"}`, string(b))

	var decoded map[string]Status
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, StatusWon, decoded["s"])

	var s Status
	assert.Error(t, s.UnmarshalText([]byte("paused")))
}

func TestContradictionError(t *testing.T) {
	var err error = &ContradictionError{Low: 4, High: 3}
	assert.ErrorIs(t, err, ErrContradiction)
	assert.NotErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "low 4 exceeds high 3")
}
