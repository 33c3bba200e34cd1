package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/noise"
)

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(noise.DefaultRegistry())

	tests := []struct {
		name       string
		text       string
		wantOK     bool
		wantReason model.VerdictReason
	}{
		{
			name:       "real merchant name passes",
			text:       "CACAU SHOW",
			wantOK:     true,
			wantReason: model.ReasonOK,
		},
		{
			name:       "empty candidate is too short",
			text:       "",
			wantOK:     false,
			wantReason: model.ReasonTooShort,
		},
		{
			name:       "two visible characters are too short",
			text:       "AB",
			wantOK:     false,
			wantReason: model.ReasonTooShort,
		},
		{
			name:       "spaces do not count as visible characters",
			text:       "A B",
			wantOK:     false,
			wantReason: model.ReasonTooShort,
		},
		{
			name:       "three visible characters pass the floor",
			text:       "UBE",
			wantOK:     true,
			wantReason: model.ReasonOK,
		},
		{
			name:       "bare document number is all numeric",
			text:       "12345678900",
			wantOK:     false,
			wantReason: model.ReasonAllNumeric,
		},
		{
			name:       "digits with punctuation are still all numeric",
			text:       "123.456.789-00",
			wantOK:     false,
			wantReason: model.ReasonAllNumeric,
		},
		{
			name:       "single letter saves a numeric string",
			text:       "4X1000",
			wantOK:     true,
			wantReason: model.ReasonOK,
		},
		{
			name:       "lone generic word is residual noise",
			text:       "TAXA",
			wantOK:     false,
			wantReason: model.ReasonResidualNoise,
		},
		{
			name:       "all-generic phrase is residual noise",
			text:       "TARIFA DE SERVICOS",
			wantOK:     false,
			wantReason: model.ReasonResidualNoise,
		},
		{
			name:       "generic word inside a longer name is fine",
			text:       "TAXA FIXA COMERCIO",
			wantOK:     true,
			wantReason: model.ReasonOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := v.Validate(model.CleanedCandidate{Text: tt.text})
			assert.Equal(t, tt.wantOK, verdict.Accepted)
			assert.Equal(t, tt.wantReason, verdict.Reason)
		})
	}
}

func TestValidator_FirstFailingRuleWins(t *testing.T) {
	v := NewValidator(noise.DefaultRegistry())

	// "DE" is both under the length floor and a denylist word; the length
	// rule runs first and names the reason.
	verdict := v.Validate(model.CleanedCandidate{Text: "DE"})
	assert.False(t, verdict.Accepted)
	assert.Equal(t, model.ReasonTooShort, verdict.Reason)

	// "12" is short and numeric; again the length rule wins.
	verdict = v.Validate(model.CleanedCandidate{Text: "12"})
	assert.Equal(t, model.ReasonTooShort, verdict.Reason)
}
