package cleaner

import (
	"unicode"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/noise"
)

// MinCandidateLength is the minimum number of visible characters a
// candidate needs to be worth a dictionary lookup.
const MinCandidateLength = 3

// Validator scores cleaned candidates against structural rules. It is the
// cheap second pass that catches noise the static pattern set cannot safely
// generalize, like a word that is noise only when standing alone.
type Validator struct {
	registry *noise.Registry
}

// NewValidator creates a validator backed by the given registry's denylist.
func NewValidator(registry *noise.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate applies the acceptance rules in order; the first failing rule
// wins. An unaccepted candidate must never reach dictionary lookup.
func (v *Validator) Validate(candidate model.CleanedCandidate) model.ValidityVerdict {
	visible := 0
	hasLetter := false
	for _, r := range candidate.Text {
		if unicode.IsSpace(r) {
			continue
		}
		visible++
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}

	if visible < MinCandidateLength {
		return model.ValidityVerdict{Accepted: false, Reason: model.ReasonTooShort}
	}
	if !hasLetter {
		return model.ValidityVerdict{Accepted: false, Reason: model.ReasonAllNumeric}
	}
	if v.registry.IsResidualNoise(candidate.Text) {
		return model.ValidityVerdict{Accepted: false, Reason: model.ReasonResidualNoise}
	}

	return model.ValidityVerdict{Accepted: true, Reason: model.ReasonOK}
}
