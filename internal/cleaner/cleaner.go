// Package cleaner turns raw bank descriptions into normalized candidate
// entity names, stripping banking boilerplate while preserving the payment
// channel context extracted along the way.
package cleaner

import (
	"strings"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/noise"
)

// separatorCutset holds the punctuation trimmed from token edges after
// noise removal.
const separatorCutset = "-*_./\\|:;,()[]#"

// Cleaner applies the noise registry to raw descriptions. It is stateless
// per call and safe for concurrent use.
type Cleaner struct {
	registry *noise.Registry
}

// New creates a cleaner backed by the given registry.
func New(registry *noise.Registry) *Cleaner {
	return &Cleaner{registry: registry}
}

// Clean produces the normalized candidate for a raw description. It never
// rejects: a description consumed entirely by noise removal yields an empty
// Text, which the validity checker turns into a rejection.
func (c *Cleaner) Clean(raw string) model.CleanedCandidate {
	text := Fold(raw)

	bankingContext := model.BankingContext{Channel: model.ChannelOther}
	noiseRemoved := 0

	// Separator trimming can expose a match the pattern pass missed, so
	// iterate until the text stops changing. Each round strictly shrinks
	// the text, so this terminates.
	for {
		remainder, removals := c.registry.Apply(text)
		remainder = trimSeparators(remainder)

		noiseRemoved += len(removals)
		for _, removal := range removals {
			if removal.Pattern.Channel == "" {
				continue
			}
			bankingContext.RawMarkers = append(bankingContext.RawMarkers, removal.Text)
			if bankingContext.Channel == model.ChannelOther && removal.Pattern.Channel != model.ChannelOther {
				// First channel marker found wins
				bankingContext.Channel = removal.Pattern.Channel
			}
		}

		if remainder == text {
			break
		}
		text = remainder
	}

	return model.CleanedCandidate{
		Text:         text,
		Context:      bankingContext,
		NoiseRemoved: noiseRemoved,
	}
}

// trimSeparators strips leftover punctuation from token edges and drops
// tokens that were nothing but separators.
func trimSeparators(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, field := range fields {
		field = strings.Trim(field, separatorCutset)
		if field != "" {
			kept = append(kept, field)
		}
	}
	return strings.Join(kept, " ")
}
