package noise

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
)

// Overlay is the on-disk format for extending the curated pattern set.
// Patterns are merged into the defaults by ID, so an overlay entry with a
// known ID replaces the default and a new ID adds a pattern. Denylist words
// are appended.
type Overlay struct {
	Patterns []overlayPattern `yaml:"patterns"`
	Denylist []string         `yaml:"denylist"`
}

type overlayPattern struct {
	ID       string `yaml:"id"`
	Match    string `yaml:"match"`
	Scope    string `yaml:"scope"`
	Channel  string `yaml:"channel"`
	Priority int    `yaml:"priority"`
	Regex    bool   `yaml:"regex"`
}

// LoadRegistry builds a registry from the defaults merged with the overlay
// file at path. An empty path returns the default registry.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read noise overlay: %w", err)
	}

	var overlay Overlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse noise overlay: %w", err)
	}

	byID := make(map[string]int, len(defaultPatterns))
	patterns := make([]Pattern, len(defaultPatterns))
	copy(patterns, defaultPatterns)
	for i, p := range patterns {
		byID[p.ID] = i
	}

	for _, op := range overlay.Patterns {
		p, err := op.toPattern()
		if err != nil {
			return nil, err
		}
		if i, ok := byID[p.ID]; ok {
			patterns[i] = p
		} else {
			patterns = append(patterns, p)
		}
	}

	denylist := make([]string, 0, len(defaultDenylist)+len(overlay.Denylist))
	denylist = append(denylist, defaultDenylist...)
	denylist = append(denylist, overlay.Denylist...)

	return NewRegistry(patterns, denylist)
}

func (op overlayPattern) toPattern() (Pattern, error) {
	if op.ID == "" || op.Match == "" {
		return Pattern{}, fmt.Errorf("overlay pattern requires id and match")
	}

	scope := Scope(op.Scope)
	switch scope {
	case ScopePrefix, ScopeSuffix, ScopeAnywhere:
	case "":
		scope = ScopeAnywhere
	default:
		return Pattern{}, fmt.Errorf("overlay pattern %q: unknown scope %q", op.ID, op.Scope)
	}

	var channel model.Channel
	switch model.Channel(op.Channel) {
	case model.ChannelPix, model.ChannelTed, model.ChannelDebito,
		model.ChannelCredito, model.ChannelBoleto, model.ChannelOther:
		channel = model.Channel(op.Channel)
	case "":
	default:
		return Pattern{}, fmt.Errorf("overlay pattern %q: unknown channel %q", op.ID, op.Channel)
	}

	return Pattern{
		ID:       op.ID,
		Match:    op.Match,
		Scope:    scope,
		Channel:  channel,
		Priority: op.Priority,
		Regex:    op.Regex,
	}, nil
}
