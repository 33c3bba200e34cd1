// Package noise provides the curated registry of banking boilerplate
// patterns and the generic matcher that strips them from descriptions.
package noise

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
)

// Scope restricts where in the description a pattern may match.
type Scope string

// Pattern scopes.
const (
	ScopePrefix   Scope = "prefix"
	ScopeSuffix   Scope = "suffix"
	ScopeAnywhere Scope = "anywhere"
)

// Pattern is one declarative noise rule. Match is a literal phrase unless
// Regex is set. A non-empty Channel marks a payment-channel marker whose
// removal also records a banking context signal.
type Pattern struct {
	ID       string
	Match    string
	Scope    Scope
	Channel  model.Channel
	Priority int
	Regex    bool
}

// Removal records a single pattern match stripped from the working text.
type Removal struct {
	Pattern Pattern
	Text    string
}

// Registry is an immutable ordered set of noise patterns. Patterns are
// evaluated in descending priority, so a higher-priority match is removed
// before lower-priority patterns see the text. Construct once at startup
// and share freely; the read path needs no locking.
type Registry struct {
	compiled []compiledPattern
	denylist map[string]struct{}
}

type compiledPattern struct {
	re      *regexp.Regexp
	pattern Pattern
}

// NewRegistry builds a registry from the given patterns and residual-noise
// denylist words. Pattern matching is case-sensitive against folded
// (upper-cased, accent-stripped) text, so pattern phrases must be written
// folded.
func NewRegistry(patterns []Pattern, denylist []string) (*Registry, error) {
	sorted := make([]Pattern, len(patterns))
	copy(sorted, patterns)

	// Descending priority; longer phrases first within a priority band so
	// "COMPRA CARTAO DEBITO" wins over "COMPRA".
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return len(sorted[i].Match) > len(sorted[j].Match)
	})

	compiled := make([]compiledPattern, 0, len(sorted))
	for _, p := range sorted {
		re, err := compile(p)
		if err != nil {
			return nil, fmt.Errorf("noise pattern %q: %w", p.ID, err)
		}
		compiled = append(compiled, compiledPattern{pattern: p, re: re})
	}

	deny := make(map[string]struct{}, len(denylist))
	for _, word := range denylist {
		deny[word] = struct{}{}
	}

	return &Registry{compiled: compiled, denylist: deny}, nil
}

// compile turns a pattern into an anchored, word-bounded regexp.
func compile(p Pattern) (*regexp.Regexp, error) {
	body := p.Match
	if !p.Regex {
		body = regexp.QuoteMeta(body)
	}

	var expr string
	switch p.Scope {
	case ScopePrefix:
		expr = `^` + body + `\b`
	case ScopeSuffix:
		expr = `\b` + body + `$`
	case ScopeAnywhere:
		expr = `\b` + body + `\b`
	default:
		return nil, fmt.Errorf("unknown scope %q", p.Scope)
	}

	// Regex patterns may start or end with non-word characters (e.g. a
	// literal '*'), where \b would never match. Anchor those bare.
	if p.Regex {
		switch p.Scope {
		case ScopePrefix:
			expr = `^` + body
		case ScopeSuffix:
			expr = body + `$`
		case ScopeAnywhere:
			expr = body
		}
	}

	return regexp.Compile(expr)
}

// Apply strips every matching pattern from text in descending priority
// order and returns the remainder plus the ordered removals. The remainder
// is trimmed and single-spaced but otherwise untouched; it may be empty.
func (r *Registry) Apply(text string) (string, []Removal) {
	var removals []Removal

	for _, cp := range r.compiled {
		for {
			loc := cp.re.FindStringIndex(text)
			if loc == nil || loc[1] == loc[0] {
				break
			}

			matched := strings.TrimSpace(text[loc[0]:loc[1]])
			if matched != "" {
				removals = append(removals, Removal{Pattern: cp.pattern, Text: matched})
			}

			// Every iteration shrinks the text, so this terminates.
			// Looping until convergence keeps cleaning idempotent.
			text = Collapse(text[:loc[0]] + " " + text[loc[1]:])
		}
	}

	return text, removals
}

// IsResidualNoise reports whether every token of the candidate is a known
// generic banking word. Single generic words standing alone are noise; the
// same word inside a longer merchant name is not.
func (r *Registry) IsResidualNoise(candidate string) bool {
	tokens := strings.Fields(candidate)
	if len(tokens) == 0 {
		return false
	}
	for _, token := range tokens {
		if _, ok := r.denylist[token]; !ok {
			return false
		}
	}
	return true
}

// Collapse trims the string and squeezes internal whitespace runs to a
// single space.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
