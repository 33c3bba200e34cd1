// Package dictionary provides the read-only merchant dictionary consulted
// by the classifier: canonical names, alias sets and default categories.
package dictionary

import (
	"sort"
	"strings"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/cleaner"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
)

// Snapshot is an immutable view of the merchant dictionary for one user.
// It holds two partitions: the user's override entries and the global
// curated set. Lookups check the override partition first. Once built, a
// snapshot is read-only and safe for unlocked concurrent use.
type Snapshot struct {
	override partition
	global   partition
}

type partition struct {
	canonical map[string]*model.MerchantEntry
	aliases   map[string]*model.MerchantEntry
	ordered   []aliasRef // sorted longest first for containment matching
}

type aliasRef struct {
	alias string
	entry *model.MerchantEntry
}

// NewSnapshot builds a snapshot from dictionary entries. Entries with an
// empty UserID form the global partition; entries owned by userID form the
// override partition; entries owned by other users are ignored. Alias keys
// are folded exactly like the cleaner folds descriptions, so lookup and
// cleaning agree on accents and case.
func NewSnapshot(entries []model.MerchantEntry, userID string) *Snapshot {
	s := &Snapshot{
		override: newPartition(),
		global:   newPartition(),
	}

	for i := range entries {
		entry := &entries[i]
		switch entry.UserID {
		case "":
			s.global.add(entry)
		case userID:
			s.override.add(entry)
		}
	}

	s.override.sortAliases()
	s.global.sortAliases()

	return s
}

func newPartition() partition {
	return partition{
		canonical: make(map[string]*model.MerchantEntry),
		aliases:   make(map[string]*model.MerchantEntry),
	}
}

func (p *partition) add(entry *model.MerchantEntry) {
	canonical := cleaner.Fold(entry.CanonicalName)
	if canonical == "" {
		return
	}

	p.canonical[canonical] = entry
	p.index(canonical, entry)
	for _, alias := range entry.Aliases {
		if folded := cleaner.Fold(alias); folded != "" {
			p.index(folded, entry)
		}
	}
}

func (p *partition) index(alias string, entry *model.MerchantEntry) {
	if _, exists := p.aliases[alias]; exists {
		return
	}
	p.aliases[alias] = entry
	p.ordered = append(p.ordered, aliasRef{alias: alias, entry: entry})
}

func (p *partition) sortAliases() {
	// Longest alias first so a short generic alias ("PAG") never shadows a
	// more specific one ("PAGSEGURO"); alphabetical tie-break keeps lookups
	// deterministic.
	sort.SliceStable(p.ordered, func(i, j int) bool {
		if len(p.ordered[i].alias) != len(p.ordered[j].alias) {
			return len(p.ordered[i].alias) > len(p.ordered[j].alias)
		}
		return p.ordered[i].alias < p.ordered[j].alias
	})
}

// Lookup resolves a normalized candidate name to a merchant entry, checking
// the user-override partition before the global one. It returns nil when
// nothing matches: absence of a match is a normal business outcome, not an
// error.
func (s *Snapshot) Lookup(normalizedName string) *model.MerchantEntry {
	name := cleaner.Fold(normalizedName)
	if name == "" {
		return nil
	}

	if entry := s.override.lookup(name); entry != nil {
		return entry
	}
	return s.global.lookup(name)
}

func (p *partition) lookup(name string) *model.MerchantEntry {
	// Exact canonical match first, then exact alias match.
	if entry, ok := p.canonical[name]; ok {
		return entry
	}
	if entry, ok := p.aliases[name]; ok {
		return entry
	}

	// Containment pass: the alias is a substring of the candidate or the
	// candidate a substring of the alias. Longest alias wins.
	for _, ref := range p.ordered {
		if strings.Contains(name, ref.alias) || strings.Contains(ref.alias, name) {
			return ref.entry
		}
	}

	return nil
}

// Size returns the number of indexed aliases across both partitions,
// mostly for logging.
func (s *Snapshot) Size() int {
	return len(s.override.ordered) + len(s.global.ordered)
}
