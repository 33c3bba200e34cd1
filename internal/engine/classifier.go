// Package engine implements the classification engine that turns raw bank
// descriptions into categorized merchant matches, and the batch runner that
// fans classification out over many transactions.
package engine

import (
	"strings"
	"time"
	"unicode"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/cleaner"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/common"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/dictionary"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/noise"
)

// Config holds the engine's tunable weights and batch limits. The
// confidence weights are deliberately named configuration, not magic
// numbers; viper overrides them from the config file.
type Config struct {
	// ChannelCorroborationBonus is added to the base confidence when the
	// extracted payment channel corroborates the kind of match: a PIX
	// transfer to a person-like name, or a card purchase hitting a known
	// merchant alias.
	ChannelCorroborationBonus float64
	// NoiseStrippingPenalty is subtracted per removal beyond
	// NoisePenaltyThreshold; aggressive stripping may have mangled the
	// real name.
	NoiseStrippingPenalty float64
	NoisePenaltyThreshold int
	// Concurrency bounds the batch worker pool.
	Concurrency int
	// DictionaryTimeout bounds the dictionary load per batch.
	DictionaryTimeout time.Duration
	// PersistTimeout bounds each result write.
	PersistTimeout time.Duration
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		ChannelCorroborationBonus: 0.10,
		NoiseStrippingPenalty:     0.05,
		NoisePenaltyThreshold:     3,
		Concurrency:               4,
		DictionaryTimeout:         10 * time.Second,
		PersistTimeout:            5 * time.Second,
	}
}

// Classifier runs the full pipeline for one transaction: clean, validate,
// dictionary lookup, confidence scoring. It is pure and deterministic given
// its inputs and the dictionary snapshot, holds no mutable state, and is
// safe for concurrent use. Retry policy belongs to the batch runner, not
// here.
type Classifier struct {
	cleaner   *cleaner.Cleaner
	validator *cleaner.Validator
	snapshot  *dictionary.Snapshot
	config    Config
}

// NewClassifier creates a classifier over the given registry and dictionary
// snapshot.
func NewClassifier(registry *noise.Registry, snapshot *dictionary.Snapshot, config Config) *Classifier {
	return &Classifier{
		cleaner:   cleaner.New(registry),
		validator: cleaner.NewValidator(registry),
		snapshot:  snapshot,
		config:    config,
	}
}

// Classify produces the classification result for one raw description.
func (c *Classifier) Classify(transactionID, raw string) model.ClassificationResult {
	result := model.ClassificationResult{
		TransactionID: transactionID,
		ClassifiedAt:  time.Now(),
	}

	if strings.TrimSpace(raw) == "" {
		result.Status = model.StatusRejected
		result.Notes = common.ErrEmptyDescription.Error()
		return result
	}

	candidate := c.cleaner.Clean(raw)
	result.Candidate = candidate

	verdict := c.validator.Validate(candidate)
	if !verdict.Accepted {
		result.Status = model.StatusRejected
		result.Notes = string(verdict.Reason)
		return result
	}

	entry := c.snapshot.Lookup(candidate.Text)
	if entry == nil {
		result.Status = model.StatusUnclassified
		return result
	}

	result.Status = model.StatusClassified
	result.Merchant = entry
	result.CategoryID = entry.CategoryID
	result.Confidence = c.score(entry, candidate)
	return result
}

// score adjusts the entry's base confidence with the banking context signal
// and the noise-removal penalty, clamped to [0, 1].
func (c *Classifier) score(entry *model.MerchantEntry, candidate model.CleanedCandidate) float64 {
	confidence := entry.ConfidenceBase

	if c.channelCorroborates(candidate) {
		confidence += c.config.ChannelCorroborationBonus
	}

	if extra := candidate.NoiseRemoved - c.config.NoisePenaltyThreshold; extra > 0 {
		confidence -= float64(extra) * c.config.NoiseStrippingPenalty
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// channelCorroborates reports whether the extracted channel supports the
// match: transfers (PIX/TED) corroborate person-like counterparty names,
// card purchases corroborate merchant alias matches.
func (c *Classifier) channelCorroborates(candidate model.CleanedCandidate) bool {
	switch candidate.Context.Channel {
	case model.ChannelPix, model.ChannelTed:
		return isPersonLike(candidate.Text)
	case model.ChannelDebito, model.ChannelCredito:
		return true
	case model.ChannelBoleto, model.ChannelOther:
		return false
	}
	return false
}

// isPersonLike reports whether the candidate resembles a personal
// counterparty name: at least two words, letters only.
func isPersonLike(text string) bool {
	words := strings.Fields(text)
	if len(words) < 2 {
		return false
	}
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
