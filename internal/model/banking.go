// Package model defines the core domain models used throughout the application.
package model

// Channel identifies the payment channel extracted from a bank description.
type Channel string

// Payment channel constants.
const (
	ChannelPix     Channel = "PIX"
	ChannelTed     Channel = "TED"
	ChannelDebito  Channel = "DEBITO"
	ChannelCredito Channel = "CREDITO"
	ChannelBoleto  Channel = "BOLETO"
	ChannelOther   Channel = "OTHER"
)

// BankingContext carries the auxiliary signal extracted while cleaning a
// description. It is not part of the entity name but is retained for
// auditing and as a classification hint.
type BankingContext struct {
	Channel    Channel
	RawMarkers []string // Matched markers in removal order
}

// CleanedCandidate is the residual entity string after noise removal.
// Text is trimmed, single-spaced, upper-cased and accent-folded.
type CleanedCandidate struct {
	Text         string
	Context      BankingContext
	NoiseRemoved int
}

// VerdictReason explains why a cleaned candidate was accepted or rejected.
type VerdictReason string

// Verdict reason constants.
const (
	ReasonOK            VerdictReason = "OK"
	ReasonTooShort      VerdictReason = "TOO_SHORT"
	ReasonAllNumeric    VerdictReason = "ALL_NUMERIC"
	ReasonResidualNoise VerdictReason = "RESIDUAL_NOISE_DETECTED"
)

// ValidityVerdict is the structural acceptance decision for a candidate.
// An unaccepted candidate never reaches dictionary lookup.
type ValidityVerdict struct {
	Reason   VerdictReason
	Accepted bool
}
