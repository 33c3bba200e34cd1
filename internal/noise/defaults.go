package noise

import "github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"

// Priority bands. Channel markers go first: they are the most reliably
// identifiable noise, and removing them early keeps generic patterns from
// matching inside them.
const (
	priorityChannel  = 1000
	priorityPrefix   = 800
	priorityMarker   = 700
	prioritySuffix   = 600
	priorityBoilerpl = 500
)

// defaultPatterns is the curated Brazilian banking noise set. Phrases are
// written folded (upper-case, no accents) because they match against the
// cleaner's folded text. New noise phrases are additions to this data, not
// new code paths.
var defaultPatterns = []Pattern{
	// Payment channel markers.
	{ID: "pix-enviado", Match: "PIX ENVIADO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelPix},
	{ID: "pix-recebido", Match: "PIX RECEBIDO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelPix},
	{ID: "pix-qrcode", Match: "PIX QR CODE", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelPix},
	{ID: "pix-transf", Match: "TRANSFERENCIA PIX", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelPix},
	{ID: "pix-pagto", Match: "PAGAMENTO PIX", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelPix},
	{ID: "pix", Match: "PIX", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelPix},
	{ID: "ted-enviada", Match: "TED ENVIADA", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelTed},
	{ID: "ted-recebida", Match: "TED RECEBIDA", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelTed},
	{ID: "ted-transf", Match: "TRANSFERENCIA TED", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelTed},
	{ID: "ted", Match: "TED", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelTed},
	{ID: "debito-compra-cartao", Match: "COMPRA CARTAO DEBITO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelDebito},
	{ID: "debito-cartao-de", Match: "CARTAO DE DEBITO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelDebito},
	{ID: "debito-compra", Match: "COMPRA DEBITO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelDebito},
	{ID: "debito-automatico", Match: "DEBITO AUTOMATICO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelDebito},
	{ID: "credito-compra-cartao", Match: "COMPRA CARTAO CREDITO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelCredito},
	{ID: "credito-cartao-de", Match: "CARTAO DE CREDITO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelCredito},
	{ID: "credito-compra", Match: "COMPRA CREDITO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelCredito},
	{ID: "boleto-pagamento", Match: "PAGAMENTO BOLETO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelBoleto},
	{ID: "boleto-pago", Match: "BOLETO PAGO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelBoleto},
	{ID: "boleto", Match: "BOLETO", Scope: ScopeAnywhere, Priority: priorityChannel, Channel: model.ChannelBoleto},
	{ID: "doc", Match: "DOC", Scope: ScopePrefix, Priority: priorityChannel, Channel: model.ChannelOther},

	// Generic transaction-type prefixes.
	{ID: "transf-enviada", Match: "TRANSFERENCIA ENVIADA", Scope: ScopePrefix, Priority: priorityPrefix},
	{ID: "transf-recebida", Match: "TRANSFERENCIA RECEBIDA", Scope: ScopePrefix, Priority: priorityPrefix},
	{ID: "transferencia", Match: "TRANSFERENCIA", Scope: ScopePrefix, Priority: priorityPrefix},
	{ID: "pagamento-de", Match: "PAGAMENTO DE", Scope: ScopePrefix, Priority: priorityPrefix},
	{ID: "pagamento", Match: "PAGAMENTO", Scope: ScopePrefix, Priority: priorityPrefix},
	{ID: "pgto", Match: "PGTO", Scope: ScopePrefix, Priority: priorityPrefix},
	{ID: "pagto", Match: "PAGTO", Scope: ScopePrefix, Priority: priorityPrefix},
	{ID: "compra", Match: "COMPRA", Scope: ScopePrefix, Priority: priorityPrefix},
	{ID: "enviado-para", Match: "ENVIADO PARA", Scope: ScopePrefix, Priority: priorityPrefix},
	{ID: "recebido-de", Match: "RECEBIDO DE", Scope: ScopePrefix, Priority: priorityPrefix},

	// Mid-string markers.
	{ID: "parcela", Match: `PARCELA \d+/\d+`, Regex: true, Scope: ScopeAnywhere, Priority: priorityMarker},
	{ID: "parc", Match: `PARC \d+/\d+`, Regex: true, Scope: ScopeAnywhere, Priority: priorityMarker},
	{ID: "processor-tag", Match: `\*[A-Z0-9]+`, Regex: true, Scope: ScopeSuffix, Priority: priorityMarker},

	// Location and country suffixes.
	{ID: "suffix-br", Match: "BR", Scope: ScopeSuffix, Priority: prioritySuffix},
	{ID: "suffix-bra", Match: "BRA", Scope: ScopeSuffix, Priority: prioritySuffix},
	{ID: "suffix-brasil", Match: "BRASIL", Scope: ScopeSuffix, Priority: prioritySuffix},

	// Pure boilerplate with no counterparty.
	{ID: "taxa-manutencao", Match: "TAXA DE MANUTENCAO", Scope: ScopeAnywhere, Priority: priorityBoilerpl},
	{ID: "tarifa-bancaria", Match: "TARIFA BANCARIA", Scope: ScopeAnywhere, Priority: priorityBoilerpl},
	{ID: "tarifa-pacote", Match: "TARIFA PACOTE SERVICOS", Scope: ScopeAnywhere, Priority: priorityBoilerpl},
	{ID: "anuidade", Match: "ANUIDADE", Scope: ScopeAnywhere, Priority: priorityBoilerpl},
	{ID: "rendimento-poupanca", Match: "RENDIMENTO POUPANCA", Scope: ScopeAnywhere, Priority: priorityBoilerpl},
	{ID: "iof", Match: "IOF", Scope: ScopeAnywhere, Priority: priorityBoilerpl},
}

// defaultDenylist holds generic banking words that survive the pattern
// passes in some contexts but are never a merchant name on their own.
var defaultDenylist = []string{
	"TAXA",
	"TARIFA",
	"JUROS",
	"MANUTENCAO",
	"MENSALIDADE",
	"SERVICO",
	"SERVICOS",
	"SALDO",
	"CONTA",
	"FATURA",
	"ESTORNO",
	"RESGATE",
	"APLICACAO",
	"DE",
	"DA",
	"DO",
}

// DefaultRegistry returns the registry built from the curated pattern set.
// The defaults are static data, so construction cannot fail.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultPatterns, defaultDenylist)
	if err != nil {
		panic(err)
	}
	return r
}
