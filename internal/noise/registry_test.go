package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
)

func TestNewRegistry_PriorityOrdering(t *testing.T) {
	registry, err := NewRegistry([]Pattern{
		{ID: "compra", Match: "COMPRA", Scope: ScopePrefix, Priority: 800},
		{ID: "compra-debito", Match: "COMPRA CARTAO DEBITO", Scope: ScopeAnywhere, Priority: 1000},
	}, nil)
	require.NoError(t, err)

	remainder, removals := registry.Apply("COMPRA CARTAO DEBITO UBER")

	assert.Equal(t, "UBER", remainder)
	require.Len(t, removals, 1)
	assert.Equal(t, "compra-debito", removals[0].Pattern.ID,
		"the higher-priority pattern must consume the text before the generic prefix sees it")
}

func TestNewRegistry_LongerPhraseWinsWithinBand(t *testing.T) {
	registry, err := NewRegistry([]Pattern{
		{ID: "pix", Match: "PIX", Scope: ScopeAnywhere, Priority: 1000},
		{ID: "pix-enviado", Match: "PIX ENVIADO", Scope: ScopeAnywhere, Priority: 1000},
	}, nil)
	require.NoError(t, err)

	_, removals := registry.Apply("PIX ENVIADO CACAU SHOW")

	require.Len(t, removals, 1)
	assert.Equal(t, "pix-enviado", removals[0].Pattern.ID)
}

func TestRegistry_ScopeAnchoring(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		input   string
		want    string
	}{
		{
			name:    "prefix scope matches only at the start",
			pattern: Pattern{ID: "p", Match: "COMPRA", Scope: ScopePrefix, Priority: 1},
			input:   "SUPERMERCADO COMPRA FACIL",
			want:    "SUPERMERCADO COMPRA FACIL",
		},
		{
			name:    "prefix scope strips the start",
			pattern: Pattern{ID: "p", Match: "COMPRA", Scope: ScopePrefix, Priority: 1},
			input:   "COMPRA PADARIA REAL",
			want:    "PADARIA REAL",
		},
		{
			name:    "suffix scope matches only at the end",
			pattern: Pattern{ID: "s", Match: "BR", Scope: ScopeSuffix, Priority: 1},
			input:   "BR MEDICAMENTOS",
			want:    "BR MEDICAMENTOS",
		},
		{
			name:    "suffix scope strips the end",
			pattern: Pattern{ID: "s", Match: "BR", Scope: ScopeSuffix, Priority: 1},
			input:   "CACAU SHOW BR",
			want:    "CACAU SHOW",
		},
		{
			name:    "word boundary protects embedded occurrences",
			pattern: Pattern{ID: "a", Match: "BR", Scope: ScopeAnywhere, Priority: 1},
			input:   "SOMBRA E AGUA FRESCA",
			want:    "SOMBRA E AGUA FRESCA",
		},
		{
			name:    "anywhere scope strips mid-string tokens",
			pattern: Pattern{ID: "a", Match: "BR", Scope: ScopeAnywhere, Priority: 1},
			input:   "POSTO BR CENTRO",
			want:    "POSTO CENTRO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewRegistry([]Pattern{tt.pattern}, nil)
			require.NoError(t, err)

			remainder, _ := registry.Apply(tt.input)
			assert.Equal(t, tt.want, remainder)
		})
	}
}

func TestNewRegistry_InvalidPattern(t *testing.T) {
	_, err := NewRegistry([]Pattern{
		{ID: "bad-regex", Match: `[unclosed`, Scope: ScopeAnywhere, Regex: true},
	}, nil)
	assert.Error(t, err)

	_, err = NewRegistry([]Pattern{
		{ID: "bad-scope", Match: "PIX", Scope: Scope("sideways")},
	}, nil)
	assert.Error(t, err)
}

func TestDefaultRegistry_Apply(t *testing.T) {
	registry := DefaultRegistry()

	tests := []struct {
		name     string
		input    string
		want     string
		removals int
	}{
		{
			name:     "pix transfer with country suffix",
			input:    "PIX ENVIADO CACAU SHOW BR",
			want:     "CACAU SHOW",
			removals: 2,
		},
		{
			name:     "debit card purchase with processor tag",
			input:    "COMPRA CARTAO DEBITO UBER *TRIP",
			want:     "UBER",
			removals: 2,
		},
		{
			name:     "pure boilerplate consumes everything",
			input:    "TAXA DE MANUTENCAO",
			want:     "",
			removals: 1,
		},
		{
			name:     "numeric identifiers survive untouched",
			input:    "12345678900",
			want:     "12345678900",
			removals: 0,
		},
		{
			name:     "installment marker is stripped mid-string",
			input:    "MAGAZINE LUIZA PARCELA 2/10",
			want:     "MAGAZINE LUIZA",
			removals: 1,
		},
		{
			name:     "repeated noise converges in one pass",
			input:    "COMPRA COMPRA PADARIA REAL",
			want:     "PADARIA REAL",
			removals: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remainder, removals := registry.Apply(tt.input)
			assert.Equal(t, tt.want, remainder)
			assert.Len(t, removals, tt.removals)
		})
	}
}

func TestDefaultRegistry_ApplyIsIdempotent(t *testing.T) {
	registry := DefaultRegistry()

	inputs := []string{
		"PIX ENVIADO CACAU SHOW BR",
		"COMPRA CARTAO DEBITO UBER *TRIP",
		"TRANSFERENCIA PIX PAGAMENTO UBER BRASIL",
		"TAXA DE MANUTENCAO",
		"PADARIA DO ZE",
	}

	for _, input := range inputs {
		once, _ := registry.Apply(input)
		twice, removals := registry.Apply(once)
		assert.Equal(t, once, twice, "input %q", input)
		assert.Empty(t, removals, "input %q", input)
	}
}

func TestDefaultRegistry_ChannelMarkers(t *testing.T) {
	registry := DefaultRegistry()

	_, removals := registry.Apply("PIX ENVIADO CACAU SHOW")
	require.NotEmpty(t, removals)
	assert.Equal(t, model.ChannelPix, removals[0].Pattern.Channel)
	assert.Equal(t, "PIX ENVIADO", removals[0].Text)

	_, removals = registry.Apply("COMPRA CARTAO DEBITO UBER")
	require.NotEmpty(t, removals)
	assert.Equal(t, model.ChannelDebito, removals[0].Pattern.Channel)
}

func TestRegistry_IsResidualNoise(t *testing.T) {
	registry := DefaultRegistry()

	tests := []struct {
		candidate string
		want      bool
	}{
		{"TAXA", true},
		{"TARIFA DE SERVICOS", true},
		{"TAXA LUZ", false},
		{"CACAU SHOW", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			assert.Equal(t, tt.want, registry.IsResidualNoise(tt.candidate))
		})
	}
}

func TestCollapse(t *testing.T) {
	assert.Equal(t, "CACAU SHOW", Collapse("  CACAU   SHOW \t"))
	assert.Equal(t, "", Collapse("   "))
}
