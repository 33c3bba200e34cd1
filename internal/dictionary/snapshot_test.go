package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
)

func testEntries() []model.MerchantEntry {
	return []model.MerchantEntry{
		{
			ID:             1,
			CanonicalName:  "CACAU SHOW",
			CategoryID:     "alimentacao",
			Aliases:        []string{"CACAU SHOW FRANQUIA"},
			ConfidenceBase: 0.9,
		},
		{
			ID:             2,
			CanonicalName:  "UBER",
			CategoryID:     "transporte",
			Aliases:        []string{"UBER TRIP", "UBER EATS"},
			ConfidenceBase: 0.85,
		},
		{
			ID:             3,
			CanonicalName:  "PAGSEGURO INSTITUICAO",
			CategoryID:     "servicos-financeiros",
			Aliases:        []string{"PAGSEGURO"},
			ConfidenceBase: 0.8,
		},
		{
			ID:             4,
			CanonicalName:  "PAG COMERCIO",
			CategoryID:     "varejo",
			Aliases:        []string{"PAG"},
			ConfidenceBase: 0.8,
		},
	}
}

func TestSnapshot_ExactCanonicalMatch(t *testing.T) {
	s := NewSnapshot(testEntries(), "")

	entry := s.Lookup("CACAU SHOW")
	require.NotNil(t, entry)
	assert.Equal(t, "alimentacao", entry.CategoryID)
}

func TestSnapshot_ExactAliasMatch(t *testing.T) {
	s := NewSnapshot(testEntries(), "")

	entry := s.Lookup("UBER EATS")
	require.NotNil(t, entry)
	assert.Equal(t, "UBER", entry.CanonicalName)
}

func TestSnapshot_ContainmentLongestAliasWins(t *testing.T) {
	s := NewSnapshot(testEntries(), "")

	// "PAGSEGURO LTDA" contains both "PAG" and "PAGSEGURO"; the longer
	// alias must win.
	entry := s.Lookup("PAGSEGURO LTDA")
	require.NotNil(t, entry)
	assert.Equal(t, "PAGSEGURO INSTITUICAO", entry.CanonicalName)
}

func TestSnapshot_ContainmentBothDirections(t *testing.T) {
	s := NewSnapshot(testEntries(), "")

	// Candidate inside the alias.
	entry := s.Lookup("CACAU SHOW FRANQ")
	require.NotNil(t, entry)
	assert.Equal(t, "CACAU SHOW", entry.CanonicalName)

	// Alias inside the candidate.
	entry = s.Lookup("UBER TRIP SAO PAULO")
	require.NotNil(t, entry)
	assert.Equal(t, "UBER", entry.CanonicalName)
}

func TestSnapshot_NoMatchReturnsNil(t *testing.T) {
	s := NewSnapshot(testEntries(), "")

	assert.Nil(t, s.Lookup("MERCEARIA DO BAIRRO"))
	assert.Nil(t, s.Lookup(""))
}

func TestSnapshot_AccentAndCaseFolding(t *testing.T) {
	entries := []model.MerchantEntry{
		{
			ID:             1,
			CanonicalName:  "Pão de Açúcar",
			CategoryID:     "supermercado",
			ConfidenceBase: 0.9,
		},
	}
	s := NewSnapshot(entries, "")

	entry := s.Lookup("PAO DE ACUCAR")
	require.NotNil(t, entry)
	assert.Equal(t, "supermercado", entry.CategoryID)

	entry = s.Lookup("pão de açúcar zona sul")
	require.NotNil(t, entry)
	assert.Equal(t, "supermercado", entry.CategoryID)
}

func TestSnapshot_UserOverridePrecedence(t *testing.T) {
	entries := []model.MerchantEntry{
		{
			ID:             1,
			CanonicalName:  "UBER",
			CategoryID:     "transporte",
			ConfidenceBase: 0.85,
		},
		{
			ID:             2,
			CanonicalName:  "UBER",
			CategoryID:     "viagens-trabalho",
			UserID:         "user-1",
			ConfidenceBase: 0.95,
		},
		{
			ID:             3,
			CanonicalName:  "IFOOD",
			CategoryID:     "restaurantes",
			UserID:         "user-2",
			ConfidenceBase: 0.9,
		},
	}

	s := NewSnapshot(entries, "user-1")

	entry := s.Lookup("UBER")
	require.NotNil(t, entry)
	assert.Equal(t, "viagens-trabalho", entry.CategoryID,
		"the user's override must shadow the global entry")

	// Another user's override is invisible.
	assert.Nil(t, s.Lookup("IFOOD"))

	// Without a user, only the global partition answers.
	global := NewSnapshot(entries, "")
	entry = global.Lookup("UBER")
	require.NotNil(t, entry)
	assert.Equal(t, "transporte", entry.CategoryID)
}

func TestSnapshot_OverrideContainmentBeatsGlobalExact(t *testing.T) {
	entries := []model.MerchantEntry{
		{
			ID:             1,
			CanonicalName:  "POSTO SHELL",
			CategoryID:     "combustivel",
			ConfidenceBase: 0.85,
		},
		{
			ID:             2,
			CanonicalName:  "SHELL",
			CategoryID:     "carro-pessoal",
			UserID:         "user-1",
			Aliases:        []string{"POSTO SHELL"},
			ConfidenceBase: 0.9,
		},
	}

	s := NewSnapshot(entries, "user-1")

	// The whole override partition is consulted before the global one.
	entry := s.Lookup("POSTO SHELL")
	require.NotNil(t, entry)
	assert.Equal(t, "carro-pessoal", entry.CategoryID)
}

func TestSnapshot_Size(t *testing.T) {
	s := NewSnapshot(testEntries(), "")
	// 4 canonical names + 5 distinct aliases.
	assert.Equal(t, 9, s.Size())

	empty := NewSnapshot(nil, "")
	assert.Equal(t, 0, empty.Size())
}
