package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileValidation(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr string
	}{
		{
			name:    "missing source id",
			spec:    Spec{TransactionPattern: `(a)(b)(c)`, DateFormat: "02/01"},
			wantErr: "source id",
		},
		{
			name: "transaction pattern with wrong group count",
			spec: Spec{
				SourceID:           "test",
				TransactionPattern: `(\d+)\s+(.+)`,
				DateFormat:         "02/01",
			},
			wantErr: "must capture 3 groups",
		},
		{
			name: "installment pattern with wrong group count",
			spec: Spec{
				SourceID:           "test",
				TransactionPattern: `(\d+)\s+(.+?)\s+(\d+)`,
				InstallmentPattern: `(\d+)`,
				DateFormat:         "02/01",
			},
			wantErr: "must capture 2 groups",
		},
		{
			name: "missing date format",
			spec: Spec{
				SourceID:           "test",
				TransactionPattern: `(\d+)\s+(.+?)\s+(\d+)`,
			},
			wantErr: "date format",
		},
		{
			name: "invalid noise pattern",
			spec: Spec{
				SourceID:           "test",
				TransactionPattern: `(\d+)\s+(.+?)\s+(\d+)`,
				DateFormat:         "02/01",
				NoisePatterns:      []string{`[`},
			},
			wantErr: "invalid noise pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompileDefaultsLocale(t *testing.T) {
	g, err := Compile(Spec{
		SourceID:           "test",
		TransactionPattern: `(\d+)\s+(.+?)\s+(\d+)`,
		DateFormat:         "02/01",
	})
	require.NoError(t, err)
	assert.Equal(t, "pt-BR", g.Locale)
}

func TestDefaultRegistry(t *testing.T) {
	registry, err := DefaultRegistry()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"nubank", "itau", "bradesco", "santander", "btg", "unicred", "c6", "caixa",
	}, registry.SourceIDs())

	assert.Equal(t, DefaultSourceID, registry.Default().SourceID)

	for _, id := range registry.SourceIDs() {
		g, ok := registry.Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, id, g.SourceID)
		assert.NotNil(t, g.TransactionPattern, id)
		assert.NotNil(t, g.InstallmentPattern, id)
		assert.NotEmpty(t, g.CategoryKeywords, id)
	}
}

func TestNewRegistryRejectsBadConfigurations(t *testing.T) {
	g := MustCompile(Spec{
		SourceID:           "solo",
		TransactionPattern: `(\d+)\s+(.+?)\s+(\d+)`,
		DateFormat:         "02/01",
	})

	_, err := NewRegistry("solo")
	assert.Error(t, err, "empty registry")

	_, err = NewRegistry("missing", g)
	assert.Error(t, err, "unregistered default")

	dup := MustCompile(Spec{
		SourceID:           "solo",
		TransactionPattern: `(\d+)\s+(.+?)\s+(\d+)`,
		DateFormat:         "02/01",
	})
	_, err = NewRegistry("solo", g, dup)
	assert.Error(t, err, "duplicate source id")
}

func TestIsNoise(t *testing.T) {
	registry := MustDefaultRegistry()
	c6, ok := registry.Lookup("c6")
	require.True(t, ok)

	assert.True(t, c6.IsNoise("R$"))
	assert.True(t, c6.IsNoise("R$ R$"))
	assert.True(t, c6.IsNoise("84670000001234567890123456"))
	assert.False(t, c6.IsNoise("IFOOD DELIVERY"))

	nubank, ok := registry.Lookup("nubank")
	require.True(t, ok)
	assert.False(t, nubank.IsNoise("R$"), "noise policy is per source")
}
