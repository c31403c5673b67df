package coupling

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hypercouple/pkg/errors"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		id   string
		want Algorithm
	}{
		{"none", None},
		{"productive-expiries", ProductiveExpiries},
		{"frontier-expiries", FrontierExpiries},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.id, got.String())
		})
	}

	_, err := ParseAlgorithm("Frontier-Expiries")
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownAlgorithm), "ids are case sensitive")
}

func TestAlgorithmRegistry(t *testing.T) {
	assert.Equal(t, "None (Original)", None.Name())
	assert.Equal(t, "Show original edges without coupling", None.Description())
	assert.Equal(t, "Productive Expiries", ProductiveExpiries.Name())
	assert.Equal(t, FrontierExpiries, DefaultAlgorithm)

	for _, a := range Algorithms() {
		assert.NotEmpty(t, a.Name())
		assert.NotEmpty(t, a.Description())
	}
}

func TestAlgorithmText(t *testing.T) {
	var cfg struct {
		Algorithm Algorithm `json:"algorithm"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"algorithm":"productive-expiries"}`), &cfg))
	assert.Equal(t, ProductiveExpiries, cfg.Algorithm)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"algorithm":"productive-expiries"}`, string(out))

	err = json.Unmarshal([]byte(`{"algorithm":"magic"}`), &cfg)
	assert.Error(t, err)
}
