package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFilesDecode(t *testing.T) {
	var regions []distrettoSeed
	require.NoError(t, readJSON("data/distretti.json", &regions))
	require.NotEmpty(t, regions)
	seen := map[string]bool{}
	for _, r := range regions {
		assert.NotEmpty(t, r.Nome)
		assert.False(t, seen[r.Nome], "duplicate region %q", r.Nome)
		seen[r.Nome] = true
		require.NotNil(t, r.PosX)
		require.NotNil(t, r.PosY)
		assert.InDelta(t, 50, *r.PosX, 50)
		assert.InDelta(t, 50, *r.PosY, 50)
	}

	var treatments []trattamentoSeed
	require.NoError(t, readJSON("data/trattamenti.json", &treatments))
	assert.NotEmpty(t, treatments)
}
