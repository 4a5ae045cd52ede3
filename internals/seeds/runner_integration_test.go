//go:build integration

package seeds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisiocatania_backend/internals/databases/dbtest"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
)

func TestRunAllSeedsIsIdempotent(t *testing.T) {
	db := dbtest.DB(t)
	ctx := context.Background()

	first, err := RunAllSeeds(ctx, db)
	require.NoError(t, err)
	assert.Positive(t, first.Distretti)
	assert.Positive(t, first.Trattamenti)

	second, err := RunAllSeeds(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, second.Distretti)
	assert.Zero(t, second.Trattamenti)

	var n int64
	require.NoError(t, db.Model(&distrettoModel.DistrettoModel{}).Count(&n).Error)
	assert.Equal(t, first.Distretti, n)
}
