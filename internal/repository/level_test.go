package repository

import (
	"context"
	"testing"

	"github.com/helferherz/karmalama/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRepository_TableFallsBackToDefaults(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLevelRepository(db)
	ctx := context.Background()

	table, err := repo.Table(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, table.ForPoints(0))
	assert.Greater(t, table.ForPoints(10000), 1)
}

func TestLevelRepository_Replace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLevelRepository(db)
	ctx := context.Background()

	err := repo.Replace(ctx, []models.Level{
		{Points: 0, Number: 1},
		{Points: 100, Number: 2},
	})
	require.NoError(t, err)

	levels, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, 100, levels[1].Points)

	table, err := repo.Table(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, table.ForPoints(99))
	assert.Equal(t, 2, table.ForPoints(100))

	// Replacing again fully swaps the table.
	err = repo.Replace(ctx, []models.Level{{Points: 0, Number: 1}})
	require.NoError(t, err)
	levels, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, levels, 1)
}
