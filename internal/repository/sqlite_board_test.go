package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/pinboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBoardRepo(db)
	ctx := context.Background()

	b := testutil.NewTestBoard("Roadmap")
	require.NoError(t, repo.Create(ctx, b))

	fetched, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", fetched.Name)
	assert.True(t, b.CreatedAt.Equal(fetched.CreatedAt))
}

func TestBoardRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBoardRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardRepo_GetByName_CaseInsensitiveOldestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBoardRepo(db)
	ctx := context.Background()

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := testutil.NewTestBoard("Ideas", testutil.WithCreatedAt(old))
	second := testutil.NewTestBoard("IDEAS", testutil.WithCreatedAt(old.Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	fetched, err := repo.GetByName(ctx, "ideas")
	require.NoError(t, err)
	assert.Equal(t, first.ID, fetched.ID)

	_, err = repo.GetByName(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardRepo_ListOrderedByCreation(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBoardRepo(db)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"C", "A", "B"} {
		b := testutil.NewTestBoard(name, testutil.WithCreatedAt(base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, repo.Create(ctx, b))
	}

	boards, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 3)
	assert.Equal(t, "C", boards[0].Name)
	assert.Equal(t, "B", boards[2].Name)
}

func TestBoardRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBoardRepo(db)
	ctx := context.Background()

	b := testutil.NewTestBoard("Draft")
	require.NoError(t, repo.Create(ctx, b))

	b.Name = "Final"
	b.UpdatedAt = b.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, b))

	fetched, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", fetched.Name)
	assert.True(t, fetched.UpdatedAt.After(fetched.CreatedAt))

	require.NoError(t, repo.Delete(ctx, b.ID))
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), ErrNotFound)

	missing := testutil.NewTestBoard("Ghost")
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestBoardRepo_Touch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBoardRepo(db)
	ctx := context.Background()

	b := testutil.NewTestBoard("Touched")
	require.NoError(t, repo.Create(ctx, b))

	later := b.UpdatedAt.Add(2 * time.Hour)
	require.NoError(t, repo.Touch(ctx, b.ID, later))

	fetched, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, later.Equal(fetched.UpdatedAt))
	assert.Equal(t, "Touched", fetched.Name)
}
