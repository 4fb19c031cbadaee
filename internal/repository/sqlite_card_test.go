package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/pinboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	b := testutil.NewTestBoard("")
	require.NoError(t, NewSQLiteBoardRepo(db).Create(ctx, b))
	repo := NewSQLiteCardRepo(db)

	c := testutil.NewTestCard(b.ID, "Ship it",
		testutil.WithPosition(42.5, 17.25),
		testutil.WithSize(20, 12),
		testutil.WithCardColor("#DBEAFE"),
		testutil.WithZIndex(7),
	)
	require.NoError(t, repo.Create(ctx, c))

	fetched, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ship it", fetched.Content)
	assert.Equal(t, 42.5, fetched.X)
	assert.Equal(t, 17.25, fetched.Y)
	assert.Equal(t, 20.0, fetched.Width)
	assert.Equal(t, 12.0, fetched.Height)
	assert.Equal(t, "#DBEAFE", fetched.Color)
	assert.Equal(t, 7, fetched.ZIndex)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCardRepo_ListByBoardInDrawOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	boards := NewSQLiteBoardRepo(db)
	b := testutil.NewTestBoard("")
	other := testutil.NewTestBoard("")
	require.NoError(t, boards.Create(ctx, b))
	require.NoError(t, boards.Create(ctx, other))
	repo := NewSQLiteCardRepo(db)

	require.NoError(t, repo.Create(ctx, testutil.NewTestCard(b.ID, "top", testutil.WithZIndex(3))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCard(b.ID, "bottom", testutil.WithZIndex(1))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCard(b.ID, "middle", testutil.WithZIndex(2))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCard(other.ID, "elsewhere")))

	cards, err := repo.ListByBoard(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, []string{"bottom", "middle", "top"},
		[]string{cards[0].Content, cards[1].Content, cards[2].Content})
}

func TestCardRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	b := testutil.NewTestBoard("")
	require.NoError(t, NewSQLiteBoardRepo(db).Create(ctx, b))
	repo := NewSQLiteCardRepo(db)

	c := testutil.NewTestCard(b.ID, "before")
	require.NoError(t, repo.Create(ctx, c))

	c.Content = "after"
	c.X, c.Y = 80, 85
	require.NoError(t, repo.Update(ctx, c))

	fetched, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", fetched.Content)
	assert.Equal(t, 80.0, fetched.X)

	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, c), ErrNotFound)
}

func TestCardRepo_RejectsOutOfBoundsGeometry(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	b := testutil.NewTestBoard("")
	require.NoError(t, NewSQLiteBoardRepo(db).Create(ctx, b))
	repo := NewSQLiteCardRepo(db)

	assert.Error(t, repo.Create(ctx, testutil.NewTestCard(b.ID, "", testutil.WithSize(5, 10))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestCard(b.ID, "", testutil.WithPosition(-1, 0))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestCard("no-such-board", "")))
}
