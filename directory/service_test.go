package directory

import (
	"context"
	"testing"
	"time"

	"github.com/newshub-app/newshub/model"
	"github.com/newshub-app/newshub/store"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, _ := store.CreateTempDB(t)
	return NewService(db), db
}

func newClient() *model.Client {
	return &model.Client{
		FirstName: "Grace",
		LastName:  "Hopper",
		BirthDate: time.Date(1985, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestClientCRUD(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	client := newClient()
	require.NoError(t, s.CreateClient(ctx, client))
	require.NotZero(t, client.Id)

	got, err := s.GetClient(ctx, client.Id)
	require.NoError(t, err)
	require.Equal(t, "Grace", got.FirstName)

	got.LastName = "Hopper-Murray"
	require.NoError(t, s.UpdateClient(ctx, got))
	require.Equal(t, 1, got.Version)

	clients, err := s.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, "Hopper-Murray", clients[0].LastName)

	require.NoError(t, s.DeleteClient(ctx, client.Id))
	_, err = s.GetClient(ctx, client.Id)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateClientStaleVersionConflicts(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	client := newClient()
	require.NoError(t, s.CreateClient(ctx, client))

	winner, err := s.GetClient(ctx, client.Id)
	require.NoError(t, err)
	loser, err := s.GetClient(ctx, client.Id)
	require.NoError(t, err)

	winner.FirstName = "First"
	require.NoError(t, s.UpdateClient(ctx, winner))

	loser.FirstName = "Second"
	err = s.UpdateClient(ctx, loser)
	require.ErrorIs(t, err, store.ErrConcurrencyConflict)
}

func TestUpdateClientVanishedIsNotFound(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	client := newClient()
	require.NoError(t, s.CreateClient(ctx, client))
	require.NoError(t, s.DeleteClient(ctx, client.Id))

	client.FirstName = "Late"
	require.ErrorIs(t, s.UpdateClient(ctx, client), store.ErrNotFound)
}

func TestBoardCRUD(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	board := &model.NewsBoard{Id: "B1", Title: "Local Tech", Fee: 9.99}
	require.NoError(t, s.CreateBoard(ctx, board))

	// The natural key is caller-supplied, so a second create of the same id
	// is a constraint violation, not an upsert.
	dup := &model.NewsBoard{Id: "B1", Title: "Other", Fee: 1}
	require.ErrorIs(t, s.CreateBoard(ctx, dup), store.ErrConstraintViolation)

	board.Title = "Local Technology"
	require.NoError(t, s.UpdateBoard(ctx, board))

	stale := &model.NewsBoard{Id: "B1", Title: "Stale", Fee: 2, Version: 0}
	require.ErrorIs(t, s.UpdateBoard(ctx, stale), store.ErrConcurrencyConflict)

	got, err := s.GetBoard(ctx, "B1")
	require.NoError(t, err)
	require.Equal(t, "Local Technology", got.Title)

	require.NoError(t, s.DeleteBoard(ctx, "B1"))
	require.ErrorIs(t, s.DeleteBoard(ctx, "B1"), store.ErrNotFound)
}

func TestGetBoardEagerLoadsNews(t *testing.T) {
	s, db := setupService(t)
	ctx := context.Background()

	board := &model.NewsBoard{Id: "B1", Title: "Local Tech", Fee: 9.99}
	require.NoError(t, s.CreateBoard(ctx, board))

	boardID := "B1"
	news := model.News{NewsBoardID: &boardID, FileName: "k1", ImageUrl: "https://assets.test/news/k1"}
	require.NoError(t, db.Create(&news).Error)

	got, err := s.GetBoard(ctx, "B1")
	require.NoError(t, err)
	require.Len(t, got.News, 1)
	require.Equal(t, "k1", got.News[0].FileName)
}

func TestDeleteClientCascadesSubscriptions(t *testing.T) {
	s, db := setupService(t)
	ctx := context.Background()

	client := newClient()
	require.NoError(t, s.CreateClient(ctx, client))
	require.NoError(t, s.CreateBoard(ctx, &model.NewsBoard{Id: "B1", Title: "Local Tech", Fee: 9.99}))
	require.NoError(t, db.Create(&model.Subscription{ClientID: client.Id, NewsBoardID: "B1"}).Error)

	require.NoError(t, s.DeleteClient(ctx, client.Id))

	var count int64
	db.Model(&model.Subscription{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestDeleteBoardCascadesSubscriptionsButKeepsNews(t *testing.T) {
	s, db := setupService(t)
	ctx := context.Background()

	client := newClient()
	require.NoError(t, s.CreateClient(ctx, client))
	require.NoError(t, s.CreateBoard(ctx, &model.NewsBoard{Id: "B1", Title: "Local Tech", Fee: 9.99}))
	require.NoError(t, db.Create(&model.Subscription{ClientID: client.Id, NewsBoardID: "B1"}).Error)

	boardID := "B1"
	news := model.News{NewsBoardID: &boardID, FileName: "k1", ImageUrl: "https://assets.test/news/k1"}
	require.NoError(t, db.Create(&news).Error)

	require.NoError(t, s.DeleteBoard(ctx, "B1"))

	var subCount int64
	db.Model(&model.Subscription{}).Count(&subCount)
	require.Equal(t, int64(0), subCount)

	// The news row survives with its board reference nulled; its blob is the
	// reconciler's problem.
	var got model.News
	require.NoError(t, db.First(&got, "id = ?", news.Id).Error)
	require.Nil(t, got.NewsBoardID)
}
