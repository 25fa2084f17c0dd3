package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/newshub-app/newshub/model"
	"github.com/newshub-app/newshub/store"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedClientAndBoard(t *testing.T, db *gorm.DB) (model.Client, model.NewsBoard) {
	t.Helper()
	client := model.Client{
		FirstName: "Ada",
		LastName:  "Lovelace",
		BirthDate: time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&client).Error)

	board := model.NewsBoard{Id: "B1", Title: "Local Tech", Fee: 9.99}
	require.NoError(t, db.Create(&board).Error)
	return client, board
}

func TestRegisterCreatesSubscriptionAndProjection(t *testing.T) {
	db, _ := store.CreateTempDB(t)
	m := NewManager(db)
	client, board := seedClientAndBoard(t, db)

	view, err := m.Register(context.Background(), client.Id, board.Id)
	require.NoError(t, err)
	require.Equal(t, client.Id, view.Client.Id)

	var count int64
	db.Model(&model.Subscription{}).
		Where("client_id = ? AND news_board_id = ?", client.Id, board.Id).
		Count(&count)
	require.Equal(t, int64(1), count)

	// Projection carries every board, with subscriptions and their clients
	// two levels deep.
	require.Len(t, view.NewsBoards, 1)
	require.Equal(t, board.Id, view.NewsBoards[0].Id)
	require.Len(t, view.NewsBoards[0].Subscriptions, 1)
	sub := view.NewsBoards[0].Subscriptions[0]
	require.Equal(t, client.Id, sub.ClientID)
	require.NotNil(t, sub.Client)
	require.Equal(t, "Ada", sub.Client.FirstName)
}

func TestRegisterDuplicatePairFails(t *testing.T) {
	db, _ := store.CreateTempDB(t)
	m := NewManager(db)
	client, board := seedClientAndBoard(t, db)

	_, err := m.Register(context.Background(), client.Id, board.Id)
	require.NoError(t, err)

	_, err = m.Register(context.Background(), client.Id, board.Id)
	require.ErrorIs(t, err, store.ErrConstraintViolation)
}

func TestRegisterDanglingReferenceFails(t *testing.T) {
	db, _ := store.CreateTempDB(t)
	m := NewManager(db)
	client, _ := seedClientAndBoard(t, db)

	_, err := m.Register(context.Background(), client.Id, "no-such-board")
	require.ErrorIs(t, err, store.ErrConstraintViolation)

	_, err = m.Register(context.Background(), client.Id+999, "B1")
	require.ErrorIs(t, err, store.ErrConstraintViolation)
}

func TestDeregisterRemovesSubscription(t *testing.T) {
	db, _ := store.CreateTempDB(t)
	m := NewManager(db)
	client, board := seedClientAndBoard(t, db)

	_, err := m.Register(context.Background(), client.Id, board.Id)
	require.NoError(t, err)

	view, err := m.Deregister(context.Background(), client.Id, board.Id)
	require.NoError(t, err)
	require.Len(t, view.NewsBoards, 1)
	require.Empty(t, view.NewsBoards[0].Subscriptions)

	var count int64
	db.Model(&model.Subscription{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestDeregisterMissingPairFailsLoudly(t *testing.T) {
	db, _ := store.CreateTempDB(t)
	m := NewManager(db)
	client, board := seedClientAndBoard(t, db)

	_, err := m.Deregister(context.Background(), client.Id, board.Id)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListBoardViewWithClientFilter(t *testing.T) {
	db, _ := store.CreateTempDB(t)
	m := NewManager(db)
	client, board := seedClientAndBoard(t, db)

	other := model.NewsBoard{Id: "B2", Title: "Gardening", Fee: 4.5}
	require.NoError(t, db.Create(&other).Error)

	_, err := m.Register(context.Background(), client.Id, board.Id)
	require.NoError(t, err)

	view, err := m.ListBoardView(context.Background(), &client.Id)
	require.NoError(t, err)
	require.Len(t, view.Clients, 1)

	// Exactly the one registered pair.
	require.Len(t, view.Subscriptions, 1)
	require.Equal(t, client.Id, view.Subscriptions[0].ClientID)
	require.Equal(t, board.Id, view.Subscriptions[0].NewsBoardID)

	// The board list stays complete even though a client filter is active.
	require.Len(t, view.NewsBoards, 2)
}

func TestListBoardViewWithoutClient(t *testing.T) {
	db, _ := store.CreateTempDB(t)
	m := NewManager(db)
	seedClientAndBoard(t, db)

	view, err := m.ListBoardView(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, view.Clients, 1)
	require.Empty(t, view.NewsBoards)
	require.Empty(t, view.Subscriptions)
}

func TestEditProjectionUnknownClient(t *testing.T) {
	db, _ := store.CreateTempDB(t)
	m := NewManager(db)

	_, err := m.EditProjection(context.Background(), 12345)
	require.ErrorIs(t, err, store.ErrNotFound)
}
