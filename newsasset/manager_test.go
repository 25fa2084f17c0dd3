package newsasset

import (
	"bytes"
	"context"
	"testing"

	"github.com/newshub-app/newshub/filestore"
	"github.com/newshub-app/newshub/model"
	"github.com/newshub-app/newshub/store"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupManager(t *testing.T) (*Manager, *gorm.DB, *filestore.FakeAssetStore) {
	t.Helper()
	db, _ := store.CreateTempDB(t)
	fake := filestore.NewFakeAssetStore()

	board := model.NewsBoard{Id: "B1", Title: "Local Tech", Fee: 9.99}
	require.NoError(t, db.Create(&board).Error)

	return NewManager(db, fake), db, fake
}

func TestCreateNewsItem(t *testing.T) {
	m, db, fake := setupManager(t)

	news, err := m.CreateNewsItem(context.Background(), bytes.NewReader([]byte{0x01, 0x02}), "B1")
	require.NoError(t, err)
	require.NotEmpty(t, news.FileName)
	require.NotNil(t, news.NewsBoardID)
	require.Equal(t, "B1", *news.NewsBoardID)

	// Exactly one object, under the generated key, with the uploaded bytes.
	require.Equal(t, 1, fake.ObjectCount())
	require.Equal(t, []byte{0x01, 0x02}, fake.ObjectBytes(news.FileName))

	// The public address is deterministic: {endpoint}/{bucket}/{key}.
	require.Equal(t, fake.PublicURL(news.FileName), news.ImageUrl)
	require.Contains(t, news.ImageUrl, news.FileName)

	var count int64
	db.Model(&model.News{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestCreateNewsItemKeysNeverCollide(t *testing.T) {
	m, _, _ := setupManager(t)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		news, err := m.CreateNewsItem(context.Background(), bytes.NewReader([]byte("img")), "B1")
		require.NoError(t, err)
		require.False(t, seen[news.FileName], "key reused: %s", news.FileName)
		seen[news.FileName] = true
	}
}

func TestCreateNewsItemUploadFailureAbortsRecord(t *testing.T) {
	m, db, fake := setupManager(t)
	fake.FailPut = errors.New("connection reset")

	_, err := m.CreateNewsItem(context.Background(), bytes.NewReader([]byte("img")), "B1")
	require.ErrorIs(t, err, store.ErrStorageUnavailable)

	// Fail fast: no row may be persisted for a blob that was not stored.
	var count int64
	db.Model(&model.News{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestCreateNewsItemUnknownBoard(t *testing.T) {
	m, _, fake := setupManager(t)

	_, err := m.CreateNewsItem(context.Background(), bytes.NewReader([]byte("img")), "no-such-board")
	require.ErrorIs(t, err, store.ErrConstraintViolation)

	// The blob was already stored when the record step failed; the
	// reconciler is the one that mops it up.
	require.Equal(t, 1, fake.ObjectCount())
}

func TestDeleteNewsItem(t *testing.T) {
	m, db, fake := setupManager(t)

	news, err := m.CreateNewsItem(context.Background(), bytes.NewReader([]byte("img")), "B1")
	require.NoError(t, err)

	boardID, err := m.DeleteNewsItem(context.Background(), news.Id)
	require.NoError(t, err)
	require.NotNil(t, boardID)
	require.Equal(t, "B1", *boardID)

	exists, err := fake.Exists(context.Background(), news.FileName)
	require.NoError(t, err)
	require.False(t, exists)

	var count int64
	db.Model(&model.News{}).Where("id = ?", news.Id).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestDeleteNewsItemMissingRow(t *testing.T) {
	m, _, _ := setupManager(t)

	_, err := m.DeleteNewsItem(context.Background(), 4242)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteNewsItemBlobDeleteFailureKeepsRow(t *testing.T) {
	m, db, fake := setupManager(t)

	news, err := m.CreateNewsItem(context.Background(), bytes.NewReader([]byte("img")), "B1")
	require.NoError(t, err)

	fake.FailDelete = errors.New("503 slow down")
	_, err = m.DeleteNewsItem(context.Background(), news.Id)
	require.ErrorIs(t, err, store.ErrStorageUnavailable)

	// Ordering invariant: the row is deleted only after the blob is
	// confirmed gone.
	var count int64
	db.Model(&model.News{}).Where("id = ?", news.Id).Count(&count)
	require.Equal(t, int64(1), count)
	require.Equal(t, 1, fake.ObjectCount())
}

func TestListForBoard(t *testing.T) {
	m, _, _ := setupManager(t)

	news, err := m.CreateNewsItem(context.Background(), bytes.NewReader([]byte("img")), "B1")
	require.NoError(t, err)

	view, err := m.ListForBoard(context.Background(), "B1")
	require.NoError(t, err)
	require.Equal(t, "B1", view.NewsBoard.Id)
	require.Len(t, view.News, 1)
	require.Equal(t, news.Id, view.News[0].Id)

	_, err = m.ListForBoard(context.Background(), "no-such-board")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateNews(t *testing.T) {
	m, _, _ := setupManager(t)

	news, err := m.CreateNewsItem(context.Background(), bytes.NewReader([]byte("img")), "B1")
	require.NoError(t, err)

	news.NewsBoardID = nil
	require.NoError(t, m.UpdateNews(context.Background(), news))

	got, err := m.GetNews(context.Background(), news.Id)
	require.NoError(t, err)
	require.Nil(t, got.NewsBoardID)

	missing := &model.News{Id: 4242, FileName: "x", ImageUrl: "y"}
	require.ErrorIs(t, m.UpdateNews(context.Background(), missing), store.ErrNotFound)
}
