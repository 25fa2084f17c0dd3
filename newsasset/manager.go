// Package newsasset orchestrates the news-item asset lifecycle: upload the
// blob then record the row, and the inverse delete-blob-then-delete-row. The
// relational store and the asset store share no transaction, so each
// workflow is an explicit step sequence whose failures are classified per
// step; reconcile.go is the recovery policy for the gap between them.
package newsasset

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/newshub-app/newshub/filestore"
	"github.com/newshub-app/newshub/model"
	"github.com/newshub-app/newshub/store"
	Logger "github.com/newshub-app/newshub/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Steps of the create workflow, in order. A failure aborts the sequence at
// the failing step: nothing later runs, nothing earlier is rolled back.
const (
	stepEnsureContainer = "ensure_container"
	stepUpload          = "upload"
	stepRecord          = "record"
	stepPurge           = "purge"
)

type Manager struct {
	db     *gorm.DB
	assets filestore.AssetStore
}

func NewManager(db *gorm.DB, assets filestore.AssetStore) *Manager {
	return &Manager{db: db, assets: assets}
}

// CreateNewsItem uploads the content under a fresh random key and records a
// News row pointing at it. An upload failure aborts before the record step,
// so a row is never persisted for a blob that was not stored. The converse
// gap (blob stored, row insert fails) is left to reconciliation.
func (m *Manager) CreateNewsItem(ctx context.Context, content io.Reader, boardID string) (*model.News, error) {
	if err := m.assets.EnsureBucket(ctx); err != nil {
		return nil, m.storageFailure(stepEnsureContainer, err)
	}

	// The object key is never derived from the user-supplied file name, so
	// uploads can't collide or smuggle path segments.
	key := uuid.NewString()

	exists, err := m.assets.Exists(ctx, key)
	if err != nil {
		return nil, m.storageFailure(stepUpload, err)
	}
	if exists {
		// Defensive: a random key should never collide, but if it somehow
		// does, replace rather than append.
		if err := m.assets.Delete(ctx, key); err != nil {
			return nil, m.storageFailure(stepUpload, err)
		}
	}
	if err := m.assets.Put(ctx, key, content); err != nil {
		return nil, m.storageFailure(stepUpload, err)
	}

	news := model.News{
		NewsBoardID: &boardID,
		FileName:    key,
		ImageUrl:    m.assets.PublicURL(key),
	}
	if err := m.db.WithContext(ctx).Create(&news).Error; err != nil {
		if store.IsForeignKeyViolation(err) {
			return nil, errors.Wrapf(store.ErrConstraintViolation, "%s: board %s does not exist: %v", stepRecord, boardID, err)
		}
		return nil, errors.Wrapf(err, "%s: news item for board %s", stepRecord, boardID)
	}

	Logger.Log.Info("created news item ", news.Id, " for board ", boardID, " with key ", key)
	return &news, nil
}

// DeleteNewsItem removes the row's blob and then the row itself. A storage
// failure aborts before the database delete, keeping the row intact: a blob
// must never outlive the only record pointing at it. It returns the id of
// the formerly-owning board for the caller's redirect.
func (m *Manager) DeleteNewsItem(ctx context.Context, newsID int) (*string, error) {
	var news model.News
	err := m.db.WithContext(ctx).First(&news, "id = ?", newsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(store.ErrNotFound, "news %d", newsID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fetch news %d", newsID)
	}

	exists, err := m.assets.Exists(ctx, news.FileName)
	if err != nil {
		return nil, m.storageFailure(stepPurge, err)
	}
	if exists {
		if err := m.assets.Delete(ctx, news.FileName); err != nil {
			return nil, m.storageFailure(stepPurge, err)
		}
	}

	if err := m.db.WithContext(ctx).Delete(&news).Error; err != nil {
		return nil, errors.Wrapf(err, "delete news row %d", newsID)
	}

	Logger.Log.Info("deleted news item ", newsID, " and object ", news.FileName)
	return news.NewsBoardID, nil
}

// ListForBoard assembles the news listing snapshot for one board.
func (m *Manager) ListForBoard(ctx context.Context, boardID string) (*model.NewsListView, error) {
	var board model.NewsBoard
	err := m.db.WithContext(ctx).
		Preload("News").
		First(&board, "id = ?", boardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(store.ErrNotFound, "board %s", boardID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fetch board %s with news", boardID)
	}

	view := &model.NewsListView{}
	if err := copier.Copy(&view.NewsBoard, &board); err != nil {
		return nil, errors.Wrap(err, "snapshot board")
	}
	view.News = view.NewsBoard.News
	view.NewsBoard.News = nil
	return view, nil
}

// GetNews fetches one news row with its owning board.
func (m *Manager) GetNews(ctx context.Context, newsID int) (*model.News, error) {
	var news model.News
	err := m.db.WithContext(ctx).
		Preload("NewsBoard").
		First(&news, "id = ?", newsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(store.ErrNotFound, "news %d", newsID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fetch news %d", newsID)
	}
	return &news, nil
}

// UpdateNews rewrites the mutable fields of an existing row. The stored
// object is untouched: editing reassigns the item, it never re-uploads.
func (m *Manager) UpdateNews(ctx context.Context, news *model.News) error {
	res := m.db.WithContext(ctx).Model(&model.News{}).
		Where("id = ?", news.Id).
		Updates(map[string]interface{}{
			"news_board_id": news.NewsBoardID,
			"file_name":     news.FileName,
			"image_url":     news.ImageUrl,
		})
	if res.Error != nil {
		if store.IsForeignKeyViolation(res.Error) {
			return errors.Wrapf(store.ErrConstraintViolation, "update news %d: %v", news.Id, res.Error)
		}
		return errors.Wrapf(res.Error, "update news %d", news.Id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(store.ErrNotFound, "news %d", news.Id)
	}
	return nil
}

func (m *Manager) storageFailure(step string, err error) error {
	Logger.Log.Error("asset store failure at step ", step, ": ", err)
	return errors.Wrapf(store.ErrStorageUnavailable, "%s: %v", step, err)
}
