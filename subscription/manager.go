// Package subscription owns the client<->board join-entity lifecycle and the
// projection assembly for the subscription editing surface.
package subscription

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/newshub-app/newshub/model"
	"github.com/newshub-app/newshub/store"
	Logger "github.com/newshub-app/newshub/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Manager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// Register subscribes a client to a board by inserting the join row with the
// composite key (clientID, boardID). There is no pre-check: a duplicate pair
// or a dangling client/board reference is rejected by the database at commit
// time and surfaces as ErrConstraintViolation. On success it returns the
// refreshed editing projection.
func (m *Manager) Register(ctx context.Context, clientID int, boardID string) (*model.ClientSubscriptionsView, error) {
	sub := model.Subscription{ClientID: clientID, NewsBoardID: boardID}
	if err := m.db.WithContext(ctx).Create(&sub).Error; err != nil {
		if store.IsUniqueViolation(err) || store.IsForeignKeyViolation(err) {
			return nil, errors.Wrapf(store.ErrConstraintViolation, "register client %d to board %s: %v", clientID, boardID, err)
		}
		return nil, errors.Wrapf(err, "register client %d to board %s", clientID, boardID)
	}

	Logger.Log.Info("registered subscription: client ", clientID, " board ", boardID)
	return m.EditProjection(ctx, clientID)
}

// Deregister removes the subscription identified by the composite key. A
// missing pair is a loud failure (ErrNotFound), never a silent no-op.
func (m *Manager) Deregister(ctx context.Context, clientID int, boardID string) (*model.ClientSubscriptionsView, error) {
	var sub model.Subscription
	res := m.db.WithContext(ctx).
		Where("client_id = ? AND news_board_id = ?", clientID, boardID).
		First(&sub)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(store.ErrNotFound, "subscription (%d, %s)", clientID, boardID)
	}
	if res.Error != nil {
		return nil, errors.Wrapf(res.Error, "look up subscription (%d, %s)", clientID, boardID)
	}

	if err := m.db.WithContext(ctx).Delete(&sub).Error; err != nil {
		return nil, errors.Wrapf(err, "deregister client %d from board %s", clientID, boardID)
	}

	Logger.Log.Info("deregistered subscription: client ", clientID, " board ", boardID)
	return m.EditProjection(ctx, clientID)
}

// EditProjection assembles the snapshot behind the subscription editor: the
// requesting client plus every board with its subscriptions and each
// subscription's client eager-loaded (two-level load). The result is a deep
// copy detached from the gorm session.
func (m *Manager) EditProjection(ctx context.Context, clientID int) (*model.ClientSubscriptionsView, error) {
	var client model.Client
	err := m.db.WithContext(ctx).First(&client, "id = ?", clientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(store.ErrNotFound, "client %d", clientID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fetch client %d", clientID)
	}

	var boards []model.NewsBoard
	if err := m.db.WithContext(ctx).
		Preload("Subscriptions.Client").
		Order("id").
		Find(&boards).Error; err != nil {
		return nil, errors.Wrap(err, "fetch boards for subscription editor")
	}

	view := &model.ClientSubscriptionsView{}
	if err := copier.Copy(&view.Client, &client); err != nil {
		return nil, errors.Wrap(err, "snapshot client")
	}
	if err := copier.Copy(&view.NewsBoards, &boards); err != nil {
		return nil, errors.Wrap(err, "snapshot boards")
	}
	return view, nil
}

// ListBoardView assembles the directory listing: always every client; when a
// client id is supplied, additionally that client's subscriptions and the
// complete board list. The board list is deliberately never narrowed to the
// subscription filter.
func (m *Manager) ListBoardView(ctx context.Context, clientID *int) (*model.BoardDirectoryView, error) {
	view := &model.BoardDirectoryView{}

	var clients []model.Client
	if err := m.db.WithContext(ctx).Order("id").Find(&clients).Error; err != nil {
		return nil, errors.Wrap(err, "fetch clients")
	}
	if err := copier.Copy(&view.Clients, &clients); err != nil {
		return nil, errors.Wrap(err, "snapshot clients")
	}

	if clientID == nil {
		return view, nil
	}

	var subs []model.Subscription
	if err := m.db.WithContext(ctx).
		Where("client_id = ?", *clientID).
		Find(&subs).Error; err != nil {
		return nil, errors.Wrapf(err, "fetch subscriptions of client %d", *clientID)
	}

	var boards []model.NewsBoard
	if err := m.db.WithContext(ctx).Order("id").Find(&boards).Error; err != nil {
		return nil, errors.Wrap(err, "fetch boards")
	}

	if err := copier.Copy(&view.Subscriptions, &subs); err != nil {
		return nil, errors.Wrap(err, "snapshot subscriptions")
	}
	if err := copier.Copy(&view.NewsBoards, &boards); err != nil {
		return nil, errors.Wrap(err, "snapshot boards")
	}
	return view, nil
}
