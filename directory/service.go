// Package directory is plain CRUD over clients and boards. Updates carry an
// optimistic concurrency token; deletes lean on the schema's cascade rules.
package directory

import (
	"context"

	"github.com/newshub-app/newshub/model"
	"github.com/newshub-app/newshub/store"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) ListClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := s.db.WithContext(ctx).Order("id").Find(&clients).Error; err != nil {
		return nil, errors.Wrap(err, "list clients")
	}
	return clients, nil
}

func (s *Service) GetClient(ctx context.Context, id int) (*model.Client, error) {
	var client model.Client
	err := s.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(store.ErrNotFound, "client %d", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fetch client %d", id)
	}
	return &client, nil
}

func (s *Service) CreateClient(ctx context.Context, client *model.Client) error {
	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return errors.Wrap(err, "create client")
	}
	return nil
}

// UpdateClient performs a guarded update against the client's version token.
// Zero rows affected means either the record vanished (NotFound) or someone
// else updated it first (ConcurrencyConflict).
func (s *Service) UpdateClient(ctx context.Context, client *model.Client) error {
	res := s.db.WithContext(ctx).Model(&model.Client{}).
		Where("id = ? AND version = ?", client.Id, client.Version).
		Updates(map[string]interface{}{
			"first_name": client.FirstName,
			"last_name":  client.LastName,
			"birth_date": client.BirthDate,
			"version":    client.Version + 1,
		})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update client %d", client.Id)
	}
	if res.RowsAffected == 0 {
		return s.classifyStaleUpdate(ctx, &model.Client{}, client.Id, "client")
	}
	client.Version++
	return nil
}

// DeleteClient removes the client; its subscriptions cascade away at the
// schema level.
func (s *Service) DeleteClient(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&model.Client{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete client %d", id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(store.ErrNotFound, "client %d", id)
	}
	return nil
}

func (s *Service) ListBoards(ctx context.Context) ([]model.NewsBoard, error) {
	var boards []model.NewsBoard
	if err := s.db.WithContext(ctx).Order("id").Find(&boards).Error; err != nil {
		return nil, errors.Wrap(err, "list boards")
	}
	return boards, nil
}

// GetBoard fetches a board with its news eager-loaded, which is what the
// deletion confirmation surface displays.
func (s *Service) GetBoard(ctx context.Context, id string) (*model.NewsBoard, error) {
	var board model.NewsBoard
	err := s.db.WithContext(ctx).Preload("News").First(&board, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(store.ErrNotFound, "board %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fetch board %s", id)
	}
	return &board, nil
}

func (s *Service) CreateBoard(ctx context.Context, board *model.NewsBoard) error {
	if err := s.db.WithContext(ctx).Create(board).Error; err != nil {
		if store.IsUniqueViolation(err) {
			return errors.Wrapf(store.ErrConstraintViolation, "board %s already exists: %v", board.Id, err)
		}
		return errors.Wrapf(err, "create board %s", board.Id)
	}
	return nil
}

func (s *Service) UpdateBoard(ctx context.Context, board *model.NewsBoard) error {
	res := s.db.WithContext(ctx).Model(&model.NewsBoard{}).
		Where("id = ? AND version = ?", board.Id, board.Version).
		Updates(map[string]interface{}{
			"title":   board.Title,
			"fee":     board.Fee,
			"version": board.Version + 1,
		})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update board %s", board.Id)
	}
	if res.RowsAffected == 0 {
		return s.classifyStaleUpdate(ctx, &model.NewsBoard{}, board.Id, "board")
	}
	board.Version++
	return nil
}

// DeleteBoard removes the board. Subscriptions cascade away; news rows keep
// living with their board reference nulled, and their blobs stay in the
// asset store. Cleaning those up is the reconciler's business, not this
// path's.
func (s *Service) DeleteBoard(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.NewsBoard{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete board %s", id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(store.ErrNotFound, "board %s", id)
	}
	return nil
}

// classifyStaleUpdate re-checks existence after a guarded update touched
// nothing: not-found if the record vanished, otherwise the caller lost the
// race and the conflict escalates.
func (s *Service) classifyStaleUpdate(ctx context.Context, probe interface{}, id interface{}, kind string) error {
	err := s.db.WithContext(ctx).First(probe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(store.ErrNotFound, "%s %v", kind, id)
	}
	if err != nil {
		return errors.Wrapf(err, "re-check %s %v", kind, id)
	}
	return errors.Wrapf(store.ErrConcurrencyConflict, "%s %v", kind, id)
}
