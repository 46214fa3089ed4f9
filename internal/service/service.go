package service

//go:generate mockgen -source=service.go -destination=../repository/mock/repository.go -package=mock_repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"itemsvc/internal/entity"
	"itemsvc/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	_slowOperationThreshold = 200 * time.Millisecond
)

type (
	ItemRepository interface {
		Create(ctx context.Context, item *entity.Item) (*entity.Item, error)
		Find(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error)
		FindOne(ctx context.Context, filter entity.ItemFilter) (*entity.Item, error)
		Update(
			ctx context.Context,
			filter entity.ItemFilter,
			patch entity.ItemPatch,
		) (*entity.Item, error)
		Delete(ctx context.Context, id primitive.ObjectID) error
		Ping(ctx context.Context) error
	}

	EventPublisher interface {
		Publish(ctx context.Context, event entity.ItemEvent) error
	}

	ItemService struct {
		repo      ItemRepository
		publisher EventPublisher
		logger    logger.Logger
		now       func() time.Time
	}
)

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, entity.ItemEvent) error { return nil }

// NewItemService wires the service. A nil publisher disables item events.
func NewItemService(
	repo ItemRepository,
	publisher EventPublisher,
	logger logger.Logger,
) *ItemService {
	if publisher == nil {
		publisher = noopPublisher{}
	}

	return &ItemService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ItemService) Create(ctx context.Context, in entity.ItemInput) (*entity.Item, error) {
	const op = "service.Create"
	log := s.logger.Ctx(ctx)
	defer s.warnIfSlow(ctx, op, time.Now())

	item, err := entity.NewItem(in)
	if err != nil {
		log.LogAttrs(ctx, logger.WarnLevel, "item validation failed",
			logger.String("op", op),
			logger.Err(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "item creation failed",
			logger.String("op", op),
			logger.Err(err),
		)
		return nil, fmt.Errorf("%s: create: %w", op, err)
	}

	log.LogAttrs(ctx, logger.InfoLevel, "item created",
		logger.String("op", op),
		logger.String("item_id", created.ID.Hex()),
	)

	s.publish(ctx, entity.EventItemCreated, created.ID, created)

	return created, nil
}

// FindAll returns every item that is not soft-deleted. No items is not an
// error.
func (s *ItemService) FindAll(ctx context.Context) ([]*entity.Item, error) {
	const op = "service.FindAll"
	defer s.warnIfSlow(ctx, op, time.Now())

	items, err := s.repo.Find(ctx, entity.Active())
	if err != nil {
		s.logger.Ctx(ctx).LogAttrs(ctx, logger.ErrorLevel, "items listing failed",
			logger.String("op", op),
			logger.Err(err),
		)
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}

	return items, nil
}

func (s *ItemService) FindOne(ctx context.Context, rawID string) (*entity.Item, error) {
	const op = "service.FindOne"
	defer s.warnIfSlow(ctx, op, time.Now())

	id, err := entity.ParseID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.repo.FindOne(ctx, entity.ActiveByID(id))
	if err != nil {
		return nil, s.failure(ctx, op, "find one", rawID, err)
	}

	return item, nil
}

// Update applies the provided fields to the item. The lookup does not skip
// soft-deleted items.
func (s *ItemService) Update(
	ctx context.Context,
	rawID string,
	patch entity.ItemPatch,
) (*entity.Item, error) {
	const op = "service.Update"
	defer s.warnIfSlow(ctx, op, time.Now())

	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := entity.ParseID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.repo.Update(ctx, entity.ByID(id), patch)
	if err != nil {
		return nil, s.failure(ctx, op, "update", rawID, err)
	}

	if !patch.IsEmpty() {
		s.publish(ctx, entity.EventItemUpdated, item.ID, item)
	}

	return item, nil
}

// Delete removes the item permanently, whether or not it was soft-deleted.
func (s *ItemService) Delete(ctx context.Context, rawID string) error {
	const op = "service.Delete"
	defer s.warnIfSlow(ctx, op, time.Now())

	id, err := entity.ParseID(rawID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return s.failure(ctx, op, "delete", rawID, err)
	}

	s.logger.Ctx(ctx).LogAttrs(ctx, logger.InfoLevel, "item deleted",
		logger.String("op", op),
		logger.String("item_id", rawID),
	)

	s.publish(ctx, entity.EventItemDeleted, id, nil)

	return nil
}

func (s *ItemService) ToggleStatus(
	ctx context.Context,
	rawID string,
	status bool,
) (*entity.Item, error) {
	const op = "service.ToggleStatus"
	defer s.warnIfSlow(ctx, op, time.Now())

	id, err := entity.ParseID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.repo.Update(ctx, entity.ByID(id), entity.ItemPatch{Status: &status})
	if err != nil {
		return nil, s.failure(ctx, op, "update status", rawID, err)
	}

	s.publish(ctx, entity.EventItemStatusChanged, item.ID, item)

	return item, nil
}

// SoftDelete flags the item as deleted. Only items not yet flagged match, so
// a repeated call reports not found.
func (s *ItemService) SoftDelete(ctx context.Context, rawID string) (*entity.Item, error) {
	const op = "service.SoftDelete"
	defer s.warnIfSlow(ctx, op, time.Now())

	id, err := entity.ParseID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	deleted := true
	item, err := s.repo.Update(ctx, entity.ActiveByID(id), entity.ItemPatch{IsDeleted: &deleted})
	if err != nil {
		return nil, s.failure(ctx, op, "soft delete", rawID, err)
	}

	s.logger.Ctx(ctx).LogAttrs(ctx, logger.InfoLevel, "item soft deleted",
		logger.String("op", op),
		logger.String("item_id", rawID),
	)

	s.publish(ctx, entity.EventItemSoftDeleted, item.ID, item)

	return item, nil
}

// Search looks items up by id or by name, depending on the query. An id
// match is returned even when the item is soft-deleted.
func (s *ItemService) Search(ctx context.Context, query string) ([]*entity.Item, error) {
	const op = "service.Search"
	log := s.logger.Ctx(ctx)
	defer s.warnIfSlow(ctx, op, time.Now())

	search, err := entity.NewItemSearch(query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.LogAttrs(ctx, logger.DebugLevel, "item search",
		logger.String("op", op),
		logger.String("kind", search.Kind().String()),
	)

	items, err := s.repo.Find(ctx, search.Filter())
	if err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "item search failed",
			logger.String("op", op),
			logger.String("kind", search.Kind().String()),
			logger.Err(err),
		)
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}

	return items, nil
}

// Ping reports whether the storage backend is reachable.
func (s *ItemService) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("service.Ping: %w", err)
	}
	return nil
}

func (s *ItemService) failure(ctx context.Context, op, step, rawID string, err error) error {
	if errors.Is(err, entity.ErrDataNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Ctx(ctx).LogAttrs(ctx, logger.ErrorLevel, "storage operation failed",
		logger.String("op", op),
		logger.String("item_id", rawID),
		logger.Err(err),
	)

	return fmt.Errorf("%s: %s: %w", op, step, err)
}

func (s *ItemService) publish(
	ctx context.Context,
	eventType entity.EventType,
	id primitive.ObjectID,
	item *entity.Item,
) {
	event := entity.ItemEvent{
		Type:       eventType,
		ItemID:     id,
		Item:       item,
		OccurredAt: s.now().UTC(),
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Ctx(ctx).LogAttrs(ctx, logger.WarnLevel, "item event publish failed",
			logger.String("type", string(eventType)),
			logger.String("item_id", id.Hex()),
			logger.Err(err),
		)
	}
}

func (s *ItemService) warnIfSlow(ctx context.Context, op string, start time.Time) {
	duration := time.Since(start)
	if duration > _slowOperationThreshold {
		s.logger.Ctx(ctx).LogAttrs(ctx, logger.WarnLevel, "slow service operation",
			logger.String("op", op),
			logger.Duration("duration", duration),
		)
	}
}
