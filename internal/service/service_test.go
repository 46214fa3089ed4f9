package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"itemsvc/internal/entity"
	mock_repository "itemsvc/internal/repository/mock"
	"itemsvc/internal/service"
	mock_logger "itemsvc/pkg/logger/mock"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStorage = errors.New("storage unavailable")

func generateFakeItem() *entity.Item {
	return &entity.Item{
		ID:          primitive.NewObjectID(),
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       gofakeit.Price(1, 1000),
		Status:      true,
		IsDeleted:   false,
	}
}

type eventTypeMatcher struct {
	eventType entity.EventType
}

func (m eventTypeMatcher) Matches(x any) bool {
	event, ok := x.(entity.ItemEvent)
	return ok && event.Type == m.eventType
}

func (m eventTypeMatcher) String() string {
	return fmt.Sprintf("is item event of type %q", m.eventType)
}

func eventOfType(eventType entity.EventType) gomock.Matcher {
	return eventTypeMatcher{eventType: eventType}
}

func newLoggerMock(ctrl *gomock.Controller) *mock_logger.MockLogger {
	log := mock_logger.NewMockLogger(ctrl)
	log.EXPECT().Ctx(gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().
		LogAttrs(gomock.Any(), gomock.Any(), "slow service operation", gomock.Any()).
		AnyTimes()
	return log
}

type createTestInput struct {
	in entity.ItemInput
}

type createTestExpected struct {
	err error
}

func TestItemService_Create(t *testing.T) {
	inactive := false

	testCases := []struct {
		desc  string
		mocks func(
			repo *mock_repository.MockItemRepository,
			publisher *mock_repository.MockEventPublisher,
			log *mock_logger.MockLogger,
		)
		input    createTestInput
		expected createTestExpected
	}{
		{
			desc: "Success_DefaultsApplied",
			mocks: func(
				repo *mock_repository.MockItemRepository,
				publisher *mock_repository.MockEventPublisher,
				log *mock_logger.MockLogger,
			) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item *entity.Item) (*entity.Item, error) {
						if !item.Status || item.IsDeleted {
							t.Errorf("unexpected defaults: status=%v isDeleted=%v", item.Status, item.IsDeleted)
						}
						created := *item
						created.ID = primitive.NewObjectID()
						return &created, nil
					}).Times(1)

				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "item created", gomock.Any()).
					Times(1)

				publisher.EXPECT().Publish(gomock.Any(), eventOfType(entity.EventItemCreated)).
					Return(nil).Times(1)
			},
			input: createTestInput{
				in: entity.ItemInput{Name: "Widget", Description: "A widget", Price: 9.5},
			},
			expected: createTestExpected{err: nil},
		},
		{
			desc: "Success_ExplicitStatus",
			mocks: func(
				repo *mock_repository.MockItemRepository,
				publisher *mock_repository.MockEventPublisher,
				log *mock_logger.MockLogger,
			) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item *entity.Item) (*entity.Item, error) {
						if item.Status {
							t.Errorf("expected explicit status false to be kept")
						}
						return item, nil
					}).Times(1)

				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "item created", gomock.Any()).
					Times(1)

				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)
			},
			input: createTestInput{
				in: entity.ItemInput{Name: "Gadget", Description: "-", Price: 1, Status: &inactive},
			},
			expected: createTestExpected{err: nil},
		},
		{
			desc: "InvalidName",
			mocks: func(
				repo *mock_repository.MockItemRepository,
				publisher *mock_repository.MockEventPublisher,
				log *mock_logger.MockLogger,
			) {
				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "item validation failed", gomock.Any()).
					Times(1)
			},
			input: createTestInput{
				in: entity.ItemInput{Name: "   ", Description: "blank", Price: 1},
			},
			expected: createTestExpected{err: entity.ErrInvalidData},
		},
		{
			desc: "StorageError",
			mocks: func(
				repo *mock_repository.MockItemRepository,
				publisher *mock_repository.MockEventPublisher,
				log *mock_logger.MockLogger,
			) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, errStorage).Times(1)

				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "item creation failed", gomock.Any()).
					Times(1)
			},
			input: createTestInput{
				in: entity.ItemInput{Name: "Widget", Description: "A widget", Price: 9.5},
			},
			expected: createTestExpected{err: errStorage},
		},
		{
			desc: "PublishFailureIsNotFatal",
			mocks: func(
				repo *mock_repository.MockItemRepository,
				publisher *mock_repository.MockEventPublisher,
				log *mock_logger.MockLogger,
			) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(generateFakeItem(), nil).Times(1)

				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "item created", gomock.Any()).
					Times(1)

				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
					Return(errors.New("broker down")).Times(1)

				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "item event publish failed", gomock.Any()).
					Times(1)
			},
			input: createTestInput{
				in: entity.ItemInput{Name: "Widget", Description: "A widget", Price: 9.5},
			},
			expected: createTestExpected{err: nil},
		},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock_repository.NewMockItemRepository(ctrl)
			publisher := mock_repository.NewMockEventPublisher(ctrl)
			log := newLoggerMock(ctrl)

			tc.mocks(repo, publisher, log)

			s := service.NewItemService(repo, publisher, log)

			item, err := s.Create(context.Background(), tc.input.in)
			if tc.expected.err != nil {
				require.ErrorIs(t, err, tc.expected.err)
				require.Nil(t, item)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, item)
		})
	}
}

func TestItemService_FindAll(t *testing.T) {
	testCases := []struct {
		desc     string
		mocks    func(repo *mock_repository.MockItemRepository, log *mock_logger.MockLogger)
		expected int
		err      error
	}{
		{
			desc: "Success",
			mocks: func(repo *mock_repository.MockItemRepository, _ *mock_logger.MockLogger) {
				repo.EXPECT().Find(gomock.Any(), gomock.Eq(entity.Active())).
					Return([]*entity.Item{generateFakeItem(), generateFakeItem()}, nil).Times(1)
			},
			expected: 2,
		},
		{
			desc: "EmptyIsSuccess",
			mocks: func(repo *mock_repository.MockItemRepository, _ *mock_logger.MockLogger) {
				repo.EXPECT().Find(gomock.Any(), gomock.Eq(entity.Active())).
					Return([]*entity.Item{}, nil).Times(1)
			},
			expected: 0,
		},
		{
			desc: "StorageError",
			mocks: func(repo *mock_repository.MockItemRepository, log *mock_logger.MockLogger) {
				repo.EXPECT().Find(gomock.Any(), gomock.Any()).
					Return(nil, errStorage).Times(1)

				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "items listing failed", gomock.Any()).
					Times(1)
			},
			err: errStorage,
		},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock_repository.NewMockItemRepository(ctrl)
			log := newLoggerMock(ctrl)
			tc.mocks(repo, log)

			s := service.NewItemService(repo, nil, log)

			items, err := s.FindAll(context.Background())
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, items)
			require.Len(t, items, tc.expected)
		})
	}
}

func TestItemService_FindOne(t *testing.T) {
	item := generateFakeItem()

	testCases := []struct {
		desc  string
		id    string
		mocks func(repo *mock_repository.MockItemRepository, log *mock_logger.MockLogger)
		err   error
	}{
		{
			desc: "Success",
			id:   item.ID.Hex(),
			mocks: func(repo *mock_repository.MockItemRepository, _ *mock_logger.MockLogger) {
				repo.EXPECT().FindOne(gomock.Any(), gomock.Eq(entity.ActiveByID(item.ID))).
					Return(item, nil).Times(1)
			},
		},
		{
			desc:  "MalformedID",
			id:    "not-an-id",
			mocks: func(*mock_repository.MockItemRepository, *mock_logger.MockLogger) {},
			err:   entity.ErrDataNotFound,
		},
		{
			desc: "NotFound",
			id:   item.ID.Hex(),
			mocks: func(repo *mock_repository.MockItemRepository, _ *mock_logger.MockLogger) {
				repo.EXPECT().FindOne(gomock.Any(), gomock.Any()).
					Return(nil, entity.ErrDataNotFound).Times(1)
			},
			err: entity.ErrDataNotFound,
		},
		{
			desc: "StorageError",
			id:   item.ID.Hex(),
			mocks: func(repo *mock_repository.MockItemRepository, log *mock_logger.MockLogger) {
				repo.EXPECT().FindOne(gomock.Any(), gomock.Any()).
					Return(nil, errStorage).Times(1)

				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "storage operation failed", gomock.Any()).
					Times(1)
			},
			err: errStorage,
		},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock_repository.NewMockItemRepository(ctrl)
			log := newLoggerMock(ctrl)
			tc.mocks(repo, log)

			s := service.NewItemService(repo, nil, log)

			got, err := s.FindOne(context.Background(), tc.id)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, item, got)
		})
	}
}

func TestItemService_Update(t *testing.T) {
	item := generateFakeItem()
	newName := "Renamed"
	blank := " "

	testCases := []struct {
		desc  string
		patch entity.ItemPatch
		mocks func(
			repo *mock_repository.MockItemRepository,
			publisher *mock_repository.MockEventPublisher,
		)
		err error
	}{
		{
			desc:  "Success",
			patch: entity.ItemPatch{Name: &newName},
			mocks: func(
				repo *mock_repository.MockItemRepository,
				publisher *mock_repository.MockEventPublisher,
			) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Eq(entity.ByID(item.ID)), gomock.Eq(entity.ItemPatch{Name: &newName})).
					Return(item, nil).Times(1)

				publisher.EXPECT().Publish(gomock.Any(), eventOfType(entity.EventItemUpdated)).
					Return(nil).Times(1)
			},
		},
		{
			desc:  "EmptyPatchPublishesNothing",
			patch: entity.ItemPatch{},
			mocks: func(
				repo *mock_repository.MockItemRepository,
				_ *mock_repository.MockEventPublisher,
			) {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Eq(entity.ItemPatch{})).
					Return(item, nil).Times(1)
			},
		},
		{
			desc:  "BlankName",
			patch: entity.ItemPatch{Name: &blank},
			mocks: func(*mock_repository.MockItemRepository, *mock_repository.MockEventPublisher) {},
			err:   entity.ErrInvalidData,
		},
		{
			desc:  "NotFound",
			patch: entity.ItemPatch{Name: &newName},
			mocks: func(
				repo *mock_repository.MockItemRepository,
				_ *mock_repository.MockEventPublisher,
			) {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, entity.ErrDataNotFound).Times(1)
			},
			err: entity.ErrDataNotFound,
		},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock_repository.NewMockItemRepository(ctrl)
			publisher := mock_repository.NewMockEventPublisher(ctrl)
			log := newLoggerMock(ctrl)
			tc.mocks(repo, publisher)

			s := service.NewItemService(repo, publisher, log)

			got, err := s.Update(context.Background(), item.ID.Hex(), tc.patch)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, item.ID, got.ID)
		})
	}
}

func TestItemService_Delete(t *testing.T) {
	id := primitive.NewObjectID()

	testCases := []struct {
		desc  string
		mocks func(
			repo *mock_repository.MockItemRepository,
			publisher *mock_repository.MockEventPublisher,
			log *mock_logger.MockLogger,
		)
		err error
	}{
		{
			desc: "Success",
			mocks: func(
				repo *mock_repository.MockItemRepository,
				publisher *mock_repository.MockEventPublisher,
				log *mock_logger.MockLogger,
			) {
				repo.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)

				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "item deleted", gomock.Any()).
					Times(1)

				publisher.EXPECT().Publish(gomock.Any(), eventOfType(entity.EventItemDeleted)).
					Return(nil).Times(1)
			},
		},
		{
			desc: "NotFound",
			mocks: func(
				repo *mock_repository.MockItemRepository,
				_ *mock_repository.MockEventPublisher,
				_ *mock_logger.MockLogger,
			) {
				repo.EXPECT().Delete(gomock.Any(), id).Return(entity.ErrDataNotFound).Times(1)
			},
			err: entity.ErrDataNotFound,
		},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock_repository.NewMockItemRepository(ctrl)
			publisher := mock_repository.NewMockEventPublisher(ctrl)
			log := newLoggerMock(ctrl)
			tc.mocks(repo, publisher, log)

			s := service.NewItemService(repo, publisher, log)

			err := s.Delete(context.Background(), id.Hex())
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestItemService_ToggleStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	item := generateFakeItem()
	item.Status = false
	off := false

	repo := mock_repository.NewMockItemRepository(ctrl)
	publisher := mock_repository.NewMockEventPublisher(ctrl)
	log := newLoggerMock(ctrl)

	repo.EXPECT().
		Update(gomock.Any(), gomock.Eq(entity.ByID(item.ID)), gomock.Eq(entity.ItemPatch{Status: &off})).
		Return(item, nil).Times(1)
	publisher.EXPECT().Publish(gomock.Any(), eventOfType(entity.EventItemStatusChanged)).
		Return(nil).Times(1)

	s := service.NewItemService(repo, publisher, log)

	got, err := s.ToggleStatus(context.Background(), item.ID.Hex(), false)
	require.NoError(t, err)
	require.False(t, got.Status)
}

func TestItemService_SoftDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	item := generateFakeItem()
	deleted := true

	repo := mock_repository.NewMockItemRepository(ctrl)
	publisher := mock_repository.NewMockEventPublisher(ctrl)
	log := newLoggerMock(ctrl)

	softDeleted := *item
	softDeleted.IsDeleted = true

	gomock.InOrder(
		repo.EXPECT().
			Update(gomock.Any(), gomock.Eq(entity.ActiveByID(item.ID)), gomock.Eq(entity.ItemPatch{IsDeleted: &deleted})).
			Return(&softDeleted, nil).Times(1),
		repo.EXPECT().
			Update(gomock.Any(), gomock.Eq(entity.ActiveByID(item.ID)), gomock.Any()).
			Return(nil, entity.ErrDataNotFound).Times(1),
	)
	log.EXPECT().
		LogAttrs(gomock.Any(), gomock.Any(), "item soft deleted", gomock.Any()).
		Times(1)
	publisher.EXPECT().Publish(gomock.Any(), eventOfType(entity.EventItemSoftDeleted)).
		Return(nil).Times(1)

	s := service.NewItemService(repo, publisher, log)

	got, err := s.SoftDelete(context.Background(), item.ID.Hex())
	require.NoError(t, err)
	require.True(t, got.IsDeleted)

	_, err = s.SoftDelete(context.Background(), item.ID.Hex())
	require.ErrorIs(t, err, entity.ErrDataNotFound)
}

func TestItemService_Search(t *testing.T) {
	id := primitive.NewObjectID()

	testCases := []struct {
		desc  string
		query string
		mocks func(repo *mock_repository.MockItemRepository, log *mock_logger.MockLogger)
		err   error
	}{
		{
			desc:  "EmptyQuery",
			query: "   ",
			mocks: func(*mock_repository.MockItemRepository, *mock_logger.MockLogger) {},
			err:   entity.ErrInvalidData,
		},
		{
			desc:  "OnlyQuotes",
			query: "''",
			mocks: func(*mock_repository.MockItemRepository, *mock_logger.MockLogger) {},
			err:   entity.ErrInvalidData,
		},
		{
			desc:  "ByIDIgnoresDeletedFlag",
			query: "'" + id.Hex() + "'",
			mocks: func(repo *mock_repository.MockItemRepository, log *mock_logger.MockLogger) {
				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "item search", gomock.Any()).
					Times(1)
				repo.EXPECT().Find(gomock.Any(), gomock.Eq(entity.ByID(id))).
					Return([]*entity.Item{{ID: id, IsDeleted: true}}, nil).Times(1)
			},
		},
		{
			desc:  "ByName",
			query: "  widget ",
			mocks: func(repo *mock_repository.MockItemRepository, log *mock_logger.MockLogger) {
				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "item search", gomock.Any()).
					Times(1)
				repo.EXPECT().
					Find(gomock.Any(), gomock.Eq(entity.ItemFilter{NamePattern: "widget", ExcludeDeleted: true})).
					Return([]*entity.Item{}, nil).Times(1)
			},
		},
		{
			desc:  "StorageError",
			query: "widget",
			mocks: func(repo *mock_repository.MockItemRepository, log *mock_logger.MockLogger) {
				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "item search", gomock.Any()).
					Times(1)
				repo.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, errStorage).Times(1)
				log.EXPECT().
					LogAttrs(gomock.Any(), gomock.Any(), "item search failed", gomock.Any()).
					Times(1)
			},
			err: errStorage,
		},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock_repository.NewMockItemRepository(ctrl)
			log := newLoggerMock(ctrl)
			tc.mocks(repo, log)

			s := service.NewItemService(repo, nil, log)

			items, err := s.Search(context.Background(), tc.query)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, items)
		})
	}
}

// memoryRepository is a small in-process store used to check the service
// rules end to end without a database.
type memoryRepository struct {
	mu    sync.Mutex
	items []*entity.Item
}

func (r *memoryRepository) matches(item *entity.Item, f entity.ItemFilter) bool {
	if f.ID != nil && item.ID != *f.ID {
		return false
	}
	if f.NamePattern != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(f.NamePattern)) {
		return false
	}
	if f.ExcludeDeleted && item.IsDeleted {
		return false
	}
	return true
}

func (r *memoryRepository) Create(_ context.Context, item *entity.Item) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *item
	stored.ID = primitive.NewObjectID()
	r.items = append(r.items, &stored)

	created := stored
	return &created, nil
}

func (r *memoryRepository) Find(_ context.Context, f entity.ItemFilter) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Item, 0)
	for _, item := range r.items {
		if r.matches(item, f) {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryRepository) FindOne(ctx context.Context, f entity.ItemFilter) (*entity.Item, error) {
	items, _ := r.Find(ctx, f)
	if len(items) == 0 {
		return nil, entity.ErrDataNotFound
	}
	return items[0], nil
}

func (r *memoryRepository) Update(
	_ context.Context,
	f entity.ItemFilter,
	p entity.ItemPatch,
) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if !r.matches(item, f) {
			continue
		}
		if p.Name != nil {
			item.Name = *p.Name
		}
		if p.Description != nil {
			item.Description = *p.Description
		}
		if p.Price != nil {
			item.Price = *p.Price
		}
		if p.Status != nil {
			item.Status = *p.Status
		}
		if p.IsDeleted != nil {
			item.IsDeleted = *p.IsDeleted
		}
		cp := *item
		return &cp, nil
	}
	return nil, entity.ErrDataNotFound
}

func (r *memoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return entity.ErrDataNotFound
}

func (r *memoryRepository) Ping(context.Context) error {
	return nil
}

func TestItemService_SoftDeleteWalkthrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := mock_logger.NewMockLogger(ctrl)
	log.EXPECT().Ctx(gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().LogAttrs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	ctx := context.Background()
	s := service.NewItemService(&memoryRepository{}, nil, log)

	widget, err := s.Create(ctx, entity.ItemInput{Name: "Widget", Description: "A widget", Price: 9.5})
	require.NoError(t, err)
	require.True(t, widget.Status)
	require.False(t, widget.IsDeleted)

	_, err = s.Create(ctx, entity.ItemInput{Name: "Gizmo", Description: "A gizmo", Price: 3})
	require.NoError(t, err)

	_, err = s.SoftDelete(ctx, widget.ID.Hex())
	require.NoError(t, err)

	_, err = s.FindOne(ctx, widget.ID.Hex())
	require.ErrorIs(t, err, entity.ErrDataNotFound)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Gizmo", all[0].Name)

	byName, err := s.Search(ctx, "widget")
	require.NoError(t, err)
	require.Empty(t, byName)

	byID, err := s.Search(ctx, widget.ID.Hex())
	require.NoError(t, err)
	require.Len(t, byID, 1)
	require.True(t, byID[0].IsDeleted)

	_, err = s.SoftDelete(ctx, widget.ID.Hex())
	require.ErrorIs(t, err, entity.ErrDataNotFound)

	require.NoError(t, s.Delete(ctx, widget.ID.Hex()))

	_, err = s.Update(ctx, widget.ID.Hex(), entity.ItemPatch{})
	require.ErrorIs(t, err, entity.ErrDataNotFound)
	require.ErrorIs(t, s.Delete(ctx, widget.ID.Hex()), entity.ErrDataNotFound)
}
