//go:build integration

package service_test

import (
	"context"
	"testing"
	"time"

	"itemsvc/internal/config"
	"itemsvc/internal/entity"
	"itemsvc/internal/repository"
	"itemsvc/internal/service"
	"itemsvc/pkg/logger"
	"itemsvc/pkg/metric"
	"itemsvc/pkg/storage/mongodb"
	"itemsvc/pkg/storage/postgres"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

// IntegrationTestSuite runs the service against the storage backend named in
// the config pointed to by CONFIG_PATH.
type IntegrationTestSuite struct {
	suite.Suite

	cfg     *config.Config
	mongo   *mongodb.Mongo
	pg      *postgres.Postgres
	service *service.ItemService
}

func (s *IntegrationTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg, err := config.Load()
	s.Require().NoError(err, "Failed to load configuration")
	s.cfg = cfg

	testLogger, err := logger.NewAdapter(cfg, logger.WithoutFile())
	s.Require().NoError(err)

	metrics := metric.NewFactory(metric.StorageDriver(cfg.Storage.Driver)).Storage()

	var repo service.ItemRepository
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		s.pg, err = postgres.NewPostgres(ctx, &cfg.Postgres, testLogger)
		s.Require().NoError(err, "Failed to connect to postgres")

		pgRepo := repository.NewPostgresItemRepository(s.pg, metrics)
		s.Require().NoError(pgRepo.EnsureSchema(ctx))
		repo = pgRepo
	default:
		s.mongo, err = mongodb.NewMongo(ctx, &cfg.Mongo, testLogger)
		s.Require().NoError(err, "Failed to connect to mongo")

		repo = repository.NewMongoItemRepository(s.mongo.Collection(cfg.Mongo.Collection), metrics)
	}

	s.Require().NoError(repo.Ping(ctx))
	s.service = service.NewItemService(repo, nil, testLogger)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.pg != nil {
		s.pg.Close()
	}
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.Require().NoError(s.mongo.Close(ctx))
	}
}

func (s *IntegrationTestSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.pg != nil {
		_, err := s.pg.Pool.Exec(ctx, "TRUNCATE TABLE items")
		s.Require().NoError(err)
	}
	if s.mongo != nil {
		_, err := s.mongo.Collection(s.cfg.Mongo.Collection).DeleteMany(ctx, bson.D{})
		s.Require().NoError(err)
	}
}

func (s *IntegrationTestSuite) TestCreateAndFindOne() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	in := entity.ItemInput{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       gofakeit.Price(1, 500),
	}

	created, err := s.service.Create(ctx, in)
	s.Require().NoError(err)
	s.Require().False(created.ID.IsZero())
	s.Require().True(created.Status)
	s.Require().False(created.IsDeleted)

	found, err := s.service.FindOne(ctx, created.ID.Hex())
	s.Require().NoError(err)
	s.Require().Equal(created.ID, found.ID)
	s.Require().Equal(in.Name, found.Name)
	s.Require().InDelta(in.Price, found.Price, 0.0001)
}

func (s *IntegrationTestSuite) TestSoftDeleteVisibility() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	widget, err := s.service.Create(ctx, entity.ItemInput{Name: "Blue Widget", Description: "w", Price: 2})
	s.Require().NoError(err)

	_, err = s.service.SoftDelete(ctx, widget.ID.Hex())
	s.Require().NoError(err)

	_, err = s.service.SoftDelete(ctx, widget.ID.Hex())
	s.Require().ErrorIs(err, entity.ErrDataNotFound)

	_, err = s.service.FindOne(ctx, widget.ID.Hex())
	s.Require().ErrorIs(err, entity.ErrDataNotFound)

	byName, err := s.service.Search(ctx, "WIDGET")
	s.Require().NoError(err)
	s.Require().Empty(byName)

	byID, err := s.service.Search(ctx, widget.ID.Hex())
	s.Require().NoError(err)
	s.Require().Len(byID, 1)
	s.Require().True(byID[0].IsDeleted)
}

func (s *IntegrationTestSuite) TestSearchIsCaseInsensitiveSubstring() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range []string{"Red Lamp", "lampshade", "Chair"} {
		_, err := s.service.Create(ctx, entity.ItemInput{Name: name, Description: "-", Price: 1})
		s.Require().NoError(err)
	}

	items, err := s.service.Search(ctx, "'LAMP'")
	s.Require().NoError(err)
	s.Require().Len(items, 2)

	items, err = s.service.Search(ctx, "l.mp")
	s.Require().NoError(err)
	s.Require().Empty(items)
}

func (s *IntegrationTestSuite) TestUpdateToggleAndDelete() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	item, err := s.service.Create(ctx, entity.ItemInput{Name: "Lamp", Description: "desk", Price: 10})
	s.Require().NoError(err)

	price := 12.5
	updated, err := s.service.Update(ctx, item.ID.Hex(), entity.ItemPatch{Price: &price})
	s.Require().NoError(err)
	s.Require().InDelta(price, updated.Price, 0.0001)
	s.Require().Equal("Lamp", updated.Name)

	toggled, err := s.service.ToggleStatus(ctx, item.ID.Hex(), false)
	s.Require().NoError(err)
	s.Require().False(toggled.Status)

	s.Require().NoError(s.service.Delete(ctx, item.ID.Hex()))
	s.Require().ErrorIs(s.service.Delete(ctx, item.ID.Hex()), entity.ErrDataNotFound)

	_, err = s.service.Update(ctx, item.ID.Hex(), entity.ItemPatch{Price: &price})
	s.Require().ErrorIs(err, entity.ErrDataNotFound)
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
