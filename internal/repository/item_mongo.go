package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"itemsvc/internal/entity"
	"itemsvc/pkg/metric"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoItemRepository stores items as documents of a single collection.
type MongoItemRepository struct {
	coll    *mongo.Collection
	metrics metric.Storage
}

func NewMongoItemRepository(coll *mongo.Collection, metrics metric.Storage) *MongoItemRepository {
	return &MongoItemRepository{
		coll:    coll,
		metrics: metrics,
	}
}

func (r *MongoItemRepository) Create(ctx context.Context, item *entity.Item) (_ *entity.Item, err error) {
	const op = "repository.item_mongo.Create"
	defer func(start time.Time) { observe(r.metrics, opCreate, start, err) }(time.Now())

	doc := *item
	doc.ID = primitive.NewObjectID()

	if _, err = r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, entity.ErrConflictingData
		}
		return nil, fmt.Errorf("%s: insert one: %w", op, err)
	}

	return &doc, nil
}

func (r *MongoItemRepository) Find(
	ctx context.Context,
	filter entity.ItemFilter,
) (_ []*entity.Item, err error) {
	const op = "repository.item_mongo.Find"
	defer func(start time.Time) { observe(r.metrics, opFind, start, err) }(time.Now())

	cursor, err := r.coll.Find(ctx, mongoFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}

	items := make([]*entity.Item, 0)
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("%s: decode cursor: %w", op, err)
	}

	return items, nil
}

func (r *MongoItemRepository) FindOne(
	ctx context.Context,
	filter entity.ItemFilter,
) (_ *entity.Item, err error) {
	const op = "repository.item_mongo.FindOne"
	defer func(start time.Time) { observe(r.metrics, opFindOne, start, err) }(time.Now())

	item := &entity.Item{}
	if err = r.coll.FindOne(ctx, mongoFilter(filter)).Decode(item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrDataNotFound
		}
		return nil, fmt.Errorf("%s: find one: %w", op, err)
	}

	return item, nil
}

// Update applies patch to the single document matching filter and returns
// it as stored after the update. An empty patch only reads the document.
func (r *MongoItemRepository) Update(
	ctx context.Context,
	filter entity.ItemFilter,
	patch entity.ItemPatch,
) (_ *entity.Item, err error) {
	const op = "repository.item_mongo.Update"

	if patch.IsEmpty() {
		return r.FindOne(ctx, filter)
	}

	defer func(start time.Time) { observe(r.metrics, opUpdate, start, err) }(time.Now())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.D{{Key: "$set", Value: mongoSet(patch)}}

	item := &entity.Item{}
	err = r.coll.FindOneAndUpdate(ctx, mongoFilter(filter), update, opts).Decode(item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrDataNotFound
		}
		return nil, fmt.Errorf("%s: find one and update: %w", op, err)
	}

	return item, nil
}

func (r *MongoItemRepository) Delete(ctx context.Context, id primitive.ObjectID) (err error) {
	const op = "repository.item_mongo.Delete"
	defer func(start time.Time) { observe(r.metrics, opDelete, start, err) }(time.Now())

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("%s: delete one: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrDataNotFound
	}

	return nil
}

func (r *MongoItemRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("repository.item_mongo.Ping: %w", err)
	}
	return nil
}

func mongoFilter(f entity.ItemFilter) bson.D {
	filter := bson.D{}

	if f.ID != nil {
		filter = append(filter, bson.E{Key: "_id", Value: *f.ID})
	}
	if f.NamePattern != "" {
		filter = append(filter, bson.E{Key: "name", Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(f.NamePattern),
			Options: "i",
		}})
	}
	if f.ExcludeDeleted {
		filter = append(filter, bson.E{Key: "isDeleted", Value: false})
	}

	return filter
}

func mongoSet(p entity.ItemPatch) bson.D {
	set := bson.D{}

	if p.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *p.Name})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *p.Description})
	}
	if p.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *p.Price})
	}
	if p.Status != nil {
		set = append(set, bson.E{Key: "status", Value: *p.Status})
	}
	if p.IsDeleted != nil {
		set = append(set, bson.E{Key: "isDeleted", Value: *p.IsDeleted})
	}

	return set
}
