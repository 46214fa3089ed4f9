package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"itemsvc/internal/entity"
	"itemsvc/pkg/metric"
	"itemsvc/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	_itemsTable = "items"

	_uniqueViolation = "23505"
)

var _itemColumns = []string{"id", "name", "description", "price", "status", "is_deleted"}

const _itemsDDL = `CREATE TABLE IF NOT EXISTS items (
	id          CHAR(24)         PRIMARY KEY,
	name        TEXT             NOT NULL,
	description TEXT             NOT NULL,
	price       DOUBLE PRECISION NOT NULL,
	status      BOOLEAN          NOT NULL DEFAULT TRUE,
	is_deleted  BOOLEAN          NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ      NOT NULL DEFAULT now()
)`

var _likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresItemRepository keeps the item documents as rows of one table. Ids
// are object ids in hex form so both backends share the identifier format.
type PostgresItemRepository struct {
	builder squirrel.StatementBuilderType
	db      postgres.QueryExecuter
	metrics metric.Storage
}

func NewPostgresItemRepository(pg *postgres.Postgres, metrics metric.Storage) *PostgresItemRepository {
	return &PostgresItemRepository{
		builder: pg.Builder,
		db:      pg.Pool,
		metrics: metrics,
	}
}

// EnsureSchema creates the items table when it does not exist yet.
func (r *PostgresItemRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, _itemsDDL); err != nil {
		return fmt.Errorf("repository.item_postgres.EnsureSchema: %w", err)
	}
	return nil
}

func (r *PostgresItemRepository) Create(ctx context.Context, item *entity.Item) (_ *entity.Item, err error) {
	const op = "repository.item_postgres.Create"
	defer func(start time.Time) { observe(r.metrics, opCreate, start, err) }(time.Now())

	sql, args, err := r.insertQuery(primitive.NewObjectID(), item).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	result, err := scanItem(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == _uniqueViolation {
			return nil, entity.ErrConflictingData
		}
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return result, nil
}

func (r *PostgresItemRepository) Find(
	ctx context.Context,
	filter entity.ItemFilter,
) (_ []*entity.Item, err error) {
	const op = "repository.item_postgres.Find"
	defer func(start time.Time) { observe(r.metrics, opFind, start, err) }(time.Now())

	sql, args, err := r.selectQuery(filter).OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	items := make([]*entity.Item, 0)
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: rows scan: %w", op, scanErr)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return items, nil
}

func (r *PostgresItemRepository) FindOne(
	ctx context.Context,
	filter entity.ItemFilter,
) (_ *entity.Item, err error) {
	const op = "repository.item_postgres.FindOne"
	defer func(start time.Time) { observe(r.metrics, opFindOne, start, err) }(time.Now())

	sql, args, err := r.selectQuery(filter).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	item, err := scanItem(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDataNotFound
		}
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return item, nil
}

// Update runs a single UPDATE ... RETURNING, so the row is modified and read
// back atomically. An empty patch only reads the row.
func (r *PostgresItemRepository) Update(
	ctx context.Context,
	filter entity.ItemFilter,
	patch entity.ItemPatch,
) (_ *entity.Item, err error) {
	const op = "repository.item_postgres.Update"

	if patch.IsEmpty() {
		return r.FindOne(ctx, filter)
	}

	defer func(start time.Time) { observe(r.metrics, opUpdate, start, err) }(time.Now())

	sql, args, err := r.updateQuery(filter, patch).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	item, err := scanItem(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDataNotFound
		}
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return item, nil
}

func (r *PostgresItemRepository) Delete(ctx context.Context, id primitive.ObjectID) (err error) {
	const op = "repository.item_postgres.Delete"
	defer func(start time.Time) { observe(r.metrics, opDelete, start, err) }(time.Now())

	sql, args, err := r.builder.Delete(_itemsTable).
		Where(squirrel.Eq{"id": id.Hex()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrDataNotFound
	}

	return nil
}

func (r *PostgresItemRepository) Ping(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "SELECT 1"); err != nil {
		return fmt.Errorf("repository.item_postgres.Ping: %w", err)
	}
	return nil
}

func (r *PostgresItemRepository) insertQuery(id primitive.ObjectID, item *entity.Item) squirrel.InsertBuilder {
	return r.builder.Insert(_itemsTable).
		Columns(_itemColumns...).
		Values(id.Hex(), item.Name, item.Description, item.Price, item.Status, item.IsDeleted).
		Suffix("RETURNING " + strings.Join(_itemColumns, ", "))
}

func (r *PostgresItemRepository) selectQuery(filter entity.ItemFilter) squirrel.SelectBuilder {
	return r.builder.Select(_itemColumns...).
		From(_itemsTable).
		Where(postgresWhere(filter))
}

func (r *PostgresItemRepository) updateQuery(
	filter entity.ItemFilter,
	patch entity.ItemPatch,
) squirrel.UpdateBuilder {
	return r.builder.Update(_itemsTable).
		SetMap(postgresSet(patch)).
		Where(postgresWhere(filter)).
		Suffix("RETURNING " + strings.Join(_itemColumns, ", "))
}

func postgresWhere(f entity.ItemFilter) squirrel.And {
	where := squirrel.And{}

	if f.ID != nil {
		where = append(where, squirrel.Eq{"id": f.ID.Hex()})
	}
	if f.NamePattern != "" {
		where = append(where, squirrel.ILike{"name": "%" + _likeEscaper.Replace(f.NamePattern) + "%"})
	}
	if f.ExcludeDeleted {
		where = append(where, squirrel.Eq{"is_deleted": false})
	}

	return where
}

func postgresSet(p entity.ItemPatch) map[string]any {
	set := make(map[string]any)

	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.IsDeleted != nil {
		set["is_deleted"] = *p.IsDeleted
	}

	return set
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var (
		rawID string
		item  entity.Item
	)

	if err := row.Scan(
		&rawID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Status,
		&item.IsDeleted,
	); err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, fmt.Errorf("malformed item id %q: %w", rawID, err)
	}
	item.ID = id

	return &item, nil
}
