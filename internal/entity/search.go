package entity

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SearchKind int

const (
	SearchByID SearchKind = iota + 1
	SearchByName
)

func (k SearchKind) String() string {
	switch k {
	case SearchByID:
		return "id"
	case SearchByName:
		return "name"
	default:
		return "unknown"
	}
}

// ItemSearch is either an exact id lookup or a name pattern match, decided
// once from the raw query.
type ItemSearch struct {
	kind    SearchKind
	id      primitive.ObjectID
	pattern string
}

// NewItemSearch strips single quotes and surrounding whitespace from raw.
// A query that is a valid object id searches by id, anything else by name.
func NewItemSearch(raw string) (ItemSearch, error) {
	query := strings.TrimSpace(strings.ReplaceAll(raw, "'", ""))
	if query == "" {
		return ItemSearch{}, fmt.Errorf("entity.NewItemSearch: empty query: %w", ErrInvalidData)
	}

	if id, err := primitive.ObjectIDFromHex(query); err == nil {
		return ItemSearch{kind: SearchByID, id: id}, nil
	}

	return ItemSearch{kind: SearchByName, pattern: query}, nil
}

func (s ItemSearch) Kind() SearchKind {
	return s.kind
}

func (s ItemSearch) ID() primitive.ObjectID {
	return s.id
}

func (s ItemSearch) Pattern() string {
	return s.pattern
}

// Filter maps the search onto a storage filter. Id lookups ignore the
// soft-delete flag, name lookups honour it.
func (s ItemSearch) Filter() ItemFilter {
	if s.kind == SearchByID {
		return ByID(s.id)
	}
	return ItemFilter{NamePattern: s.pattern, ExcludeDeleted: true}
}
