package entity

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Item struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	Name        string             `json:"name"        bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price"       bson:"price"`
	Status      bool               `json:"status"      bson:"status"`
	IsDeleted   bool               `json:"isDeleted"   bson:"isDeleted"`
}

// ItemInput carries the fields accepted on creation. A nil Status means the
// default (active).
type ItemInput struct {
	Name        string
	Description string
	Price       float64
	Status      *bool
}

// NewItem builds a not yet persisted item from the input, applying defaults.
func NewItem(in ItemInput) (*Item, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("entity.NewItem: empty name: %w", ErrInvalidData)
	}

	status := true
	if in.Status != nil {
		status = *in.Status
	}

	return &Item{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Status:      status,
		IsDeleted:   false,
	}, nil
}

// ItemPatch is a partial update. Nil fields are left untouched.
type ItemPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Status      *bool
	IsDeleted   *bool
}

func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil &&
		p.Description == nil &&
		p.Price == nil &&
		p.Status == nil &&
		p.IsDeleted == nil
}

func (p ItemPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("entity.ItemPatch.Validate: empty name: %w", ErrInvalidData)
	}
	return nil
}

// ItemFilter selects documents in the item collection. The zero value
// matches everything, deleted items included.
type ItemFilter struct {
	ID             *primitive.ObjectID
	NamePattern    string
	ExcludeDeleted bool
}

func ByID(id primitive.ObjectID) ItemFilter {
	return ItemFilter{ID: &id}
}

func ActiveByID(id primitive.ObjectID) ItemFilter {
	return ItemFilter{ID: &id, ExcludeDeleted: true}
}

func Active() ItemFilter {
	return ItemFilter{ExcludeDeleted: true}
}

// ParseID parses the hex form of an item identifier.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("entity.ParseID: %q: %w", raw, ErrDataNotFound)
	}
	return id, nil
}
