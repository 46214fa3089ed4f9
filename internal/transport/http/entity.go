// nolint: revive,staticcheck
// swagger:meta
package httpt

import "itemsvc/internal/entity"

// Response is the envelope every item endpoint answers with.
// swagger:model Response
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// swagger:model CreateItemRequest
type CreateItemRequest struct {
	Name        string   `json:"name"        binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price"       binding:"required"`
	Status      *bool    `json:"status"`
}

func (r CreateItemRequest) toInput() entity.ItemInput {
	return entity.ItemInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Status:      r.Status,
	}
}

// swagger:model UpdateItemRequest
type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Status      *bool    `json:"status"`
}

func (r UpdateItemRequest) toPatch() entity.ItemPatch {
	return entity.ItemPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Status:      r.Status,
	}
}

// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status *bool `json:"status" binding:"required"`
}

// swagger:model Item
type Item entity.Item
