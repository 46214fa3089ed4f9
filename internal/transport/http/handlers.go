package httpt

import (
	"context"
	"errors"
	"io"
	"net/http"

	"itemsvc/internal/entity"
	"itemsvc/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @Summary Create an item
// @Description Creates an item. Status defaults to true when omitted.
// @Tags Items
// @Accept json
// @Produce json
// @Param item body httpt.CreateItemRequest true "Item to create"
// @Success 201 {object} httpt.Response{data=httpt.Item} "Item created"
// @Failure 400 {object} httpt.Response "Invalid body"
// @Failure 500 {object} httpt.Response "Could not create item"
// @Router /items [post]
func (h *ItemHandler) createItemHandler(c *gin.Context) {
	const op = "transport.createItemHandler"

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err, op)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	item, err := h.svc.Create(ctx, req.toInput())
	if err != nil {
		h.handleServiceError(c, err, op, "Could not create item")
		return
	}

	h.respond(c, http.StatusCreated, "Item created successfully", item)
}

// @Summary List items
// @Description Returns every item that is not soft-deleted.
// @Tags Items
// @Produce json
// @Success 200 {object} httpt.Response{data=[]httpt.Item} "Items"
// @Failure 500 {object} httpt.Response "Could not retrieve items"
// @Router /items [get]
func (h *ItemHandler) findAllHandler(c *gin.Context) {
	const op = "transport.findAllHandler"

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	items, err := h.svc.FindAll(ctx)
	if err != nil {
		h.handleServiceError(c, err, op, "Could not retrieve items")
		return
	}

	h.respond(c, http.StatusOK, "Items retrieved successfully", items)
}

// @Summary Search items
// @Description Searches by exact id when q is an object id, otherwise by case-insensitive name substring.
// @Tags Items
// @Produce json
// @Param q query string true "Id or part of the name"
// @Success 200 {object} httpt.Response{data=[]httpt.Item} "Matching items"
// @Failure 400 {object} httpt.Response "Query cannot be empty"
// @Failure 500 {object} httpt.Response "Could not retrieve items"
// @Router /items/search [get]
func (h *ItemHandler) searchHandler(c *gin.Context) {
	const op = "transport.searchHandler"

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	items, err := h.svc.Search(ctx, c.Query("q"))
	if err != nil {
		if errors.Is(err, entity.ErrInvalidData) {
			h.respond(c, http.StatusBadRequest, "Query cannot be empty", nil)
			return
		}
		h.handleServiceError(c, err, op, "Could not retrieve items")
		return
	}

	h.respond(c, http.StatusOK, "Items retrieved successfully", items)
}

// @Summary Get an item
// @Tags Items
// @Produce json
// @Param id path string true "Item id"
// @Success 200 {object} httpt.Response{data=httpt.Item} "Item"
// @Failure 404 {object} httpt.Response "Item not found"
// @Failure 500 {object} httpt.Response "Could not retrieve item"
// @Router /items/{id} [get]
func (h *ItemHandler) findOneHandler(c *gin.Context) {
	const op = "transport.findOneHandler"

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	item, err := h.svc.FindOne(ctx, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, op, "Could not retrieve item")
		return
	}

	h.respond(c, http.StatusOK, "Item retrieved successfully", item)
}

// @Summary Update an item
// @Description Applies the provided fields only.
// @Tags Items
// @Accept json
// @Produce json
// @Param id path string true "Item id"
// @Param item body httpt.UpdateItemRequest true "Fields to change"
// @Success 200 {object} httpt.Response{data=httpt.Item} "Updated item"
// @Failure 400 {object} httpt.Response "Invalid body"
// @Failure 404 {object} httpt.Response "Item not found"
// @Failure 500 {object} httpt.Response "Could not update item"
// @Router /items/{id} [patch]
func (h *ItemHandler) updateHandler(c *gin.Context) {
	const op = "transport.updateHandler"

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.handleBindError(c, err, op)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	item, err := h.svc.Update(ctx, c.Param("id"), req.toPatch())
	if err != nil {
		h.handleServiceError(c, err, op, "Could not update item")
		return
	}

	h.respond(c, http.StatusOK, "Item updated successfully", item)
}

// @Summary Delete an item
// @Description Removes the item permanently, soft-deleted or not.
// @Tags Items
// @Produce json
// @Param id path string true "Item id"
// @Success 200 {object} httpt.Response "Item deleted"
// @Failure 404 {object} httpt.Response "Item not found"
// @Failure 500 {object} httpt.Response "Could not delete item"
// @Router /items/{id} [delete]
func (h *ItemHandler) deleteHandler(c *gin.Context) {
	const op = "transport.deleteHandler"

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		h.handleServiceError(c, err, op, "Could not delete item")
		return
	}

	h.respond(c, http.StatusOK, "Item deleted successfully", nil)
}

// @Summary Set item status
// @Tags Items
// @Accept json
// @Produce json
// @Param id path string true "Item id"
// @Param status body httpt.UpdateStatusRequest true "New status"
// @Success 200 {object} httpt.Response{data=httpt.Item} "Updated item"
// @Failure 400 {object} httpt.Response "Missing status"
// @Failure 404 {object} httpt.Response "Item not found"
// @Failure 500 {object} httpt.Response "Could not update item status"
// @Router /items/{id}/status [patch]
func (h *ItemHandler) toggleStatusHandler(c *gin.Context) {
	const op = "transport.toggleStatusHandler"

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err, op)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	item, err := h.svc.ToggleStatus(ctx, c.Param("id"), *req.Status)
	if err != nil {
		h.handleServiceError(c, err, op, "Could not update item status")
		return
	}

	h.respond(c, http.StatusOK, "Item status updated successfully", item)
}

// @Summary Soft delete an item
// @Description Flags the item as deleted. Flagged items are hidden from listing, lookup and name search.
// @Tags Items
// @Produce json
// @Param id path string true "Item id"
// @Success 200 {object} httpt.Response "Item soft deleted"
// @Failure 404 {object} httpt.Response "Item not found or already deleted"
// @Failure 500 {object} httpt.Response "Could not soft delete item"
// @Router /items/{id}/softdelete [patch]
func (h *ItemHandler) softDeleteHandler(c *gin.Context) {
	const op = "transport.softDeleteHandler"

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	if _, err := h.svc.SoftDelete(ctx, c.Param("id")); err != nil {
		h.handleServiceError(c, err, op, "Could not soft delete item")
		return
	}

	h.respond(c, http.StatusOK, "Item soft deleted successfully", nil)
}

// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} httpt.Response "Storage reachable"
// @Failure 503 {object} httpt.Response "Storage unreachable"
// @Router /ready [get]
func (h *ItemHandler) readyHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	if err := h.svc.Ping(ctx); err != nil {
		h.log.Ctx(c.Request.Context()).LogAttrs(c.Request.Context(), logger.WarnLevel, "readiness check failed",
			logger.Err(err),
		)
		h.respond(c, http.StatusServiceUnavailable, "Storage unavailable", nil)
		return
	}

	h.respond(c, http.StatusOK, "Ready", nil)
}
