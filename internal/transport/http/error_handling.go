package httpt

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"itemsvc/internal/entity"
	"itemsvc/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func (h *ItemHandler) respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{
		Success: status < http.StatusBadRequest,
		Data:    data,
		Message: message,
		Status:  status,
	})
}

// handleServiceError maps a service error onto the envelope. Causes of
// internal errors are logged and never sent to the client.
func (h *ItemHandler) handleServiceError(c *gin.Context, err error, op, failureMessage string) {
	log := h.log.Ctx(c.Request.Context())

	switch {
	case errors.Is(err, entity.ErrInvalidData):
		log.LogAttrs(c.Request.Context(), logger.WarnLevel, "invalid item data",
			logger.String("op", op),
			logger.Err(err),
			logger.String("client_ip", c.ClientIP()),
		)
		h.respond(c, http.StatusBadRequest, "Invalid item data", nil)
	case errors.Is(err, entity.ErrDataNotFound):
		log.LogAttrs(c.Request.Context(), logger.WarnLevel, "item not found",
			logger.String("op", op),
			logger.String("item_id", c.Param("id")),
			logger.String("client_ip", c.ClientIP()),
		)
		h.respond(c, http.StatusNotFound, fmt.Sprintf("Item with id %s not found", c.Param("id")), nil)
	default:
		log.LogAttrs(c.Request.Context(), logger.ErrorLevel, "internal server error",
			logger.String("op", op),
			logger.Err(err),
			logger.String("path", c.Request.URL.Path),
			logger.String("client_ip", c.ClientIP()),
			logger.String("user_agent", c.Request.UserAgent()),
		)
		h.respond(c, http.StatusInternalServerError, failureMessage, nil)
	}
}

func (h *ItemHandler) handleBindError(c *gin.Context, err error, op string) {
	log := h.log.Ctx(c.Request.Context())

	log.LogAttrs(c.Request.Context(), logger.WarnLevel, "invalid request body",
		logger.String("op", op),
		logger.Err(err),
		logger.String("remote_addr", c.ClientIP()),
	)

	h.respond(c, http.StatusBadRequest, "Invalid request body: "+describeBindError(err), nil)
}

func describeBindError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "malformed JSON"
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		problems = append(problems, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(problems, ", ")
}
