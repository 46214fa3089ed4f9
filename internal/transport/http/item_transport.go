package httpt

//go:generate mockgen -source=item_transport.go -destination=mock/item_transport.go -package=mock_httpt

import (
	"context"
	"time"

	"itemsvc/internal/entity"
	"itemsvc/pkg/logger"
	"itemsvc/pkg/metric"

	"github.com/gin-gonic/gin"
)

const (
	_defaultRequestTimeout = 5 * time.Second
	_slowRequestThreshold  = 200 * time.Millisecond
)

type ItemService interface {
	Create(ctx context.Context, in entity.ItemInput) (*entity.Item, error)
	FindAll(ctx context.Context) ([]*entity.Item, error)
	FindOne(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, id string, patch entity.ItemPatch) (*entity.Item, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string, status bool) (*entity.Item, error)
	SoftDelete(ctx context.Context, id string) (*entity.Item, error)
	Search(ctx context.Context, query string) ([]*entity.Item, error)
	Ping(ctx context.Context) error
}

type ItemHandler struct {
	svc            ItemService
	log            logger.Logger
	metrics        metric.HTTP
	router         *gin.Engine
	requestTimeout time.Duration
}

type HandlerOption func(*ItemHandler)

// RequestTimeout bounds the service call made by each handler.
func RequestTimeout(timeout time.Duration) HandlerOption {
	return func(h *ItemHandler) {
		if timeout > 0 {
			h.requestTimeout = timeout
		}
	}
}

func NewItemHandler(
	svc ItemService,
	log logger.Logger,
	metrics metric.HTTP,
	opts ...HandlerOption,
) *ItemHandler {
	h := &ItemHandler{
		svc:            svc,
		log:            log,
		metrics:        metrics,
		requestTimeout: _defaultRequestTimeout,
	}

	for _, opt := range opts {
		opt(h)
	}

	router := gin.New()

	router.Use(h.requestIDMiddleware())
	router.Use(h.loggingMiddleware())
	router.Use(gin.Recovery())

	h.router = router

	h.setupRoutes()

	return h
}

func (h *ItemHandler) Engine() *gin.Engine {
	return h.router
}
