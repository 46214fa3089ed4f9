package httpt

import (
	"net/http"

	_ "itemsvc/docs" // for swagger

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Item Service API
// @version         1.0
// @description     CRUD, soft delete, status toggle and search over items.
// @contact.name    API Support
// @contact.email   support@example.com
// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func (h *ItemHandler) setupRoutes() {
	h.router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	h.router.GET("/ready", h.readyHandler)

	items := h.router.Group("/items")
	{
		items.POST("", h.createItemHandler)
		items.GET("", h.findAllHandler)
		items.GET("/search", h.searchHandler)
		items.GET("/:id", h.findOneHandler)
		items.PATCH("/:id", h.updateHandler)
		items.DELETE("/:id", h.deleteHandler)
		items.PATCH("/:id/status", h.toggleStatusHandler)
		items.PATCH("/:id/softdelete", h.softDeleteHandler)
	}

	h.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
