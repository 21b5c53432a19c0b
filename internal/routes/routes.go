package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swiftcart/internal/handlers"
	"swiftcart/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, cart *handlers.CartHandler, hub *handlers.Hub) {
	r.GET("/health", handlers.Health)

	api := r.Group("/api/cart")
	{
		api.GET("", cart.GetCart)
		api.GET("/ws", hub.CartWebSocket)
		api.POST("/checkout", middleware.CheckoutRateLimit(), cart.Checkout)

		items := api.Group("/items", middleware.CartRateLimit())
		items.POST("", cart.AddItem)
		items.PATCH("/:productId", cart.ChangeQuantity)
		items.DELETE("/:productId", cart.RemoveItem)
	}
}

// NewRouter construit le moteur gin avec les middlewares communs
func NewRouter(log *zap.Logger, origins []string, cart *handlers.CartHandler, hub *handlers.Hub) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(origins))
	RegisterRoutes(r, cart, hub)
	return r
}
