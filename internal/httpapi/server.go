// Package httpapi exposes the food court backend over HTTP. Routing is
// gin; Telegram Mini App init data is the authentication mechanism for
// everything under /api that touches a user's own data.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/usmm07/foodcourt/internal/metrics"
	catalogsvc "github.com/usmm07/foodcourt/internal/services/catalog"
	"github.com/usmm07/foodcourt/internal/services/carts"
	"github.com/usmm07/foodcourt/internal/services/orders"
	"github.com/usmm07/foodcourt/internal/services/users"
	"github.com/usmm07/foodcourt/pkg/logger"
)

// Config controls authentication and cross-origin behavior.
type Config struct {
	// BotToken signs Telegram init data. Required unless SkipAuthCheck.
	BotToken string
	// AuthTTL bounds init data age. Zero disables the expiry check.
	AuthTTL time.Duration
	// SkipAuthCheck accepts unsigned init data. Development and tests only.
	SkipAuthCheck bool
	// AllowedOrigins for CORS. Empty means same-origin only.
	AllowedOrigins []string
}

// Server wires the services into HTTP handlers.
type Server struct {
	cfg     Config
	users   *users.Service
	catalog *catalogsvc.Service
	carts   *carts.Service
	orders  *orders.Service
	log     *logger.Logger
}

// New constructs the HTTP server facade.
func New(cfg Config, us *users.Service, cs *catalogsvc.Service, carts *carts.Service, os *orders.Service, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	return &Server{cfg: cfg, users: us, catalog: cs, carts: carts, orders: os, log: log}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog(), metrics.Middleware())

	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Telegram-Init-Data"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	// Catalog is public: the mini app shows the menu before sign-in.
	api.GET("/categories", s.listCategories)
	api.GET("/categories/:id", s.getCategory)
	api.POST("/categories", s.createCategory)
	api.PATCH("/categories/:id", s.updateCategory)
	api.DELETE("/categories/:id", s.deleteCategory)

	api.GET("/menu-items", s.listMenuItems)
	api.GET("/menu-items/:id", s.getMenuItem)
	api.POST("/menu-items", s.createMenuItem)
	api.PATCH("/menu-items/:id", s.updateMenuItem)
	api.DELETE("/menu-items/:id", s.deleteMenuItem)

	authed := api.Group("", s.telegramAuth())
	authed.POST("/users/resolve", s.resolveUser)
	authed.GET("/users/me", s.resolveUser)

	authed.GET("/cart", s.getCart)
	authed.POST("/cart", s.addToCart)
	authed.PATCH("/cart/:id", s.updateCartItem)
	authed.DELETE("/cart/:id", s.removeFromCart)
	authed.DELETE("/cart", s.clearCart)

	authed.GET("/orders", s.listOrders)
	authed.POST("/orders/checkout", s.checkout)
	authed.GET("/orders/:id", s.getOrder)
	authed.GET("/orders/:id/items", s.listOrderItems)
	authed.PATCH("/orders/:id/status", s.updateOrderStatus)

	return r
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("status", c.Writer.Status()).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("request_id", c.GetString(requestIDKey)).
			Debug("request handled")
	}
}
