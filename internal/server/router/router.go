package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/server/handlers"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.ConsoleHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET(inventory.LoginPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"title": "Login"})
	})
	r.POST(inventory.LoginPath, handler.Login)
	r.POST("/logout", handler.Logout)

	authed := r.Group("/", AuthGate(time.Now))
	authed.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	for _, page := range handlers.Pages() {
		authed.GET(page.Path, handler.Serve(page))
	}
	authed.POST("/shopify/sync", handler.ShopifySync)
	authed.GET("/export-import/export/:type", handler.Export)
	authed.POST("/export-import/import/:type", handler.Import)

	r.NoRoute(handler.NotFound)

	if logger != nil {
		logger.Info("router initialized", zap.Int("pages", len(handlers.Pages())))
	}

	return r
}

// AuthGate redirects to the login page when the request carries no token or
// an expired JWT. Opaque tokens pass and are checked by the backend.
func AuthGate(now func() time.Time) gin.HandlerFunc {
	parser := jwt.NewParser()
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" || expired(parser, token, now()) {
			c.Redirect(http.StatusFound, inventory.LoginPath)
			c.Abort()
			return
		}
		c.Set(handlers.TokenKey, token)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(handlers.TokenCookie); err == nil {
		return cookie
	}
	return ""
}

func expired(parser *jwt.Parser, token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	return exp != nil && !exp.After(now)
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
