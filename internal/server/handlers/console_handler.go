package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/console"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/transfer"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

const (
	// TokenCookie carries the bearer token between gateway requests.
	TokenCookie = "token"
	// TokenKey is where the auth gate leaves the token in the gin context.
	TokenKey = "token"

	tokenCookieTTL = 24 * time.Hour
)

// ConsoleHandler serves the console pages by calling the inventory API with
// the caller's token.
type ConsoleHandler struct {
	client *inventory.Client
	logger *zap.Logger
}

// NewConsoleHandler constructs the HTTP handler adapter.
func NewConsoleHandler(client *inventory.Client, logger *zap.Logger) *ConsoleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleHandler{client: client, logger: logger}
}

// session returns a client bound to this request's token and path.
func (h *ConsoleHandler) session(c *gin.Context) (*inventory.Client, *inventory.PageNavigator) {
	nav := inventory.NewPageNavigator(c.Request.URL.Path)
	return h.client.WithSession(inventory.StaticToken(c.GetString(TokenKey)), nav), nav
}

// Login exchanges credentials for a token and stores it in a cookie.
func (h *ConsoleHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	tokens := inventory.NewMemoryTokenStore("")
	client := h.client.WithSession(tokens, inventory.NewPageNavigator(inventory.LoginPath))
	result, err := client.Login(c.Request.Context(), creds)
	if err != nil {
		h.fail(c, "login", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, result.Token, int(tokenCookieTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": result.User})
}

// Logout drops the token cookie.
func (h *ConsoleHandler) Logout(c *gin.Context) {
	c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, inventory.LoginPath)
}

// Serve renders one page of the route table.
func (h *ConsoleHandler) Serve(page Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, nav := h.session(c)
		ctx := c.Request.Context()

		if page.Detail != nil {
			data, err := page.Detail(ctx, client)
			if h.redirected(c, nav, err) {
				return
			}
			if err != nil {
				h.fail(c, page.Title, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"title": page.Title, "data": data})
			return
		}

		items, err := page.List(ctx, client)
		if h.redirected(c, nav, err) {
			return
		}
		if err != nil {
			h.fail(c, page.Title, err)
			return
		}

		pager := console.NewPagination(queryInt(c, "per_page", console.DefaultPageSize), len(items))
		pager.GoTo(queryInt(c, "page", 1))
		c.JSON(http.StatusOK, gin.H{
			"title":       page.Title,
			"page":        pager.Page(),
			"total_pages": pager.TotalPages(),
			"total":       pager.Total,
			"items":       console.Slice(items, pager),
		})
	}
}

// ShopifySync starts a product sync.
func (h *ConsoleHandler) ShopifySync(c *gin.Context) {
	client, nav := h.session(c)
	result, err := client.ShopifySync(c.Request.Context())
	if h.redirected(c, nav, err) {
		return
	}
	if err != nil {
		h.fail(c, "shopify sync", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportAuditHeader reports whether the export notification reached the backend.
const ExportAuditHeader = "X-Export-Audit"

// Export streams an entity list as a download.
func (h *ConsoleHandler) Export(c *gin.Context) {
	entity := c.Param("type")
	load, ok := exporters[entity]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown export type %q", entity)})
		return
	}
	format, err := transfer.ParseFormat(c.DefaultQuery("format", "csv"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, nav := h.session(c)
	rows, err := load(c.Request.Context(), client)
	if h.redirected(c, nav, err) {
		return
	}
	if err != nil {
		h.fail(c, "export "+entity, err)
		return
	}

	fields := c.QueryArray("field")
	data, err := transfer.Encode(format, transfer.Project(rows, fields), fields)
	if err != nil {
		h.fail(c, "export "+entity, err)
		return
	}

	name := transfer.FileName(entity, format, time.Now())

	// The download never fails on audit; the outcome travels in a header instead.
	audit := "recorded"
	event := models.ExportEvent{Type: entity, Filename: name, Actor: "console", Timestamp: time.Now().UTC(), Count: len(rows)}
	if err := client.RecordExport(c.Request.Context(), event); err != nil {
		h.logger.Warn("record export notification", zap.String("file", name), zap.Error(err))
		audit = "failed"
	}

	c.Header(ExportAuditHeader, audit)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, format.MIME(), data)
}

// Import forwards an uploaded file to the backend importer.
func (h *ConsoleHandler) Import(c *gin.Context) {
	entity := c.Param("type")
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	if _, err := transfer.Classify(header.Filename, header.Header.Get("Content-Type")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}

	client, nav := h.session(c)
	summary, err := client.UploadImport(c.Request.Context(), entity, header.Filename, &buf)
	if h.redirected(c, nav, err) {
		return
	}
	if err != nil {
		h.fail(c, "import "+entity, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// NotFound renders the not-found page.
func (h *ConsoleHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"title": "Not Found", "error": fmt.Sprintf("no page at %s", c.Request.URL.Path)})
}

// redirected sends the browser to the login page after a backend 401.
func (h *ConsoleHandler) redirected(c *gin.Context, nav *inventory.PageNavigator, err error) bool {
	if nav.Redirected() != inventory.LoginPath && !inventory.IsUnauthorized(err) {
		return false
	}
	c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, inventory.LoginPath)
	c.Abort()
	return true
}

func (h *ConsoleHandler) fail(c *gin.Context, what string, err error) {
	var apiErr *inventory.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		h.logger.Warn("backend rejected request", zap.String("page", what), zap.Int("status", apiErr.Status), zap.Error(err))
		c.JSON(apiErr.Status, gin.H{"error": msg})
		return
	}
	if errors.Is(err, context.Canceled) {
		c.Status(499)
		return
	}
	h.logger.Error("backend request failed", zap.String("page", what), zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("Failed to load %s", what)})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}
