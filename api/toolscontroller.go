package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"aicompass/catalog"
	"aicompass/supabase"
	"aicompass/uploads"
)

const (
	defaultPageSize   = 12
	defaultRandomSize = 4
	maxRandomSize     = 20
)

type toolsController struct {
	tools      *catalog.Tools
	categories *catalog.Categories
	admin      *supabase.Client
	uploader   *uploads.Uploader
}

// RegisterToolRoutes registers catalog read endpoints and the two
// service-role write endpoints.
func RegisterToolRoutes(r *gin.Engine, tools *catalog.Tools, categories *catalog.Categories, admin *supabase.Client, uploader *uploads.Uploader) {
	ctl := &toolsController{tools: tools, categories: categories, admin: admin, uploader: uploader}

	r.GET("/api/tools", ctl.handleList)
	r.GET("/api/tools/random", ctl.handleRandom)
	r.GET("/api/tools/:slug", ctl.handleBySlug)
	r.GET("/api/categories", ctl.handleCategories)

	r.POST("/api/tools/create", ctl.handleCreate)
	r.POST("/api/tools/update", ctl.handleUpdate)
	r.POST("/api/tools/upload-icon", ctl.handleUploadIcon)
}

// handleList serves one pagination window of tools with the exact total.
// GET /api/tools?page=&pageSize=&search=&category=&pricing=&order=
func (ctl *toolsController) handleList(c *gin.Context) {
	p := supabase.Params{
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", defaultPageSize),
		Search:   c.Query("search"),
		Order:    c.Query("order"),
	}
	if v := c.Query("category"); v != "" {
		p.CategoryIDs = strings.Split(v, ",")
	}
	if v := c.Query("pricing"); v != "" {
		p.Pricing = strings.Split(v, ",")
	}

	items, total, err := ctl.tools.FetchPage(c.Request.Context(), p)
	if err != nil {
		// Bad parameters are the caller's fault and rejected before any
		// remote call. Everything else, non-2xx responses and transport
		// failures alike, degrades to an empty listing.
		if errors.Is(err, supabase.ErrUnknownFilter) || errors.Is(err, supabase.ErrInvalidOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": []any{}, "total": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// handleRandom serves a shuffled pick of recent tools.
// GET /api/tools/random?count=
func (ctl *toolsController) handleRandom(c *gin.Context) {
	count := intQuery(c, "count", defaultRandomSize)
	if count > maxRandomSize {
		count = maxRandomSize
	}
	items := ctl.tools.Random(c.Request.Context(), count)
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// handleBySlug serves a single tool by its slug.
func (ctl *toolsController) handleBySlug(c *gin.Context) {
	tool := ctl.tools.BySlug(c.Request.Context(), c.Param("slug"))
	if tool == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tool not found"})
		return
	}
	c.JSON(http.StatusOK, tool)
}

// handleCategories serves all categories; on upstream failure the
// catalog substitutes its fallback dataset, so this never errors.
func (ctl *toolsController) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": ctl.categories.Fetch(c.Request.Context())})
}

// handleCreate inserts a tool using the service-role client.
// POST /api/tools/create
func (ctl *toolsController) handleCreate(c *gin.Context) {
	if ctl.admin == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "service role key not configured"})
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stripSystemFields(body)

	var created []map[string]any
	if err := ctl.admin.Insert(c.Request.Context(), "tools", body, &created); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": upstreamMessage(err)})
		return
	}
	if len(created) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "insert returned no row"})
		return
	}
	c.JSON(http.StatusOK, created[0])
}

// handleUpdate patches a tool by id using the service-role client.
// POST /api/tools/update with body {id, updates}
func (ctl *toolsController) handleUpdate(c *gin.Context) {
	var req struct {
		ID      string         `json:"id"`
		Updates map[string]any `json:"updates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Validated before any remote call.
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing tool id"})
		return
	}
	if ctl.admin == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "service role key not configured"})
		return
	}

	updates := req.Updates
	if updates == nil {
		updates = map[string]any{}
	}
	stripSystemFields(updates)

	var updated []map[string]any
	filter := url.Values{"id": {"eq." + req.ID}}
	if err := ctl.admin.Update(c.Request.Context(), "tools", filter, updates, &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": upstreamMessage(err)})
		return
	}
	if len(updated) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "tool not found"})
		return
	}
	c.JSON(http.StatusOK, updated[0])
}

// handleUploadIcon stores a multipart file upload and returns its public
// URL. POST /api/tools/upload-icon
func (ctl *toolsController) handleUploadIcon(c *gin.Context) {
	if ctl.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	publicURL, err := ctl.uploader.Upload(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": publicURL})
}

// stripSystemFields drops the columns the store owns so clients cannot
// smuggle them.
func stripSystemFields(m map[string]any) {
	delete(m, "id")
	delete(m, "created_at")
	delete(m, "updated_at")
}

// upstreamMessage unwraps the data API's own message when present.
func upstreamMessage(err error) string {
	var apiErr *supabase.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func intQuery(c *gin.Context, key string, defaultVal int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
