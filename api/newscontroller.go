package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aicompass/catalog"
	"aicompass/supabase"
	"aicompass/types"
)

type newsController struct {
	news *catalog.News
}

// RegisterNewsRoutes registers the endpoint over the persisted news
// table. Unlike /api/news this one never reaches the workflow API.
func RegisterNewsRoutes(r *gin.Engine, news *catalog.News) {
	ctl := &newsController{news: news}
	r.GET("/api/news/saved", ctl.handleSaved)
}

// handleSaved serves stored news items, newest first.
// GET /api/news/saved?category=breaking|daily&page=&pageSize=&source=
func (ctl *newsController) handleSaved(c *gin.Context) {
	p := supabase.Params{
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", defaultPageSize),
	}
	if v := c.Query("source"); v != "" {
		p.Filters = map[string]any{"source": v}
	}

	var items []types.NewsItem
	switch strings.ToLower(c.Query("category")) {
	case "", types.NewsCategoryBreaking:
		items = ctl.news.Breaking(c.Request.Context(), p)
	case types.NewsCategoryDaily:
		items = ctl.news.Daily(c.Request.Context(), p)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown news category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
