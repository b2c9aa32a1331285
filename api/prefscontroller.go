package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aicompass/prefs"
)

type prefsController struct {
	store *prefs.Store
}

// RegisterPrefsRoutes registers the search-history and favorites
// endpoints. store may be nil when redis is not configured.
func RegisterPrefsRoutes(r *gin.Engine, store *prefs.Store) {
	ctl := &prefsController{store: store}

	g := r.Group("/api/search/history")
	g.GET("", ctl.handleHistory)
	g.POST("", ctl.handleAddHistory)
	g.DELETE("", ctl.handleDeleteHistory)

	r.GET("/api/favorites", ctl.handleFavorites)
	r.POST("/api/favorites/toggle", ctl.handleToggleFavorite)
}

func (ctl *prefsController) unavailable(c *gin.Context) bool {
	if ctl.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "preferences store not configured"})
		return true
	}
	return false
}

// handleHistory returns search terms, most recent first.
func (ctl *prefsController) handleHistory(c *gin.Context) {
	if ctl.unavailable(c) {
		return
	}
	items, err := ctl.store.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// handleAddHistory records one search term.
func (ctl *prefsController) handleAddHistory(c *gin.Context) {
	if ctl.unavailable(c) {
		return
	}
	var req struct {
		Term string `json:"term"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := ctl.store.AddHistory(c.Request.Context(), req.Term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// handleDeleteHistory removes one term (?term=) or clears the list.
func (ctl *prefsController) handleDeleteHistory(c *gin.Context) {
	if ctl.unavailable(c) {
		return
	}
	ctx := c.Request.Context()
	if term := c.Query("term"); term != "" {
		items, err := ctl.store.RemoveHistory(ctx, term)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
		return
	}
	if err := ctl.store.ClearHistory(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": []string{}})
}

// handleFavorites returns the favorited tool ids.
func (ctl *prefsController) handleFavorites(c *gin.Context) {
	if ctl.unavailable(c) {
		return
	}
	items, err := ctl.store.Favorites(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// handleToggleFavorite flips one tool id in the favorites list.
func (ctl *prefsController) handleToggleFavorite(c *gin.Context) {
	if ctl.unavailable(c) {
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing tool id"})
		return
	}
	favorited, items, err := ctl.store.ToggleFavorite(c.Request.Context(), req.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited, "items": items})
}
