package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aicompass/migrate"
)

type migrationController struct {
	migrator *migrate.Migrator
}

// RegisterMigrationRoutes registers the article migration endpoint.
// migrator is nil when the service-role key is not configured.
func RegisterMigrationRoutes(r *gin.Engine, migrator *migrate.Migrator) {
	ctl := &migrationController{migrator: migrator}
	r.POST("/api/migrate-articles", ctl.handleMigrate)
}

// handleMigrate runs the markdown article migration and returns its
// batch report. Per-file failures land in the report; only a wholly
// unrunnable migration is an HTTP error.
func (ctl *migrationController) handleMigrate(c *gin.Context) {
	if ctl.migrator == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "service role key not configured"})
		return
	}
	report, err := ctl.migrator.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
