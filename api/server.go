// Package api exposes the HTTP surface: catalog reads, the two admin
// write endpoints, the workflow-backed news/daily proxies, preference
// lists, uploads and the article migration.
package api

import (
	"github.com/gin-gonic/gin"

	"aicompass/catalog"
	"aicompass/coze"
	"aicompass/migrate"
	"aicompass/prefs"
	"aicompass/supabase"
	"aicompass/uploads"
)

// Deps carries the explicitly constructed collaborators the controllers
// use. Optional integrations stay nil when unconfigured; their endpoints
// then fail fast instead of half-working.
type Deps struct {
	Tools      *catalog.Tools
	Categories *catalog.Categories
	News       *catalog.News

	// Admin is the service-role client. Only the write paths and the
	// migration may touch it.
	Admin    *supabase.Client
	Migrator *migrate.Migrator

	// Coze is nil when COZE_API_TOKEN is absent.
	Coze *coze.Client

	Prefs    *prefs.Store
	Uploader *uploads.Uploader
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r)
	RegisterToolRoutes(r, deps.Tools, deps.Categories, deps.Admin, deps.Uploader)
	RegisterNewsRoutes(r, deps.News)
	RegisterWorkflowRoutes(r, deps.Coze)
	RegisterPrefsRoutes(r, deps.Prefs)
	RegisterMigrationRoutes(r, deps.Migrator)
	return r
}
