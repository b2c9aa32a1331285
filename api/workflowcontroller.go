package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aicompass/coze"
	"aicompass/types"
)

// Workflow IDs for the breaking-news fetch and the daily digest.
const (
	newsWorkflowID  = "7581112574068310016"
	dailyWorkflowID = "7583636153225920558"
)

type workflowController struct {
	coze *coze.Client
}

// RegisterWorkflowRoutes registers the endpoints proxying the workflow
// API. client may be nil when the token is not configured; the handlers
// then fail fast before attempting any call.
func RegisterWorkflowRoutes(r *gin.Engine, client *coze.Client) {
	ctl := &workflowController{coze: client}
	r.GET("/api/news", ctl.handleNews)
	r.GET("/api/daily", ctl.handleDaily)
}

// cozeNewsItem is one row of the news workflow's output. Field types are
// loose on purpose: ids arrive as numbers or strings, tags as an array
// or a JSON-encoded string.
type cozeNewsItem struct {
	ID      json.RawMessage `json:"id"`
	UUID    string          `json:"uuid"`
	Title   string          `json:"title"`
	Content string          `json:"content"`
	Source  string          `json:"source"`
	// news_date looks like "2025-12-12 15:57:00 +0800 CST".
	NewsDate string          `json:"news_date"`
	Tags     json.RawMessage `json:"tags"`
	URL      string          `json:"url"`
}

// handleNews runs the breaking-news workflow for a time window.
// GET /api/news?date= or ?startTime=&endTime=
func (ctl *workflowController) handleNews(c *gin.Context) {
	if ctl.coze == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server configuration error: COZE_API_TOKEN is missing"})
		return
	}

	startTime := c.Query("startTime")
	endTime := c.Query("endTime")
	if d := c.Query("date"); d != "" {
		day := strings.Fields(d)[0]
		startTime, endTime = day+" 00:00:00", day+" 23:59:59"
	}
	if startTime == "" || endTime == "" {
		today := time.Now().Format("2006-01-02")
		startTime, endTime = today+" 00:00:00", today+" 23:59:59"
	}

	data, err := ctl.coze.RunWorkflow(c.Request.Context(), newsWorkflowID, map[string]any{
		"startTime": startTime,
		"endTime":   endTime,
	})
	if err != nil {
		log.Printf("api: news workflow failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var payload struct {
		OutputList []cozeNewsItem `json:"outputList"`
	}
	if _, err := coze.DecodePayload(data, &payload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]types.NewsItem, 0, len(payload.OutputList))
	for _, raw := range payload.OutputList {
		items = append(items, mapNewsItem(raw))
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		return items[i].Time > items[j].Time
	})

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func mapNewsItem(raw cozeNewsItem) types.NewsItem {
	id := rawString(raw.ID)
	if id == "" {
		id = raw.UUID
	}

	source := raw.Source
	if source == "" {
		source = "AI Newswire"
	}

	date, clock := splitNewsDate(raw.NewsDate)
	return types.NewsItem{
		ID:      id,
		Title:   raw.Title,
		Content: raw.Content,
		Source:  source,
		Date:    date,
		Time:    clock,
		Tags:    decodeTags(raw.Tags),
		Link:    raw.URL,
	}
}

// splitNewsDate takes the date and HH:MM from a timestamp like
// "2025-12-12 15:57:00 +0800 CST", defaulting to today / midnight.
func splitNewsDate(s string) (date, clock string) {
	parts := strings.Fields(s)
	date = time.Now().Format("2006-01-02")
	clock = "00:00"
	if len(parts) > 0 && parts[0] != "" {
		date = parts[0]
	}
	if len(parts) > 1 && len(parts[1]) >= 5 {
		clock = parts[1][:5]
	}
	return date, clock
}

// decodeTags accepts either a JSON array or a JSON-encoded string
// containing one; anything else yields no tags.
func decodeTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err == nil {
		return tags
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		if err := json.Unmarshal([]byte(encoded), &tags); err == nil {
			return tags
		}
	}
	return nil
}

// rawString renders a JSON scalar (string or number) as a plain string.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// handleDaily runs the daily-digest workflow for one day.
// GET /api/daily?date=&page=&pageSize=
func (ctl *workflowController) handleDaily(c *gin.Context) {
	if ctl.coze == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server configuration error: COZE_API_TOKEN is missing"})
		return
	}

	day := c.Query("date")
	if day == "" {
		day = time.Now().Format("2006-01-02")
	}

	params := map[string]any{
		"startDay": day + " 00:00:00",
		"endDay":   day + " 23:59:59",
	}
	if page := intQuery(c, "page", 0); page > 0 {
		params["page"] = page
	}
	if pageSize := intQuery(c, "pageSize", 0); pageSize > 0 {
		params["pageSize"] = pageSize
	}

	data, err := ctl.coze.RunWorkflow(c.Request.Context(), dailyWorkflowID, params)
	if err != nil {
		log.Printf("api: daily workflow failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var payload struct {
		// outputList is the rendered digest: either one markdown string
		// or a list of per-day entries.
		OutputList json.RawMessage `json:"outputList"`
		ReportDate string          `json:"report_date"`
		Total      int             `json:"total"`
	}
	ok, err := coze.DecodePayload(data, &payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"items": []types.DailyItem{}, "total": 0})
		return
	}

	reportDate, _ := splitNewsDate(payload.ReportDate)
	if payload.ReportDate == "" {
		reportDate = day
	}

	items := decodeDailyItems(payload.OutputList, reportDate)
	total := payload.Total
	if total == 0 {
		total = len(items)
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

func decodeDailyItems(raw json.RawMessage, date string) []types.DailyItem {
	items := []types.DailyItem{}
	if len(raw) == 0 {
		return items
	}

	var content string
	if err := json.Unmarshal(raw, &content); err == nil {
		if content != "" {
			items = append(items, types.DailyItem{ID: uuid.NewString(), Content: content, Date: date})
		}
		return items
	}

	var list []types.DailyItem
	if err := json.Unmarshal(raw, &list); err != nil {
		return items
	}
	for _, item := range list {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.Date == "" {
			item.Date = date
		}
		items = append(items, item)
	}
	return items
}
