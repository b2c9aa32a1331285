package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aicompass/coze"
	"aicompass/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWorkflowServer answers POST /v1/workflow/run with a canned payload
// and records the parameters of the last run.
type fakeWorkflowServer struct {
	srv        *httptest.Server
	payload    any
	lastID     string
	lastParams map[string]any
}

func newFakeWorkflowServer(t *testing.T, payload any) *fakeWorkflowServer {
	t.Helper()
	f := &fakeWorkflowServer{payload: payload}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			WorkflowID string         `json:"workflow_id"`
			Parameters map[string]any `json:"parameters"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.lastID = req.WorkflowID
		f.lastParams = req.Parameters

		data, err := json.Marshal(f.payload)
		require.NoError(t, err)
		json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"msg":  "Success",
			"data": string(data),
		})
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func newWorkflowRouter(client *coze.Client) *gin.Engine {
	r := gin.New()
	RegisterWorkflowRoutes(r, client)
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func TestNewsWithoutTokenFailsFast(t *testing.T) {
	r := newWorkflowRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "COZE_API_TOKEN")
}

func TestNewsMapsAndSortsWorkflowOutput(t *testing.T) {
	f := newFakeWorkflowServer(t, map[string]any{
		"outputList": []map[string]any{
			{
				"id":        101,
				"title":     "Older story",
				"content":   "body",
				"source":    "TechWire",
				"news_date": "2025-12-11 09:30:00 +0800 CST",
				"tags":      []string{"llm"},
				"url":       "https://example.com/a",
			},
			{
				"uuid":      "u-2",
				"title":     "Newer story",
				"content":   "body",
				"news_date": "2025-12-12 15:57:00 +0800 CST",
				"tags":      `["agents","robotics"]`,
			},
		},
	})
	r := newWorkflowRouter(coze.New("token", f.srv.URL))

	var got struct {
		Items []types.NewsItem `json:"items"`
	}
	code := getJSON(t, r, "/api/news?date=2025-12-12", &got)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, got.Items, 2)

	assert.Equal(t, newsWorkflowID, f.lastID)
	assert.Equal(t, "2025-12-12 00:00:00", f.lastParams["startTime"])
	assert.Equal(t, "2025-12-12 23:59:59", f.lastParams["endTime"])

	// Newest first.
	assert.Equal(t, "Newer story", got.Items[0].Title)
	assert.Equal(t, "u-2", got.Items[0].ID)
	assert.Equal(t, "2025-12-12", got.Items[0].Date)
	assert.Equal(t, "15:57", got.Items[0].Time)
	assert.Equal(t, []string{"agents", "robotics"}, got.Items[0].Tags)
	assert.Equal(t, "AI Newswire", got.Items[0].Source)

	assert.Equal(t, "101", got.Items[1].ID)
	assert.Equal(t, "TechWire", got.Items[1].Source)
	assert.Equal(t, []string{"llm"}, got.Items[1].Tags)
}

func TestNewsWorkflowFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"code": 4000, "msg": "token expired"})
	}))
	defer srv.Close()
	r := newWorkflowRouter(coze.New("token", srv.URL))

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestDailyDecodesStringDigest(t *testing.T) {
	f := newFakeWorkflowServer(t, map[string]any{
		"outputList":  "## Daily AI Digest\n\n- item one",
		"report_date": "2025-12-12 00:00:00 +0800 CST",
	})
	r := newWorkflowRouter(coze.New("token", f.srv.URL))

	var got struct {
		Items []types.DailyItem `json:"items"`
		Total int               `json:"total"`
	}
	code := getJSON(t, r, "/api/daily?date=2025-12-12&page=2&pageSize=5", &got)
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, dailyWorkflowID, f.lastID)
	assert.Equal(t, "2025-12-12 00:00:00", f.lastParams["startDay"])
	assert.EqualValues(t, 2, f.lastParams["page"])
	assert.EqualValues(t, 5, f.lastParams["pageSize"])

	require.Len(t, got.Items, 1)
	assert.NotEmpty(t, got.Items[0].ID)
	assert.Equal(t, "2025-12-12", got.Items[0].Date)
	assert.Contains(t, got.Items[0].Content, "Daily AI Digest")
	assert.Equal(t, 1, got.Total)
}

func TestDailyDecodesListDigest(t *testing.T) {
	f := newFakeWorkflowServer(t, map[string]any{
		"outputList": []map[string]any{
			{"id": "d-1", "content": "first", "date": "2025-12-10"},
			{"content": "second"},
		},
		"total": 9,
	})
	r := newWorkflowRouter(coze.New("token", f.srv.URL))

	var got struct {
		Items []types.DailyItem `json:"items"`
		Total int               `json:"total"`
	}
	code := getJSON(t, r, "/api/daily?date=2025-12-12", &got)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, got.Items, 2)

	assert.Equal(t, "d-1", got.Items[0].ID)
	assert.Equal(t, "2025-12-10", got.Items[0].Date)
	assert.NotEmpty(t, got.Items[1].ID)
	assert.Equal(t, "2025-12-12", got.Items[1].Date)
	assert.Equal(t, 9, got.Total)
}

func TestDailyEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"code": 0, "msg": "Success", "data": ""})
	}))
	defer srv.Close()
	r := newWorkflowRouter(coze.New("token", srv.URL))

	var got struct {
		Items []types.DailyItem `json:"items"`
		Total int               `json:"total"`
	}
	code := getJSON(t, r, "/api/daily", &got)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, got.Items)
	assert.Equal(t, 0, got.Total)
}
