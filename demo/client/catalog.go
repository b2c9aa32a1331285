package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"aicompass/types"
)

// ToolsPage fetches one page of tools, optionally filtered by a search term.
func (c *Client) ToolsPage(ctx context.Context, page, pageSize int, search string) ([]types.Tool, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	if search != "" {
		q.Set("search", search)
	}

	var result struct {
		Items []types.Tool `json:"items"`
		Total int          `json:"total"`
	}
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/tools?"+q.Encode(), nil, &result); err != nil {
		return nil, 0, err
	}
	return result.Items, result.Total, nil
}

// RandomTools fetches a random pick of tools.
func (c *Client) RandomTools(ctx context.Context, count int) ([]types.Tool, error) {
	var result struct {
		Items []types.Tool `json:"items"`
	}
	path := fmt.Sprintf("/api/tools/random?count=%d", count)
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// Categories fetches all tool categories.
func (c *Client) Categories(ctx context.Context) ([]types.Category, error) {
	var result struct {
		Items []types.Category `json:"items"`
	}
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/categories", nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// News fetches breaking AI news for a day; empty date means today.
func (c *Client) News(ctx context.Context, date string) ([]types.NewsItem, error) {
	path := "/api/news"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}

	var result struct {
		Items []types.NewsItem `json:"items"`
	}
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// Daily fetches the daily digest for a day; empty date means today.
func (c *Client) Daily(ctx context.Context, date string) ([]types.DailyItem, int, error) {
	path := "/api/daily"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}

	var result struct {
		Items []types.DailyItem `json:"items"`
		Total int               `json:"total"`
	}
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, 0, err
	}
	return result.Items, result.Total, nil
}
