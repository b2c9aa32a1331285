package tui

import (
	"context"
	"time"

	"aicompass/demo/client"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 30 * time.Second

// fetchTools creates a command to load one page of tools
func fetchTools(c *client.Client, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		items, total, err := c.ToolsPage(ctx, page, toolsPageSize, "")
		return ToolsLoadedMsg{Items: items, Total: total, Page: page, Err: err}
	}
}

// fetchPicks creates a command to load a random sample of tools
func fetchPicks(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		items, err := c.RandomTools(ctx, 4)
		return PicksLoadedMsg{Items: items, Err: err}
	}
}

// fetchNews creates a command to load today's breaking news
func fetchNews(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		items, err := c.News(ctx, "")
		return NewsLoadedMsg{Items: items, Err: err}
	}
}
