package tui

import (
	"aicompass/demo/client"
	"aicompass/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Tab selects which listing is shown
type Tab string

const (
	TabTools  Tab = "tools"
	TabRandom Tab = "random"
	TabNews   Tab = "news"
)

const toolsPageSize = 10

// Model represents the TUI client state (thin client)
type Model struct {
	// API client
	Client *client.Client

	// Active tab
	Tab Tab

	// Tools listing
	Tools      []types.Tool
	ToolsPage  int
	ToolsTotal int

	// Random picks
	Picks []types.Tool

	// Today's news
	News []types.NewsItem

	Loading bool
	Err     error
}

// NewModel creates a new TUI model
func NewModel(serverURL string) Model {
	return Model{
		Client:    client.NewClient(serverURL),
		Tab:       TabTools,
		ToolsPage: 1,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return fetchTools(m.Client, m.ToolsPage)
}

// totalPages derives the page count from the exact total
func (m Model) totalPages() int {
	if m.ToolsTotal == 0 {
		return 1
	}
	pages := m.ToolsTotal / toolsPageSize
	if m.ToolsTotal%toolsPageSize != 0 {
		pages++
	}
	return pages
}
