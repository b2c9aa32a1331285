package tui

import "aicompass/types"

// Messages for the tea program

// ToolsLoadedMsg is sent when a tools page arrives
type ToolsLoadedMsg struct {
	Items []types.Tool
	Total int
	Page  int
	Err   error
}

// PicksLoadedMsg is sent when the random picks arrive
type PicksLoadedMsg struct {
	Items []types.Tool
	Err   error
}

// NewsLoadedMsg is sent when today's news arrives
type NewsLoadedMsg struct {
	Items []types.NewsItem
	Err   error
}
