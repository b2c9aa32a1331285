package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case ToolsLoadedMsg:
		m.Loading = false
		m.Err = msg.Err
		if msg.Err == nil {
			m.Tools = msg.Items
			m.ToolsTotal = msg.Total
			m.ToolsPage = msg.Page
		}
		return m, nil
	case PicksLoadedMsg:
		m.Loading = false
		m.Err = msg.Err
		if msg.Err == nil {
			m.Picks = msg.Items
		}
		return m, nil
	case NewsLoadedMsg:
		m.Loading = false
		m.Err = msg.Err
		if msg.Err == nil {
			m.News = msg.Items
		}
		return m, nil
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "t":
		m.Tab = TabTools
		m.Loading = true
		return m, fetchTools(m.Client, m.ToolsPage)
	case "s":
		m.Tab = TabRandom
		m.Loading = true
		return m, fetchPicks(m.Client)
	case "n":
		m.Tab = TabNews
		m.Loading = true
		return m, fetchNews(m.Client)
	case "right", "l":
		if m.Tab == TabTools && m.ToolsPage < m.totalPages() {
			m.Loading = true
			return m, fetchTools(m.Client, m.ToolsPage+1)
		}
	case "left", "h":
		if m.Tab == TabTools && m.ToolsPage > 1 {
			m.Loading = true
			return m, fetchTools(m.Client, m.ToolsPage-1)
		}
	case "r":
		m.Loading = true
		switch m.Tab {
		case TabRandom:
			return m, fetchPicks(m.Client)
		case TabNews:
			return m, fetchNews(m.Client)
		default:
			return m, fetchTools(m.Client, m.ToolsPage)
		}
	}
	return m, nil
}
