package tui

import (
	"fmt"
	"strings"

	"aicompass/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🧭 AI Compass"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", m.Err)))
		b.WriteString("\n\n")
	} else if m.Loading {
		b.WriteString(EntryStyle.Render("⏳ Loading..."))
		b.WriteString("\n\n")
	}

	switch m.Tab {
	case TabTools:
		b.WriteString(m.viewTools())
	case TabRandom:
		b.WriteString(m.viewPicks())
	case TabNews:
		b.WriteString(m.viewNews())
	}

	// Help text
	b.WriteString("\n")
	b.WriteString(DetailStyle.Render("t: tools | s: surprise me | n: news | ←/→: page | r: refresh | q: quit"))

	return b.String()
}

func (m Model) viewTools() string {
	var b strings.Builder

	b.WriteString(TabStyle.Render("Tools"))
	b.WriteString(DetailStyle.Render(fmt.Sprintf("  page %d/%d (%d total)", m.ToolsPage, m.totalPages(), m.ToolsTotal)))
	b.WriteString("\n\n")

	if len(m.Tools) == 0 {
		b.WriteString(DetailStyle.Render("No tools to show"))
		b.WriteString("\n")
		return b.String()
	}
	for _, tool := range m.Tools {
		b.WriteString(renderTool(tool))
	}
	return b.String()
}

func (m Model) viewPicks() string {
	var b strings.Builder

	b.WriteString(TabStyle.Render("Surprise picks"))
	b.WriteString("\n\n")

	if len(m.Picks) == 0 {
		b.WriteString(DetailStyle.Render("No picks yet; press 'r'"))
		b.WriteString("\n")
		return b.String()
	}

	var box strings.Builder
	for i, tool := range m.Picks {
		if i > 0 {
			box.WriteString("\n")
		}
		box.WriteString(strings.TrimRight(renderTool(tool), "\n"))
	}
	b.WriteString(PicksBoxStyle.Render(box.String()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewNews() string {
	var b strings.Builder

	b.WriteString(TabStyle.Render("Today's AI news"))
	b.WriteString("\n\n")

	if len(m.News) == 0 {
		b.WriteString(DetailStyle.Render("No news yet today"))
		b.WriteString("\n")
		return b.String()
	}
	for _, item := range m.News {
		header := item.Title
		if item.Time != "" {
			header = fmt.Sprintf("%s  %s", item.Time, item.Title)
		}
		b.WriteString(EntryStyle.Render("• " + header))
		b.WriteString("\n")
		if item.Source != "" {
			b.WriteString(DetailStyle.Render("  " + item.Source))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderTool(tool types.Tool) string {
	var b strings.Builder
	b.WriteString(EntryStyle.Render("• " + tool.Name))
	if tool.Pricing != "" {
		b.WriteString(DetailStyle.Render(fmt.Sprintf(" [%s]", tool.Pricing)))
	}
	b.WriteString("\n")
	if tool.Description != "" {
		b.WriteString(DetailStyle.Render("  " + truncate(tool.Description, 80)))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
