package tui

import (
	"fmt"
	"strings"

	"github.com/Semior001/newsdesk/app/detail"
	"github.com/Semior001/newsdesk/app/feed"
	"github.com/Semior001/newsdesk/app/view"
	"github.com/charmbracelet/lipgloss"
)

const (
	listHelp   = "tab view · r region · c category · / search · m more · g refresh · f favorite · enter open · t theme · q quit"
	favHelp    = "tab view · f favorite · enter open · t theme · q quit"
	detailHelp = "esc back · f favorite · s share · y copy link · x full text · t theme · q quit"
)

// View renders the UI.
func (m Model) View() string {
	if m.reading != nil {
		return m.detailView()
	}
	return m.listView()
}

func (m Model) header() string {
	tabs := []string{}
	for _, mode := range []view.Mode{view.ModeFeed, view.ModeFavorites} {
		label := "Headlines"
		if mode == view.ModeFavorites {
			label = fmt.Sprintf("Favorites (%d)", m.favs.Len())
		}
		if m.sel.Mode() == mode {
			tabs = append(tabs, m.styles.TabOn.Render(label))
			continue
		}
		tabs = append(tabs, m.styles.Tab.Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Title.Render("News desk")+"  ", strings.Join(tabs, " "))
}

func (m Model) listView() string {
	sb := &strings.Builder{}
	_, _ = sb.WriteString(m.header() + "\n")

	if m.sel.FeedControls() {
		params := fmt.Sprintf("Region: %s · Category: %s",
			feed.RegionName(m.snap.Params.Region), feed.CategoryName(m.snap.Params.Category))
		if m.snap.Params.Query != "" {
			params += fmt.Sprintf(" · Search: %q", m.snap.Params.Query)
		}
		_, _ = sb.WriteString(m.styles.Muted.Render(params) + "\n")
	}

	if m.searching {
		_, _ = sb.WriteString(m.input.View() + "\n")
	}
	_, _ = sb.WriteString("\n")

	arts := m.articles()
	loading := m.sel.FeedControls() && (m.snap.Loading() || m.snap.Status == feed.StatusIdle)

	switch {
	case loading && len(arts) == 0:
		_, _ = sb.WriteString(m.spinner.View() + " Loading...\n")
	case m.sel.FeedControls() && m.snap.Status == feed.StatusFailed:
		_, _ = sb.WriteString(m.styles.Error.Render("⚠ "+m.snap.Err) + "\n")
	case m.sel.Empty(m.snap, m.favs.List()):
		_, _ = sb.WriteString(m.styles.Muted.Render("No articles found.") + "\n")
	}

	start, end := m.window(len(arts))
	for i := start; i < end; i++ {
		a := arts[i]
		line := a.Title
		if a.Source.Name != "" {
			line += " " + m.styles.Muted.Render("· "+a.Source.Name)
		}
		star := "  "
		if m.favs.IsFavorite(a) {
			star = m.styles.Star.Render("★ ")
		}
		if i == m.cursor {
			_, _ = sb.WriteString(star + m.styles.Selected.Render(a.Title) + "\n")
			continue
		}
		_, _ = sb.WriteString(star + m.styles.Item.Render(line) + "\n")
	}

	if m.sel.FeedControls() && len(arts) > 0 {
		switch {
		case loading && m.snap.Params.Page > 1:
			_, _ = sb.WriteString("\n" + m.spinner.View() + " Loading more...\n")
		case loading:
			_, _ = sb.WriteString("\n" + m.spinner.View() + " Refreshing...\n")
		case m.snap.HasMore():
			_, _ = sb.WriteString("\n" + m.styles.Muted.Render(
				fmt.Sprintf("%d of %d · press m to load more", len(arts), m.snap.Total)) + "\n")
		}
	}

	if m.status != "" {
		_, _ = sb.WriteString("\n" + m.styles.Error.Render(m.status) + "\n")
	}

	help := listHelp
	if !m.sel.FeedControls() {
		help = favHelp
	}
	_, _ = sb.WriteString("\n" + m.styles.Help.Render(help))

	return sb.String()
}

// window returns the range of items that fit the screen with the cursor visible.
func (m Model) window(n int) (start, end int) {
	// header, params, blank line, footer lines
	rows := m.height - 8
	if rows < 1 {
		rows = 1
	}
	if n <= rows {
		return 0, n
	}

	start = m.cursor - rows + 1
	if start < 0 {
		start = 0
	}
	end = start + rows
	if end > n {
		end = n
	}
	return start, end
}

func (m Model) detailView() string {
	a := *m.reading
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	body := m.styles.Body.Width(width)

	sb := &strings.Builder{}
	_, _ = sb.WriteString(m.header() + "\n\n")

	title := a.Title
	if m.favs.IsFavorite(a) {
		title = m.styles.Star.Render("★ ") + title
	}
	_, _ = sb.WriteString(m.styles.Title.Width(width).Render(title) + "\n")

	meta := []string{}
	if a.Source.Name != "" {
		meta = append(meta, a.Source.Name)
	}
	if a.Author != "" {
		meta = append(meta, a.Author)
	}
	if !a.PublishedAt.IsZero() {
		meta = append(meta, a.PublishedAt.Format("02 Jan 2006 15:04"))
	}
	if len(meta) > 0 {
		_, _ = sb.WriteString(m.styles.Muted.Render(strings.Join(meta, " · ")) + "\n")
	}

	_, _ = sb.WriteString("\n" + body.Render(detail.Body(a)) + "\n")
	if a.URL != "" {
		_, _ = sb.WriteString("\n" + m.styles.Link.Render(a.URL) + "\n")
	}

	switch {
	case m.expanding:
		_, _ = sb.WriteString("\n" + m.spinner.View() + " Loading full text...\n")
	case m.expansion != nil:
		if m.expansion.Summary != "" {
			_, _ = sb.WriteString("\n" + m.styles.Title.Render("Summary") + "\n" + body.Render(m.expansion.Summary) + "\n")
		}
		if m.expansion.Text != "" {
			_, _ = sb.WriteString("\n" + m.styles.Title.Render("Full text") + "\n" + body.Render(m.expansion.Text) + "\n")
		}
	}

	if m.notice.Visible(m.now()) {
		_, _ = sb.WriteString("\n" + m.styles.Notice.Render(m.notice.Message) + "\n")
	}
	if m.status != "" {
		_, _ = sb.WriteString("\n" + m.styles.Error.Render(m.status) + "\n")
	}

	_, _ = sb.WriteString("\n" + m.styles.Help.Render(detailHelp))
	return sb.String()
}
