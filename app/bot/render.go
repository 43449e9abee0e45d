package bot

import (
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/Semior001/newsdesk/app/detail"
	"github.com/Semior001/newsdesk/app/feed"
	"github.com/Semior001/newsdesk/app/revisor"
	"github.com/Semior001/newsdesk/app/store"
	"github.com/Semior001/newsdesk/app/view"
	"github.com/Semior001/newsdesk/pkg/botx"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// maxText keeps messages under the telegram limit of 4096 characters.
const maxText = 3500

// list renders the list of the current view with its state.
func (c *Ctrl) list(req botx.Request, snap feed.Snapshot) []botx.Response {
	favs := c.Favorites.List()

	c.mu.Lock()
	mode := c.View.Mode()
	arts := c.View.Articles(snap, favs)
	empty := c.View.Empty(snap, favs)
	c.mu.Unlock()

	sb := &strings.Builder{}
	if mode == view.ModeFavorites {
		_, _ = fmt.Fprintf(sb, "*Favorites* (%d)\n\n", len(arts))
	} else {
		_, _ = fmt.Fprintf(sb, "*Top headlines* · %s · %s",
			feed.RegionName(snap.Params.Region), feed.CategoryName(snap.Params.Category))
		if snap.Params.Query != "" {
			_, _ = fmt.Fprintf(sb, " · %q", escapeMarkdown(snap.Params.Query))
		}
		_, _ = sb.WriteString("\n\n")

		switch {
		case snap.Loading():
			_, _ = sb.WriteString("Loading...\n\n")
		case snap.Status == feed.StatusFailed:
			_, _ = fmt.Fprintf(sb, "⚠️ %s\n\n", escapeMarkdown(snap.Err))
		}
	}

	if empty {
		_, _ = sb.WriteString("No articles found.")
	}

	for i, a := range arts {
		star := ""
		if mode == view.ModeFeed && c.Favorites.IsFavorite(a) {
			star = " ⭐"
		}
		_, _ = fmt.Fprintf(sb, "%d. %s%s\n", i+1, escapeMarkdown(a.Title), star)
	}

	resp := botx.Response{ChatID: req.Chat.ID, Text: truncate(sb.String(), maxText)}

	for _, chunk := range lo.Chunk(lo.Range(len(arts)), 6) {
		resp.Buttons = append(resp.Buttons, lo.Map(chunk, func(i, _ int) botx.Button {
			return botx.Button{Text: fmt.Sprintf("%d", i+1), Data: fmt.Sprintf("/read %d", i+1)}
		}))
	}

	if mode == view.ModeFeed && snap.CanLoadMore() && snap.HasMore() {
		resp.Buttons = append(resp.Buttons, []botx.Button{{Text: "More", Data: "/more"}})
	}

	return []botx.Response{resp}
}

var articleTmpl = template.Must(template.New("article").Parse(`*{{.Title}}*
{{- if .Source}}
_{{.Source}}{{if .Author}}, {{.Author}}{{end}}_
{{- end}}
{{- if .Published}}
{{.Published}}
{{- end}}

{{.Body}}`))

type articleView struct {
	Title, Source, Author, Published, Body string
}

// article renders the detail view of the article. Buttons refer to its
// number in the current list, if it is there.
func (c *Ctrl) article(req botx.Request, a store.Article) []botx.Response {
	v := articleView{
		Title:  escapeMarkdown(a.Title),
		Source: escapeMarkdown(a.Source.Name),
		Author: escapeMarkdown(a.Author),
		Body:   escapeMarkdown(detail.Body(a)),
	}
	if !a.PublishedAt.IsZero() {
		v.Published = a.PublishedAt.Format("02 Jan 2006 15:04 MST")
	}

	sb := &strings.Builder{}
	if err := articleTmpl.Execute(sb, v); err != nil {
		c.Logger.Warn("failed to render article", slog.Any("err", err))
		_, _ = sb.WriteString(v.Title)
	}

	resp := botx.Response{ChatID: req.Chat.ID, Text: truncate(sb.String(), maxText)}

	row := []botx.Button{}
	if _, idx, ok := lo.FindIndexOf(c.articles(c.Feed.Snapshot()), a.SameAs); ok {
		favText := "☆ Favorite"
		if c.Favorites.IsFavorite(a) {
			favText = "★ Unfavorite"
		}
		row = append(row,
			botx.Button{Text: favText, Data: fmt.Sprintf("/fav %d", idx+1)},
			botx.Button{Text: "Share", Data: fmt.Sprintf("/share %d", idx+1)},
			botx.Button{Text: "Full text", Data: fmt.Sprintf("/full %d", idx+1)},
		)
	}
	if a.URL != "" {
		row = append(row, botx.Button{Text: "Open", URL: a.URL})
	}
	if len(row) > 0 {
		resp.Buttons = [][]botx.Button{row}
	}

	return []botx.Response{resp}
}

func renderExpansion(a store.Article, exp revisor.Expansion) string {
	sb := &strings.Builder{}
	title := exp.Title
	if title == "" {
		title = a.Title
	}
	_, _ = fmt.Fprintf(sb, "*%s*\n", escapeMarkdown(title))
	if exp.Author != "" || exp.SiteName != "" {
		_, _ = fmt.Fprintf(sb, "_%s_\n", escapeMarkdown(strings.Join(lo.Compact([]string{exp.SiteName, exp.Author}), ", ")))
	}
	if exp.Summary != "" {
		_, _ = fmt.Fprintf(sb, "\n%s\n", escapeMarkdown(exp.Summary))
	}
	if exp.Text != "" {
		_, _ = fmt.Fprintf(sb, "\n%s\n", escapeMarkdown(exp.Text))
	}
	if a.URL != "" {
		_, _ = fmt.Fprintf(sb, "\n[source](%s)", a.URL)
	}
	return truncate(sb.String(), maxText)
}

// legacy telegram markdown has only these special characters
var mdEscaper = strings.NewReplacer(
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	"[", "\\[",
)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

// truncate cuts the text to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
