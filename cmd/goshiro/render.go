package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#E4477B")).
			Bold(true).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
	dubStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA726"))
	subStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4FC3F7"))
	linkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4FC3F7")).Underline(true)
)

func dubTag(s models.ShowSummary) string {
	if s.IsDubbed() {
		return dubStyle.Render("[dub]")
	}
	return subStyle.Render("[sub]")
}

// summaryLine is the plain one-line form used by the fuzzy finder
func summaryLine(s models.ShowSummary) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(s.Title))
	if s.IsDubbed() {
		sb.WriteString(" [dub]")
	} else {
		sb.WriteString(" [sub]")
	}
	if s.Year != nil {
		fmt.Fprintf(&sb, " (%d)", *s.Year)
	}
	return sb.String()
}

func renderSummary(w io.Writer, s models.ShowSummary) {
	meta := []string{s.Type.String()}
	if s.Year != nil {
		meta = append(meta, fmt.Sprint(*s.Year))
	}
	if s.EpisodeCount != nil {
		meta = append(meta, fmt.Sprintf("%d eps", *s.EpisodeCount))
	}
	fmt.Fprintf(w, "%s %s %s\n", titleStyle.Render(strings.TrimSpace(s.Title)), dubTag(s), dimStyle.Render(strings.Join(meta, " · ")))
	fmt.Fprintf(w, "  %s\n", dimStyle.Render(s.Slug))
}

func renderSummaries(w io.Writer, shows []models.ShowSummary) {
	if len(shows) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No results."))
		return
	}
	for _, s := range shows {
		renderSummary(w, s)
	}
}

func renderHome(w io.Writer, lists []models.HomePageList) {
	for _, l := range lists {
		fmt.Fprintln(w, headerStyle.Render(l.Name))
		renderSummaries(w, l.Items)
		fmt.Fprintln(w)
	}
}

func renderDetail(w io.Writer, d *models.ShowDetail) {
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render(strings.TrimSpace(d.Title)), dubTag(d.ShowSummary))
	if d.EnglishTitle != nil && *d.EnglishTitle != "" {
		fmt.Fprintf(w, "%s %s\n", dimStyle.Render("English:"), *d.EnglishTitle)
	}
	if d.JapaneseTitle != nil && *d.JapaneseTitle != "" {
		fmt.Fprintf(w, "%s %s\n", dimStyle.Render("Japanese:"), *d.JapaneseTitle)
	}
	fmt.Fprintf(w, "%s %s · %s\n", dimStyle.Render("Status:"), d.Type, d.Status)
	if len(d.Genres) > 0 {
		fmt.Fprintf(w, "%s %s\n", dimStyle.Render("Genres:"), strings.Join(d.Genres, ", "))
	}
	if d.Synopsis != "" {
		fmt.Fprintf(w, "\n%s\n", d.Synopsis)
	}

	fmt.Fprintf(w, "\n%s\n", titleStyle.Render(fmt.Sprintf("Episodes (%d)", len(d.Episodes))))
	for _, ep := range d.Episodes {
		fmt.Fprintf(w, "  %4d  %s\n", ep.Number, dimStyle.Render(ep.VideoID))
	}
}

func renderLinks(w io.Writer, links []models.ExtractorLink) {
	if len(links) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No mirrors."))
		return
	}
	for _, l := range links {
		kind := ""
		if l.IsM3u8 {
			kind = dimStyle.Render(" (m3u8)")
		}
		fmt.Fprintf(w, "%s%s\n  %s\n", titleStyle.Render(l.Name), kind, linkStyle.Render(l.URL))
	}
}
