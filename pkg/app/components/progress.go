package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kerbaras/enjoi/pkg/app/styles"
	"github.com/kerbaras/enjoi/pkg/services"
)

// RefreshTracker follows a library refresh. Entries still being fetched or
// that failed are listed; finished ones only count towards the bar.
type RefreshTracker struct {
	active map[string]*services.RefreshProgress
	total  int
	done   int
	width  int
}

func NewRefreshTracker(width int) *RefreshTracker {
	return &RefreshTracker{
		active: make(map[string]*services.RefreshProgress),
		width:  width,
	}
}

// Start resets the tracker for a refresh of total entries.
func (p *RefreshTracker) Start(total int) {
	p.Clear()
	p.total = total
}

func (p *RefreshTracker) Update(progress services.RefreshProgress) {
	switch progress.Status {
	case services.StatusUpdated, services.StatusUnchanged:
		delete(p.active, progress.Slug)
		p.done++
	case services.StatusError:
		prog := progress
		p.active[progress.Slug] = &prog
		p.done++
	default:
		prog := progress
		p.active[progress.Slug] = &prog
	}
}

func (p *RefreshTracker) Clear() {
	p.active = make(map[string]*services.RefreshProgress)
	p.total = 0
	p.done = 0
}

func (p *RefreshTracker) HasActive() bool {
	return p.total > 0 && p.done < p.total
}

func (p *RefreshTracker) View() string {
	if p.total == 0 && len(p.active) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Refreshing library (%d/%d)", p.done, p.total)))
	b.WriteString("\n")
	if bar := renderProgressBar(p.done, p.total, p.width-4); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	slugs := make([]string, 0, len(p.active))
	for slug := range p.active {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	for _, slug := range slugs {
		progress := p.active[slug]
		b.WriteString(styles.TextStyle.Render(slug))
		b.WriteString(" ")
		b.WriteString(styles.StatusStyle(progress.Status).Render(progress.Status))
		b.WriteString("\n")

		if progress.Err != nil {
			b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", progress.Err)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.ProgressBarStyle.Render(bar)
}

// SimpleProgress renders a bare progress bar.
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
