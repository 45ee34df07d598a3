package bench

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	fastStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	slowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

var columns = []struct {
	title string
	width int
}{
	{"particles", 9},
	{"brute force/tick", 16},
	{"quadtree/tick", 13},
	{"speedup", 8},
	{"collisions", 10},
	{"nodes", 6},
	{"depth", 5},
	{"pairs", 6},
	{"candidates", 10},
}

// Render formats the report as a table
func (r *Report) Render() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("collision strategy comparison"))
	b.WriteString(headerStyle.Render(fmt.Sprintf("  seed %d, %d ticks, %gx%g world",
		r.Options.Seed, r.Options.Ticks, r.Options.World.Width, r.Options.World.Height)))
	b.WriteString("\n")

	header := make([]string, len(columns))
	width := 0
	for i, c := range columns {
		header[i] = headerStyle.Render(pad(c.title, c.width))
		width += c.width + 2
	}
	b.WriteString(strings.Join(header, "  ") + "\n")
	b.WriteString(ruleStyle.Render(strings.Repeat("─", width-2)) + "\n")

	for _, c := range r.Comparisons {
		speedStyle := fastStyle
		if c.Speedup() < 1 {
			speedStyle = slowStyle
		}
		check := fastStyle.Render(pad("ok", columns[8].width))
		if !c.Agree() {
			check = failStyle.Render(pad(fmt.Sprintf("%d missed", c.Missed), columns[8].width))
		}

		cells := []string{
			cellStyle.Render(pad(fmt.Sprint(c.Count), columns[0].width)),
			cellStyle.Render(pad(formatDuration(c.Exhaustive.PerTick()), columns[1].width)),
			cellStyle.Render(pad(formatDuration(c.Indexed.PerTick()), columns[2].width)),
			speedStyle.Render(pad(fmt.Sprintf("%.2fx", c.Speedup()), columns[3].width)),
			cellStyle.Render(pad(fmt.Sprint(c.Exhaustive.Collisions), columns[4].width)),
			cellStyle.Render(pad(fmt.Sprint(c.Indexed.TreeNodes), columns[5].width)),
			cellStyle.Render(pad(fmt.Sprint(c.Indexed.TreeDepth), columns[6].width)),
			cellStyle.Render(pad(fmt.Sprint(c.Pairs), columns[7].width)),
			check,
		}
		b.WriteString(strings.Join(cells, "  ") + "\n")
	}
	return b.String()
}

// pad right-aligns s in a column of the given width
func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Millisecond:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
