package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/matching"
	"github.com/matzehuels/stablematch/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings, critical vertices
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCritical = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess  = "✓"
	iconError    = "✗"
	iconWarning  = "!"
	iconArrow    = "→"
	iconCritical = "*"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Instance Display
// =============================================================================

// printStats prints instance size on a single line.
func printStats(g *bipartite.Graph) {
	parts := []string{
		fmt.Sprintf("%d vertices", g.Len()),
		fmt.Sprintf("%d edges", g.EdgeCount()),
	}
	if n := g.CriticalCount(bipartite.SideA) + g.CriticalCount(bipartite.SideB); n > 0 {
		parts = append(parts, fmt.Sprintf("%d critical", n))
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// sideStats describes one partition, e.g. "3 vertices, 1 critical".
func sideStats(g *bipartite.Graph, s bipartite.Side) string {
	return fmt.Sprintf("%d vertices, %d critical", len(g.Partition(s)), g.CriticalCount(s))
}

// vertexName renders a vertex label, flagging critical vertices.
func vertexName(g *bipartite.Graph, v bipartite.VertexID) string {
	if g.IsCritical(v) {
		return g.Label(v) + iconCritical
	}
	return g.Label(v)
}

// matchingRows builds one row per pair: both labels and the rank, counted
// from 1, at which each endpoint lists the other.
func matchingRows(g *bipartite.Graph, m *matching.Matching) [][]string {
	var rows [][]string
	for _, p := range m.Pairs(g) {
		ap, _ := m.PartnerOf(p.A)
		bp, _ := m.PartnerOf(p.B)
		rows = append(rows, []string{
			vertexName(g, p.A),
			vertexName(g, p.B),
			strconv.Itoa(ap.Rank + 1),
			strconv.Itoa(bp.Rank + 1),
		})
	}
	return rows
}

// unmatched returns the labels of unmatched vertices on side s.
func unmatched(g *bipartite.Graph, m *matching.Matching, s bipartite.Side) []string {
	var out []string
	for _, v := range g.Partition(s) {
		if !m.IsMatched(v) {
			out = append(out, vertexName(g, v))
		}
	}
	return out
}

// printMatching prints the matched pairs as a table followed by the
// unmatched vertices of each side.
func printMatching(g *bipartite.Graph, m *matching.Matching) {
	rows := matchingRows(g, m)
	if len(rows) == 0 {
		printWarning("No pairs matched")
	} else {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("A", "B", "Rank A", "Rank B").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return styleHeader
				}
				if col < 2 && strings.HasSuffix(rows[row][col], iconCritical) {
					return styleCritical
				}
				return lipgloss.NewStyle()
			})
		fmt.Println(t.Render())
	}

	for _, s := range []bipartite.Side{bipartite.SideA, bipartite.SideB} {
		if labels := unmatched(g, m, s); len(labels) > 0 {
			printDetail("unmatched %s: %s", s, strings.Join(labels, ", "))
		}
	}
}

// printSummary prints the quality of a matching and the run counters.
func printSummary(algorithm string, s matching.Summary, stats pipeline.Stats) {
	printKeyValue("Algorithm", algorithm)
	printKeyValue("Pairs", StyleNumber.Render(strconv.Itoa(s.Pairs)))
	if s.CriticalTotal > 0 {
		printKeyValue("Critical", fmt.Sprintf("%d/%d matched", s.CriticalMatched, s.CriticalTotal))
	}

	switch {
	case s.Stable:
		printSuccess("Stable: no blocking pairs")
	case s.RelaxedStable:
		printSuccess("Relaxed-stable: %d blocking pair(s), all with a critical partner", s.BlockingPairs)
	default:
		printError("%d blocking pair(s), %d without a critical partner", s.BlockingPairs, s.BlockingPairs-s.Tolerated)
	}

	e := stats.Engine
	printDetail("%d proposals · %d rejections · %d promotions · %d exchanges · %s",
		e.Proposals, e.Rejections, e.Promotions, e.Exchanges, stats.ComputeTime)
}
