package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// PipeSketchData holds the quantities annotated on the pipe sketch
type PipeSketchData struct {
	Length   float64 // m
	Diameter float64 // m
	Velocity float64 // m/s
	HeadLoss float64 // m
	FlowRate float64 // m³/s, 0 if not computed
}

// DrawConvergence plots successive iterates as an ASCII line chart
func DrawConvergence(title string, values []float64) string {
	if len(values) == 0 {
		return ""
	}

	// asciigraph needs at least two samples to draw a line
	data := values
	if len(data) == 1 {
		data = []float64{values[0], values[0]}
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(title)))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", len([]rune(title)))))
	sb.WriteString(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(50),
		asciigraph.Precision(6),
		asciigraph.Offset(4),
		asciigraph.Caption(fmt.Sprintf("iterations: %d", len(values))),
	))
	sb.WriteString("\n")
	return sb.String()
}

// DrawPipeSketch creates an ASCII sketch of a pipe run with the head loss
func DrawPipeSketch(data PipeSketchData) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("  PIPE RUN\n")
	sb.WriteString("  ────────\n\n")

	sb.WriteString("   ▼ EGL (1)                                 \n")
	sb.WriteString("   ─────────────────────────────────────┐\n")
	sb.WriteString(fmt.Sprintf("                                         │ h_f = %.4f m\n", data.HeadLoss))
	sb.WriteString("                                         ▼ EGL (2)\n")
	sb.WriteString("   ╔═════════════════════════════════════╗\n")
	sb.WriteString(fmt.Sprintf("   ║  ──► V = %-10.4f m/s              ║  D = %.4f m\n", data.Velocity, data.Diameter))
	sb.WriteString("   ╚═════════════════════════════════════╝\n")
	sb.WriteString("   (1)                                 (2)\n")
	sb.WriteString(fmt.Sprintf("   ├──────────── L = %.2f m ────────────┤\n", data.Length))
	if data.FlowRate > 0 {
		sb.WriteString(fmt.Sprintf("\n   Q = %.6f m³/s\n", data.FlowRate))
	}

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s with spaces to n runes; %-*s counts bytes, which
// misaligns the box for symbols like ε and ³
func pad(s string, n int) string {
	if d := n - len([]rune(s)); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
