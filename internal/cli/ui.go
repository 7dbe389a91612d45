package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Terminal color palette shared by all commands.
const (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorGray)
	StyleNumber    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	StyleSuccess   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleError     = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleCached    = lipgloss.NewStyle().Foreground(colorDim)
	styleComputed  = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconDetail  = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

func printSuccess(msg string) {
	fmt.Printf("%s %s\n", StyleSuccess.Render(iconSuccess), msg)
}

func printError(msg string) {
	fmt.Printf("%s %s\n", styleError.Render(iconError), msg)
}

func printWarning(msg string) {
	fmt.Printf("%s %s\n", StyleWarning.Render(iconWarning), msg)
}

func printInfo(msg string) {
	fmt.Println(msg)
}

func printDetail(msg string) {
	fmt.Printf("  %s %s\n", StyleDim.Render(iconDetail), StyleValue.Render(msg))
}

func printFile(path string) {
	fmt.Printf("  %s %s\n", StyleDim.Render(iconArrow), StyleLink.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Printf("  %s %s\n", StyleDim.Render(fmt.Sprintf("%-12s", key)), StyleValue.Render(value))
}

// printStatsLine prints dot separated counters followed by a cached or
// fresh marker, all indented under the preceding success line.
func printStatsLine(cached bool, parts ...string) {
	status := iconFresh
	style := styleComputed
	if cached {
		status = iconCached
		style = styleCached
	}
	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	if len(parts) > 0 {
		line += StyleDim.Render(" · ")
	}
	line += style.Render(status)
	fmt.Println(line)
}

// printGraphStats summarizes an extracted process graph.
func printGraphStats(nodes, edges, actors int, cached bool) {
	printStatsLine(cached,
		fmt.Sprintf("%d nodes", nodes),
		fmt.Sprintf("%d edges", edges),
		fmt.Sprintf("%d actors", actors),
	)
}

// printDiagramStats summarizes a positioned diagram.
func printDiagramStats(elements, connectors, lanes int, cached bool) {
	printStatsLine(cached,
		fmt.Sprintf("%d elements", elements),
		fmt.Sprintf("%d connectors", connectors),
		fmt.Sprintf("%d lanes", lanes),
	)
}

func printNextStep(cmd string) {
	fmt.Printf("\n%s %s\n", StyleDim.Render("next:"), StyleHighlight.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
