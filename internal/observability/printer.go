// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/buffet-strategist/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxSkipsToShow is the default number of skip entries to display
	maxSkipsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs a human-readable summary of the analysis result.
func (p *Printer) PrintResult(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Dishes:     %d detected\n", len(result.DetectedDishes)))
	sb.WriteString(fmt.Sprintf("Available:  %.0f kcal\n", result.NutritionSummary.TotalAvailableCalories))
	sb.WriteString(fmt.Sprintf("Planned:    %.0f kcal\n", result.Strategy.TotalCalories))
	sb.WriteString(fmt.Sprintf("Fullness:   %.0f%%\n", result.Strategy.FullnessScore*100))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", result.ConfidenceOverall))
	sb.WriteString("\n")

	for _, phase := range result.Strategy.Phases {
		sb.WriteString(fmt.Sprintf("%s:\n", phase.PhaseName))
		for _, item := range phase.Items {
			sb.WriteString(fmt.Sprintf("  - %s: %.0fg (%.0f kcal)\n",
				item.DishName, item.PortionGrams, item.Calories))
		}
	}

	if len(result.Strategy.Skip) > 0 {
		sb.WriteString("\nSkipped:\n")
		count := len(result.Strategy.Skip)
		if count > maxSkipsToShow {
			count = maxSkipsToShow
		}
		for i := 0; i < count; i++ {
			s := result.Strategy.Skip[i]
			sb.WriteString(fmt.Sprintf("  - %s (%s)\n", s.Name, s.Reason))
		}
		if len(result.Strategy.Skip) > maxSkipsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Strategy.Skip)-maxSkipsToShow))
		}
	}

	p.printBox("Eating Plan", strings.TrimRight(sb.String(), "\n"))

	if result.Explanation != "" {
		fmt.Fprintf(p.out, "\n%s\n", result.Explanation)
	}
}
