// Package render turns a puzzle into human-readable text or Markdown. The
// synthesis engine itself only deals in canonical codes; rendering exists
// for the CLI's human output.
package render

import (
	"fmt"
	"strings"

	"github.com/harrison/lycan/internal/puzzle"
	"github.com/harrison/lycan/internal/roles"
	"github.com/harrison/lycan/internal/statement"
)

// Options controls rendering.
type Options struct {
	// Names are the villager names; nil uses statement.DefaultNames.
	Names []string

	// HasShill adjusts the framing text for shill mode.
	HasShill bool

	// ShowSolution appends the solution section when the puzzle carries one.
	ShowSolution bool
}

func (o Options) names(n int) []string {
	if len(o.Names) >= n {
		return o.Names
	}
	return statement.DefaultNames(n)
}

// Text renders the puzzle as plain text.
func Text(p *puzzle.Puzzle, opts Options) string {
	names := opts.names(p.N)
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	b.WriteString("WEREWOLF LOGIC PUZZLE\n")
	b.WriteString(rule + "\n\n")
	b.WriteString("You arrive at a village with the following villagers:\n\n")
	for i := 0; i < p.N; i++ {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, names[i])
	}
	b.WriteString("\n")
	writeFraming(&b, opts.HasShill)
	b.WriteString("\nThe villagers make the following claims:\n\n")
	for i, bundle := range p.Bundles {
		fmt.Fprintf(&b, "%s says:\n", names[i])
		for j, s := range bundle {
			fmt.Fprintf(&b, "  %d. %s\n", j+1, s.English(names))
		}
		b.WriteString("\n")
	}
	b.WriteString(rule + "\n")
	b.WriteString("Can you determine who is a werewolf?\n")
	b.WriteString(rule + "\n")

	if opts.ShowSolution && p.Solution >= 0 {
		b.WriteString("\n")
		writeSolutionText(&b, p, names)
	}
	return b.String()
}

// Markdown renders the puzzle as Markdown.
func Markdown(p *puzzle.Puzzle, opts Options) string {
	names := opts.names(p.N)
	var b strings.Builder

	b.WriteString("# Werewolf Logic Puzzle\n\n")
	b.WriteString("You arrive at a village with the following villagers:\n\n")
	for i := 0; i < p.N; i++ {
		fmt.Fprintf(&b, "%d. %s\n", i+1, names[i])
	}
	b.WriteString("\n")
	writeFraming(&b, opts.HasShill)
	b.WriteString("\n## The Claims\n\n")
	for i, bundle := range p.Bundles {
		fmt.Fprintf(&b, "**%s says:**\n\n", names[i])
		for _, s := range bundle {
			fmt.Fprintf(&b, "- %s\n", s.English(names))
		}
		b.WriteString("\n")
	}
	b.WriteString("*Can you determine who is a werewolf?*\n")

	if opts.ShowSolution && p.Solution >= 0 {
		b.WriteString("\n## Solution\n\n")
		writeSolutionText(&b, p, names)
	}
	return b.String()
}

func writeFraming(b *strings.Builder, hasShill bool) {
	b.WriteString("Each villager is either a Human (always tells the truth)\n")
	b.WriteString("or a Werewolf (at least one thing they say is wrong).\n")
	b.WriteString("There is at least one werewolf in the village.\n")
	if hasShill {
		b.WriteString("One villager is a paid shill: not a werewolf, but at least\n")
		b.WriteString("one thing they say is wrong too. Exactly one shill exists.\n")
	}
}

func writeSolutionText(b *strings.Builder, p *puzzle.Puzzle, names []string) {
	w := p.SolutionVector()
	wolves := make([]string, 0, p.N)
	for i, isWolf := range w {
		if isWolf {
			wolves = append(wolves, names[i])
		}
	}
	fmt.Fprintf(b, "Werewolves: %s\n", strings.Join(wolves, ", "))
	if p.Shill != roles.NoShill {
		fmt.Fprintf(b, "Shill: %s\n", names[p.Shill])
	}
	fmt.Fprintf(b, "Difficulty: %d\n", p.Difficulty)
}
