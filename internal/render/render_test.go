package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/lycan/internal/puzzle"
)

func fixture(t *testing.T) *puzzle.Puzzle {
	t.Helper()
	p, err := puzzle.Decode("N-1-2_I-2-0_X-1-3_B-0-2", 4)
	require.NoError(t, err)
	p.Solution = 5 // villagers 0 and 2
	return p
}

func TestText(t *testing.T) {
	out := Text(fixture(t), Options{})

	assert.Contains(t, out, "WEREWOLF LOGIC PUZZLE")
	assert.Contains(t, out, "Alchemist Alice")
	assert.Contains(t, out, "Doctor Doris")
	assert.Contains(t, out, "Alchemist Alice says:")
	assert.Contains(t, out, "Neither Baker Bob nor Captain Charlie is a werewolf.")
	assert.Contains(t, out, "There is at least one werewolf")
	assert.NotContains(t, out, "shill", "no shill framing in baseline mode")
	assert.NotContains(t, out, "Werewolves:", "solution hidden by default")
}

func TestTextWithSolution(t *testing.T) {
	out := Text(fixture(t), Options{ShowSolution: true})
	assert.Contains(t, out, "Werewolves: Alchemist Alice, Captain Charlie")
	assert.Contains(t, out, "Difficulty:")
}

func TestTextShillFraming(t *testing.T) {
	out := Text(fixture(t), Options{HasShill: true})
	assert.Contains(t, out, "paid shill")
}

func TestMarkdown(t *testing.T) {
	out := Markdown(fixture(t), Options{ShowSolution: true})

	assert.True(t, strings.HasPrefix(out, "# Werewolf Logic Puzzle"))
	assert.Contains(t, out, "## The Claims")
	assert.Contains(t, out, "**Alchemist Alice says:**")
	assert.Contains(t, out, "- Neither Baker Bob nor Captain Charlie is a werewolf.")
	assert.Contains(t, out, "## Solution")
}

func TestCustomNames(t *testing.T) {
	names := []string{"Ana", "Ben", "Cleo", "Dev"}
	out := Text(fixture(t), Options{Names: names})
	assert.Contains(t, out, "Ana says:")
	assert.Contains(t, out, "Neither Ben nor Cleo is a werewolf.")
	assert.NotContains(t, out, "Alchemist")
}
