package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanStripsTagsAndEntities(t *testing.T) {
	in := "<p>Hand-thrown <b>ceramic</b> mug &amp; saucer</p>"
	assert.Equal(t, "Hand-thrown ceramic mug & saucer", Clean(in))
}

func TestCleanDropsScriptAndStyleBlocks(t *testing.T) {
	in := "<div>Blue mug</div><script>track()</script><style>.x{color:red}</style>"
	assert.Equal(t, "Blue mug", Clean(in))
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	in := "<p>line one</p>\n\n<p>line   two</p>"
	assert.Equal(t, "line one line two", Clean(in))
}

func TestCleanEmpty(t *testing.T) {
	assert.Equal(t, "", Clean(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 50))
	out := Truncate("a mug for every possible occasion you can imagine", 20)
	assert.LessOrEqual(t, len(out), 23)
	assert.Contains(t, out, "...")
}
