package style

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonTerminalWritersGetPlainText(t *testing.T) {
	var buf bytes.Buffer

	assert.False(t, IsTerminal(&buf))
	assert.False(t, ColorEnabled(&buf))
	assert.Equal(t, "value", Apply(&buf, ValueStyle, "value"))
	assert.Equal(t, "title", Bold(&buf, "title"))

	md := "# Done\n\n- item\n"
	assert.Equal(t, md, RenderMarkdown(&buf, md))
}

func TestClearScreenSkipsNonTerminal(t *testing.T) {
	var buf bytes.Buffer

	ClearScreen(&buf)
	assert.Empty(t, buf.Bytes())
}

func TestNoColorDisablesStyling(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, ColorEnabled(os.Stdout))
}

func TestIsTerminalRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	assert.False(t, IsTerminal(f))
}
