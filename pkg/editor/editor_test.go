// pkg/editor/editor_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Drive the menu state machine with scripted input

package editor_test

import (
	"testing"

	"github.com/arthur-debert/wpstack/pkg/editor"
	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T) *editor.Editor {
	t.Helper()
	e, err := editor.New(settings.Defaults(), editor.DefaultOptions())
	require.NoError(t, err)
	return e
}

// feedAll displays and feeds every line, failing on unrecoverable errors.
func feedAll(t *testing.T, e *editor.Editor, lines ...string) []error {
	t.Helper()
	var recovered []error
	for _, line := range lines {
		e.Displayed()
		if err := e.Feed(line); err != nil {
			require.True(t, errors.IsRecoverable(err), "unexpected error: %v", err)
			recovered = append(recovered, err)
		}
	}
	return recovered
}

func TestStartsInDisplay(t *testing.T) {
	e := newEditor(t)
	assert.Equal(t, editor.StateDisplay, e.State())

	e.Displayed()
	assert.Equal(t, editor.StateAwaitSelection, e.State())
}

func TestCommitReturnsSettingsUnchanged(t *testing.T) {
	e := newEditor(t)
	feedAll(t, e, "w")

	assert.Equal(t, editor.StateCommitted, e.State())
	assert.True(t, e.State().Terminal())
	assert.True(t, e.Settings().Equal(settings.Defaults()))
}

func TestAbort(t *testing.T) {
	e := newEditor(t)
	feedAll(t, e, "2", "changed.example", "q")

	assert.Equal(t, editor.StateAborted, e.State())
	assert.True(t, e.State().Terminal())
}

func TestEditField(t *testing.T) {
	e := newEditor(t)

	feedAll(t, e, "2")
	require.Equal(t, editor.StateEditField, e.State())
	opt, ok := e.Editing()
	require.True(t, ok)
	assert.Equal(t, settings.Domains, opt.Field)

	feedAll(t, e, "  a.com, b.com  ")
	assert.Equal(t, editor.StateDisplay, e.State())
	assert.Equal(t, "a.com, b.com", e.Settings().Get(settings.Domains))

	_, ok = e.Editing()
	assert.False(t, ok)
}

func TestInvalidSelectionIsRecoverable(t *testing.T) {
	tests := []string{"", "0", "11", "W", "write", "x"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			e := newEditor(t)
			e.Displayed()

			err := e.Feed(input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidSelection))
			assert.Equal(t, editor.StateAwaitSelection, e.State())
			assert.True(t, e.Settings().Equal(settings.Defaults()))
		})
	}
}

func TestSelectionIsTrimmed(t *testing.T) {
	e := newEditor(t)
	feedAll(t, e, " 10 ")

	opt, ok := e.Editing()
	require.True(t, ok)
	assert.Equal(t, settings.ServerDirectory, opt.Field)
}

func TestBlankValueNeverMutates(t *testing.T) {
	e := newEditor(t)
	feedAll(t, e, "1")

	for _, blank := range []string{"", "   ", "\t"} {
		err := e.Feed(blank)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrEmptyFieldValue))
		assert.Equal(t, editor.StateEditField, e.State())
		assert.True(t, e.Settings().Equal(settings.Defaults()))
	}

	require.NoError(t, e.Feed("blog.example.org"))
	assert.Equal(t, "blog.example.org", e.Settings().Get(settings.ApplicationName))
}

func TestMultipleEditsThenCommit(t *testing.T) {
	e := newEditor(t)
	recovered := feedAll(t, e,
		"1", "shop.example.com",
		"bogus",
		"5", "yes",
		"4", "",
		"live",
		"w",
	)

	require.Len(t, recovered, 2)
	assert.Equal(t, editor.StateCommitted, e.State())

	s := e.Settings()
	assert.Equal(t, "shop.example.com", s.Get(settings.ApplicationName))
	assert.Equal(t, "yes", s.Get(settings.CertbotActive))
	assert.Equal(t, "live", s.Get(settings.CertbotMode))
	assert.Equal(t, settings.Defaults().Get(settings.Domains), s.Get(settings.Domains))
}

func TestFeedAfterTerminalState(t *testing.T) {
	e := newEditor(t)
	feedAll(t, e, "w")

	err := e.Feed("1")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestFeedBeforeDisplay(t *testing.T) {
	e := newEditor(t)

	err := e.Feed("w")
	require.Error(t, err)
	assert.Equal(t, editor.StateDisplay, e.State())
}

func TestSelectors(t *testing.T) {
	e := newEditor(t)
	assert.Equal(t,
		[]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "w", "q"},
		e.Selectors())
}

func TestNewRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name    string
		options []editor.Option
	}{
		{"empty", nil},
		{"reserved commit", []editor.Option{{Selector: "w", Label: "x", Field: settings.Domains}}},
		{"reserved abort", []editor.Option{{Selector: "q", Label: "x", Field: settings.Domains}}},
		{"duplicate", []editor.Option{
			{Selector: "1", Label: "a", Field: settings.Domains},
			{Selector: "1", Label: "b", Field: settings.CertbotMode},
		}},
		{"blank selector", []editor.Option{{Selector: "", Label: "x", Field: settings.Domains}}},
		{"unknown field", []editor.Option{{Selector: "1", Label: "x", Field: "nope"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := editor.New(settings.Defaults(), tt.options)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		})
	}
}

func TestDefaultOptionsCoverEveryField(t *testing.T) {
	covered := map[settings.Field]bool{}
	for _, opt := range editor.DefaultOptions() {
		covered[opt.Field] = true
	}
	for _, f := range settings.Fields() {
		assert.True(t, covered[f], "no menu option edits %s", f)
	}
}
