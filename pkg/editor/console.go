package editor

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/logging"
	"github.com/arthur-debert/wpstack/pkg/settings"
	"github.com/arthur-debert/wpstack/pkg/style"
)

// Outcome is the final decision of an editing session.
type Outcome int

const (
	OutcomeCommitted Outcome = iota
	OutcomeAborted
)

func (o Outcome) String() string {
	if o == OutcomeCommitted {
		return "committed"
	}
	return "aborted"
}

// Console drives an Editor over line-oriented input and output.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a console reading lines from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run loops until the editor commits or aborts and returns the decision
// with the final settings. End of input is treated as abort.
func (c *Console) Run(e *Editor) (Outcome, settings.Settings, error) {
	logger := logging.GetLogger("editor.console")
	done := logging.LogOperationStart(logger, "edit settings")
	defer done()

	for !e.State().Terminal() {
		switch e.State() {
		case StateDisplay:
			c.render(e)
			e.Displayed()
			continue
		case StateAwaitSelection:
			fmt.Fprintf(c.out, MsgChoosePrompt+"\n\n", strings.Join(e.Selectors(), ","))
			fmt.Fprintf(c.out, MsgControlsHint+"\n", CommitSelector, AbortSelector)
		case StateEditField:
			opt, _ := e.Editing()
			fmt.Fprintf(c.out, MsgFieldPrompt+"\n", opt.Label)
		}

		line, err := c.readLine()
		if err == io.EOF {
			logger.Info().Stringer("state", e.State()).Msg("input closed, aborting")
			return OutcomeAborted, e.Settings(), nil
		}
		if err != nil {
			return OutcomeAborted, e.Settings(), errors.Wrap(err, errors.ErrInternal, "failed to read input")
		}

		if err := e.Feed(line); err != nil {
			if !errors.IsRecoverable(err) {
				return OutcomeAborted, e.Settings(), err
			}
			c.reportInputError(err, line)
		}
	}

	if e.State() == StateAborted {
		return OutcomeAborted, e.Settings(), nil
	}
	return OutcomeCommitted, e.Settings(), nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is still returned; io.EOF only comes back when nothing
// was read.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) reportInputError(err error, line string) {
	fmt.Fprintln(c.out)
	switch errors.GetErrorCode(err) {
	case errors.ErrInvalidSelection:
		fmt.Fprintln(c.out, style.Apply(c.out, style.WarningStyle,
			fmt.Sprintf(MsgInvalidResponse, strings.TrimSpace(line))))
		fmt.Fprintln(c.out)
	case errors.ErrEmptyFieldValue:
		fmt.Fprintln(c.out, style.Apply(c.out, style.WarningStyle, MsgValueRequired))
	}
}

func (c *Console) render(e *Editor) {
	style.ClearScreen(c.out)

	fmt.Fprintln(c.out, style.Apply(c.out, style.TitleStyle, MsgCurrentConfig))
	fmt.Fprintln(c.out)

	current := e.Settings()
	for _, opt := range e.Options() {
		fmt.Fprintf(c.out, MsgMenuItem,
			style.Apply(c.out, style.SelectorStyle, opt.Selector),
			style.Apply(c.out, style.LabelStyle, opt.Label),
			style.Apply(c.out, style.ValueStyle, current.Get(opt.Field)))
	}
	fmt.Fprintln(c.out)
}
