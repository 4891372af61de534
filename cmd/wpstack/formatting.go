package wpstack

import (
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/wpstack/pkg/style"
	"github.com/spf13/cobra"
)

// helpHeading renders a section title of the usage template. Help is written
// to stdout, so that is the stream whose capabilities decide the styling.
func helpHeading(title string) string {
	return style.Bold(os.Stdout, strings.ToUpper(title))
}

func registerHelpFuncs() {
	cobra.AddTemplateFuncs(template.FuncMap{"heading": helpHeading})
}
