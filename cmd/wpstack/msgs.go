package wpstack

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Generate a dockerized WordPress stack"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	MsgAborted        = "Quitting without making any changes"
	MsgDryRunNotice   = "\nDRY RUN MODE - No changes were made"
	MsgDryRunChanges  = "Would write %d file(s):\n"
	MsgDryRunChange   = "  %-6s %s\n"
	MsgNoChanges      = "Nothing would change."
	MsgFetchFailed    = "Could not download %s: %v\nThe SSL config expects nginx-conf/options-ssl-nginx.conf; add it by hand or rerun online.\n"
	MsgVersionFormat  = "wpstack version %s\n  commit: %s\n  built:  %s\n"
	MsgErrTemplateDir = "template directory %s does not exist"

	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun        = "Run the whole generation in memory and list what would change"
	MsgFlagForce         = "Regenerate an existing project even if its .env is missing"
	MsgFlagYes           = "Skip the menu and write the loaded settings"
	MsgFlagTemplates     = "Use the template tree in this directory instead of the built-in one"
	MsgFlagOutputRoot    = "Directory that holds generated projects"
	MsgFlagOffline       = "Do not download the certbot TLS options file"
	MsgFlagTLSOptionsURL = "URL of the nginx TLS options file"
	MsgFlagSkip          = "Glob of project files to leave unrewritten (repeatable)"
	MsgFlagKeep          = "Glob of project files to keep across regenerations, like .env (repeatable)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/summary.md
	msgSummaryRaw string
	MsgSummary    = strings.TrimSpace(msgSummaryRaw)
)
