package tokens

// Message constants
const (
	MsgShort       = "List the placeholder tokens templates can use"
	MsgLong        = "List every placeholder token substituted into the project files, how its value is\nproduced and, with --resolve, the value the default settings would give it.\n\nSecrets are shown as <secret>; they are generated fresh for each project."
	MsgFlagResolve = "Show the value each token resolves to with the default settings"
	MsgHeader      = "%-26s %-9s %s\n"
	MsgRow         = "%-26s %-9s %s\n"
	MsgValue       = "    = %s\n"
	MsgSecretValue = "<secret>"
)
