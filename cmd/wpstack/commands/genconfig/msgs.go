package genconfig

// Message constants
const (
	MsgShort   = "Print the default settings file"
	MsgLong    = "Output the default settings, with any WPSTACK_<FIELD> environment overrides applied,\nto stdout or to a file that can be passed back to wpstack."
	MsgExample = `  wpstack gen-config                          # YAML to stdout
  wpstack gen-config --format toml            # TOML to stdout
  wpstack gen-config -w                       # write ./generator-settings.yml
  wpstack gen-config -o site.toml             # format follows the extension`
	MsgFlagFormat = "Output format (yaml or toml)"
	MsgFlagWrite  = "Write to ./generator-settings.yml instead of stdout"
	MsgFlagOutput = "Write to this file instead of stdout"
	MsgWritten    = "Settings written to %s\n"
)
