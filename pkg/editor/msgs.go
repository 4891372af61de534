package editor

// Message constants
const (
	MsgCurrentConfig   = "The current configuration is:"
	MsgMenuItem        = " %s - %s: %s\n"
	MsgChoosePrompt    = "Choose the item you would like to change. [%s]"
	MsgControlsHint    = "Enter '%s' to write the configuration, or '%s' to quit."
	MsgFieldPrompt     = "What is the new value you would like to use for \"%s\" ?"
	MsgInvalidResponse = "Sorry, '%s' is not a valid response"
	MsgValueRequired   = "Sorry, you must provide a value"
)
