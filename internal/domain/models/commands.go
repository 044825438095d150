package models

import "strings"

// CommandType enumerates the questions the WhatsApp bot answers.
type CommandType string

const (
	CommandStock     CommandType = "stock"
	CommandLivestock CommandType = "livestock"
	CommandCrops     CommandType = "crops"
	CommandReport    CommandType = "report"
	CommandHelp      CommandType = "help"
	CommandUnknown   CommandType = "unknown"
)

// Command represents a parsed instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// IsSlash reports whether text is written as a /command.
func IsSlash(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

// ParseCommand derives a Command from free-form text. The leading slash is
// optional.
func ParseCommand(message string) Command {
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(strings.ToLower(message))
	if len(tokens) == 0 {
		return cmd
	}

	switch head := CommandType(strings.TrimPrefix(tokens[0], "/")); head {
	case CommandStock, CommandLivestock, CommandCrops, CommandReport, CommandHelp:
		cmd.Type = head
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}
	return cmd
}
