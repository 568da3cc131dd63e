package models

import "strings"

// CommandType enumerates the chat commands staff can send over WhatsApp.
type CommandType string

const (
	CommandKeg     CommandType = "keg"
	CommandStats   CommandType = "stats"
	CommandOverdue CommandType = "overdue"
	CommandStatus  CommandType = "status"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

// Command represents a parsed instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from a free-form text message. Only the
// command word is case-insensitive; arguments keep their case so QR codes and
// cider type names survive.
func ParseCommand(message string) Command {
	tokens := strings.Fields(message)
	cmd := Command{Raw: message}

	if len(tokens) == 0 {
		cmd.Type = CommandUnknown
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	switch head {
	case string(CommandKeg):
		cmd.Type = CommandKeg
	case string(CommandStats):
		cmd.Type = CommandStats
	case string(CommandOverdue):
		cmd.Type = CommandOverdue
	case string(CommandStatus):
		cmd.Type = CommandStatus
	case string(CommandHelp), "start":
		cmd.Type = CommandHelp
	default:
		cmd.Type = CommandUnknown
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
