// pkg/engine/command.go
package engine

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-particles/pkg/collision"
)

// Command is a runtime request from a viewer
type Command int

const (
	// NoCommand is returned by input mappers for keys that mean nothing.
	NoCommand Command = iota
	ToggleStrategy
	TogglePartitions
	IncreaseCount
	DecreaseCount
	Reset
	Quit
)

var commandNames = [...]string{
	NoCommand:        "none",
	ToggleStrategy:   "toggle-strategy",
	TogglePartitions: "toggle-partitions",
	IncreaseCount:    "increase-count",
	DecreaseCount:    "decrease-count",
	Reset:            "reset",
	Quit:             "quit",
}

// String returns the command name
func (c Command) String() string {
	if c >= 0 && int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand converts a command name back into a Command
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range commandNames {
		if n == name && Command(i) != NoCommand {
			return Command(i), nil
		}
	}
	return NoCommand, fmt.Errorf("unknown command %q", name)
}

// Settings are the parameters a tick and a frame are run with. They only
// change between ticks, through commands.
type Settings struct {
	Strategy       collision.Strategy
	ShowPartitions bool
}
