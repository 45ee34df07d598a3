// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-particles/pkg/engine"
)

// binding ties a command to the keys that trigger it. The command name is
// used as the engo button name.
type binding struct {
	command engine.Command
	keys    []engo.Key
}

var bindings = []binding{
	{engine.ToggleStrategy, []engo.Key{engo.KeySpace}},
	{engine.TogglePartitions, []engo.Key{engo.KeyQ}},
	{engine.IncreaseCount, []engo.Key{engo.KeyArrowUp}},
	{engine.DecreaseCount, []engo.Key{engo.KeyArrowDown}},
	{engine.Reset, []engo.Key{engo.KeyR}},
	{engine.Quit, []engo.Key{engo.KeyEscape}},
}

// SetupInputBindings registers a button for every command
func SetupInputBindings() {
	for _, b := range bindings {
		engo.Input.RegisterButton(b.command.String(), b.keys...)
	}
}

// Input reports the commands whose keys were pressed since the last frame
type Input struct {
	justPressed func(button string) bool
}

// NewInput creates an Input. A nil justPressed reads engo.Input.
func NewInput(justPressed func(button string) bool) *Input {
	if justPressed == nil {
		justPressed = func(button string) bool {
			return engo.Input.Button(button).JustPressed()
		}
	}
	return &Input{justPressed: justPressed}
}

// Commands returns the pressed commands in binding order
func (in *Input) Commands() []engine.Command {
	var cmds []engine.Command
	for _, b := range bindings {
		if in.justPressed(b.command.String()) {
			cmds = append(cmds, b.command)
		}
	}
	return cmds
}
