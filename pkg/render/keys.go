package render

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-particles/pkg/engine"
)

// CommandForKey maps a terminal key to a simulation command
func CommandForKey(key tcell.Key, ch rune) engine.Command {
	switch key {
	case tcell.KeyUp:
		return engine.IncreaseCount
	case tcell.KeyDown:
		return engine.DecreaseCount
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return engine.Quit
	case tcell.KeyRune:
		switch unicode.ToLower(ch) {
		case ' ':
			return engine.ToggleStrategy
		case 'q':
			return engine.TogglePartitions
		case 'r':
			return engine.Reset
		case '+':
			return engine.IncreaseCount
		case '-':
			return engine.DecreaseCount
		}
	}
	return engine.NoCommand
}

// CommandFor maps a terminal event to a simulation command. Anything but a
// key press maps to NoCommand.
func CommandFor(ev tcell.Event) engine.Command {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return engine.NoCommand
	}
	return CommandForKey(key.Key(), key.Rune())
}

// ListenKeys polls screen events and forwards the commands they map to.
// It returns when the screen is finalised, or when done is closed while a
// command is waiting to be delivered.
func ListenKeys(screen tcell.Screen, commands chan<- engine.Command, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}

		cmd := CommandFor(ev)
		if cmd == engine.NoCommand {
			continue
		}

		select {
		case commands <- cmd:
		case <-done:
			return
		}
	}
}
