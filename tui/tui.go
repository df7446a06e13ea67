// Package tui hosts a player in the terminal: views are drawn with bubbletea and keys and mouse
// events are fed back to the player as host input.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/preroll-cli/preroll/engine"
	"github.com/preroll-cli/preroll/widget"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Configuration widget.Configuration
	Ad, Main      engine.Element

	// Tick drives simulated elements.
	Tick time.Duration
}

// Run attaches a player to the terminal and blocks until the user quits.
func Run(options *Options) error {
	h := newHost(options.Configuration.Mount)
	defer h.close()

	player, err := widget.New(h, options.Configuration, options.Ad, options.Main)
	if err != nil {
		return err
	}
	defer player.Destroy()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if options.Tick > 0 {
		for _, el := range []engine.Element{options.Ad, options.Main} {
			if runner, ok := el.(engine.Runner); ok {
				go runner.Run(ctx, options.Tick)
			}
		}
	}

	bubble := newBubble(h, player)
	_, err = tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
