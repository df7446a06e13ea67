package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/preroll-cli/preroll/util"
	"github.com/preroll-cli/preroll/widget"
)

type viewMsg widget.View

func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.waitForView())
}

// waitForView blocks until the player renders again or the host shuts down.
func (b *statefulBubble) waitForView() tea.Cmd {
	return func() tea.Msg {
		select {
		case v := <-b.host.surface.views:
			return viewMsg(v)
		case <-b.host.done:
			return nil
		}
	}
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case viewMsg:
		b.setView(widget.View(msg))
		return b, tea.Batch(b.waitForView(), b.notifier.cmd())
	case clearNotificationMsg:
		b.notifier.update(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit), bubblesKey.Matches(msg, b.keymap.quit):
			b.host.close()
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
			return b, nil
		}

		if in, ok := b.keyInput(msg); ok {
			b.host.dispatch(in)
		}
	case tea.MouseMsg:
		for _, in := range b.mouseInput(msg) {
			b.host.dispatch(in)
		}
	}

	return b, nil
}

// keyInput translates a key press for the current stage and menu.
func (b *statefulBubble) keyInput(msg tea.KeyMsg) (widget.Input, bool) {
	control := func(c widget.Control, index int) (widget.Input, bool) {
		return widget.ControlInput{Control: c, Index: index}, true
	}

	switch b.view.Stage {
	case widget.StageThumbnail:
		if bubblesKey.Matches(msg, b.keymap.start) {
			return control(widget.ControlPlay, 0)
		}
		return nil, false
	case widget.StageAd:
		if bubblesKey.Matches(msg, b.keymap.skip) {
			return control(widget.ControlSkip, 0)
		}
		return nil, false
	}

	if b.view.Menu != widget.MenuClosed {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			return control(widget.ControlSettings, 0)
		case bubblesKey.Matches(msg, b.keymap.option):
			index := int(msg.String()[0] - '1')
			switch b.view.Menu {
			case widget.MenuRoot:
				switch index {
				case 0:
					return control(widget.ControlSpeedMenu, 0)
				case 1:
					return control(widget.ControlQualityMenu, 0)
				}
				return nil, false
			case widget.MenuSpeed:
				return control(widget.ControlSpeedOption, index)
			case widget.MenuQuality:
				return control(widget.ControlQualityOption, index)
			}
		}
	}

	if bubblesKey.Matches(msg, b.keymap.settings) {
		return control(widget.ControlSettings, 0)
	}

	if k := msg.String(); widget.IsShortcut(k) {
		return widget.KeyInput{Key: k, Focus: b.view.Mount}, true
	}

	return nil, false
}

// mouseInput maps terminal coordinates onto the regions and controls of the last frame.
func (b *statefulBubble) mouseInput(msg tea.MouseMsg) []widget.Input {
	x := msg.X - paddingStyle.GetPaddingLeft()
	y := msg.Y - paddingStyle.GetPaddingTop()
	region := b.layout.region(y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if region == widget.RegionOutside {
			if !b.hovered {
				return nil
			}
			b.hovered = false
			return []widget.Input{widget.PointerInput{Kind: widget.PointerLeave}}
		}

		b.hovered = true
		return []widget.Input{widget.PointerInput{Kind: widget.PointerMove, Region: region, Within: b.view.Mount}}
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}

		within := ""
		if region != widget.RegionOutside {
			within = b.view.Mount
		}
		inputs := []widget.Input{widget.PointerInput{Kind: widget.PointerClick, Region: region, Within: within}}

		if z, ok := b.layout.hit(x, y); ok {
			in := z.input
			if z.scale > 0 {
				in.Value = util.Clamp(z.fraction(x), 0, 1) * z.scale
			}
			inputs = append(inputs, in)
		}
		return inputs
	}

	return nil
}
