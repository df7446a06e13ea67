package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/preroll-cli/preroll/color"
	"github.com/preroll-cli/preroll/style"
	"github.com/preroll-cli/preroll/widget"
)

// statefulKeymap defines the keyboard interactions available for the current stage and menu.
type statefulKeymap struct {
	stage widget.Stage
	menu  widget.Menu

	quit, forceQuit,
	start, skip,
	playPause, seek, volume, mute, fullscreen,
	settings, option, back,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(stage widget.Stage, menu widget.Menu) {
	k.stage = stage
	k.menu = menu
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("play")),
		),
		skip: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("enter", "skip ad"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" ", "k"),
			key.WithHelp("space", "pause/resume"),
		),
		seek: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "seek"),
		),
		volume: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "volume"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		option: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "select"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	switch k.stage {
	case widget.StageThumbnail:
		return h(k.start, k.quit), h(k.start, k.showHelp, k.quit)
	case widget.StageAd:
		return h(k.skip, k.quit), h(k.skip, k.showHelp, k.quit)
	}

	if k.menu != widget.MenuClosed {
		return h(k.option, k.back), h(k.option, k.back, k.settings, k.quit)
	}

	return h(k.playPause, k.seek, k.volume, k.settings, k.quit),
		h(k.playPause, k.seek, k.volume, k.mute, k.fullscreen, k.settings, k.showHelp, k.quit)
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
