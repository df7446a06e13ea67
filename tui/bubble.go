package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/preroll-cli/preroll/style"
	"github.com/preroll-cli/preroll/util"
	"github.com/preroll-cli/preroll/widget"
)

// zone is a clickable span on one rendered line, in content coordinates.
type zone struct {
	row, x0, x1 int
	input       widget.ControlInput

	// Slider zones carry the horizontal fraction of the click, times scale, in Value.
	scale float64
	// cells makes a click select every cell up to and including the one clicked.
	cells bool
}

func (z zone) contains(x, y int) bool {
	return y == z.row && x >= z.x0 && x < z.x1
}

// fraction maps x onto the zone. A track runs from 0 at its first cell to 1 at its last.
func (z zone) fraction(x int) float64 {
	if z.cells {
		return float64(x-z.x0+1) / float64(util.Max(z.x1-z.x0, 1))
	}
	return float64(x-z.x0) / float64(util.Max(z.x1-z.x0-1, 1))
}

// layout records where the last frame placed the player and its controls.
type layout struct {
	player, controls [2]int
	zones            []zone
}

func (l layout) region(y int) widget.Region {
	switch {
	case y >= l.controls[0] && y < l.controls[1]:
		return widget.RegionControls
	case y >= l.player[0] && y < l.player[1]:
		return widget.RegionPlayer
	default:
		return widget.RegionOutside
	}
}

func (l layout) hit(x, y int) (zone, bool) {
	for _, z := range l.zones {
		if z.contains(x, y) {
			return z, true
		}
	}
	return zone{}, false
}

// statefulBubble mirrors the player's last view and translates terminal input into player input.
type statefulBubble struct {
	host   *host
	player *widget.Player
	view   widget.View

	keymap *statefulKeymap

	spinnerC  spinner.Model
	progressC progress.Model
	adC       progress.Model
	helpC     help.Model

	notifier *notifier

	layout  layout
	hovered bool

	width, height int
}

// resize propagates terminal dimension changes to the child components.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.progressC.Width = b.width
	b.adC.Width = b.width
	b.helpC.Width = b.width
}

// setView adopts a freshly rendered view.
func (b *statefulBubble) setView(v widget.View) {
	if b.view.Stage == v.Stage && v.Stage == widget.StageMain {
		if b.view.SpeedLabel != v.SpeedLabel {
			b.notifier.notify("Speed " + v.SpeedLabel)
		} else if b.view.Quality != v.Quality {
			b.notifier.notify("Quality " + v.Quality)
		}
	}

	b.view = v
	b.keymap.setState(v.Stage, v.Menu)
}

func newBubble(h *host, player *widget.Player) *statefulBubble {
	bubble := &statefulBubble{
		host:     h,
		player:   player,
		view:     player.State(),
		keymap:   newStatefulKeymap(),
		notifier: &notifier{},
	}
	bubble.keymap.setState(bubble.view.Stage, bubble.view.Menu)

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bubble.adC = progress.New(progress.WithSolidFill(string(style.AccentColor)), progress.WithoutPercentage())

	if width, height, err := util.TerminalSize(); err == nil {
		bubble.resize(width, height)
	} else {
		bubble.resize(80, 24)
	}

	return bubble
}
