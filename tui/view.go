package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/preroll-cli/preroll/icon"
	"github.com/preroll-cli/preroll/style"
	"github.com/preroll-cli/preroll/util"
	"github.com/preroll-cli/preroll/widget"
	"github.com/samber/mo"
)

const volumeCells = 10

var (
	paddingStyle = lipgloss.NewStyle().Padding(1, 2)

	buttonStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(style.Text).Background(style.Surface)
	activeButtonStyle = buttonStyle.Foreground(style.Base).Background(style.AccentColor)

	adTag = style.Tag(style.Base, style.Yellow)
)

// item is one segment of a control row. Segments with an input become clickable zones.
type item struct {
	text  string
	input mo.Option[widget.ControlInput]
	scale float64
	cells bool
}

func text(s string) item {
	return item{text: s}
}

func button(label string, control widget.Control, active bool) item {
	st := buttonStyle
	if active {
		st = activeButtonStyle
	}
	return item{text: st.Render(label), input: mo.Some(widget.ControlInput{Control: control})}
}

// frame accumulates output lines along with the zones they define.
type frame struct {
	lines  []string
	layout layout
}

func (f *frame) row() int {
	return len(f.lines)
}

func (f *frame) add(lines ...string) {
	for _, line := range lines {
		f.lines = append(f.lines, strings.Split(line, "\n")...)
	}
}

// items lays segments out on one line separated by single spaces.
func (f *frame) items(items ...item) {
	row := f.row()
	texts := make([]string, 0, len(items))

	x := 0
	for i, it := range items {
		if i > 0 {
			x++
		}
		w := lipgloss.Width(it.text)
		if in, ok := it.input.Get(); ok {
			f.layout.zones = append(f.layout.zones, zone{row: row, x0: x, x1: x + w, input: in, scale: it.scale, cells: it.cells})
		}
		x += w
		texts = append(texts, it.text)
	}

	f.add(strings.Join(texts, " "))
}

func (b *statefulBubble) wrap(s string) string {
	return wrap.String(s, util.Max(b.width, 10))
}

func (b *statefulBubble) truncate(s string) string {
	return truncate.StringWithTail(s, uint(util.Max(b.width, 10)), "…")
}

func (b *statefulBubble) View() string {
	v := b.view
	f := &frame{}

	if v.SectionTitle != "" {
		f.add(style.Title(v.SectionTitle))
		if v.SectionDescription != "" {
			f.add(b.wrap(v.SectionDescription))
		}
		f.add("")
	}

	start := f.row()
	switch v.Stage {
	case widget.StageThumbnail:
		b.viewThumbnail(f)
	case widget.StageAd:
		b.viewAd(f)
	case widget.StageMain:
		b.viewMain(f)
	}
	f.layout.player = [2]int{start, f.row()}

	if v.Caption != "" {
		f.add("", style.Faint(b.wrap(v.Caption)))
	}

	f.add("", b.helpC.View(b.keymap))

	b.layout = f.layout
	return b.notifier.view(paddingStyle.Render(strings.Join(f.lines, "\n")))
}

func (b *statefulBubble) viewThumbnail(f *frame) {
	v := b.view

	f.add(style.Bold(b.truncate(v.Title)))
	if v.Description != "" {
		f.add(style.Faint(b.wrap(v.Description)))
	}
	if v.Thumbnail != "" {
		f.add("", style.Faint(b.truncate("Poster: "+v.Thumbnail)))
	}

	f.add("")
	f.items(button(icon.Get(icon.Play)+" Play", widget.ControlPlay, true))
}

func (b *statefulBubble) viewAd(f *frame) {
	ad := b.view.Ad

	f.add(adTag("Ad") + " " + style.Faint("Your video will play after this ad"))

	var fraction float64
	if total := ad.Elapsed + ad.Remaining; total > 0 {
		fraction = ad.Elapsed / total
	}
	f.add("", b.adC.ViewAs(util.Clamp(fraction, 0, 1)))

	if ad.SkipEligible {
		f.items(button(icon.Get(icon.Skip)+" Skip Ad", widget.ControlSkip, true))
		return
	}
	f.add(style.Faint(fmt.Sprintf("You can skip this ad in %s", util.Quantify(ad.Countdown, "second", "seconds"))))
}

func (b *statefulBubble) viewMain(f *frame) {
	v := b.view

	f.add(style.Bold(b.truncate(v.Title)))

	switch {
	case v.Loading:
		f.add(b.spinnerC.View() + " Buffering")
	case v.Paused:
		f.add(style.Faint(icon.Get(icon.Pause) + " Paused"))
	default:
		f.add(style.Faint(icon.Get(icon.Play) + " Playing"))
	}

	if !v.ControlsVisible {
		f.add("", style.Faint("Move the pointer here to show controls"))
		return
	}

	start := f.row()

	f.add("")
	trackRow := f.row()
	f.add(b.progressC.ViewAs(util.Clamp(v.Progress/100, 0, 1)))
	f.layout.zones = append(f.layout.zones, zone{
		row:   trackRow,
		x1:    b.progressC.Width,
		input: widget.ControlInput{Control: widget.ControlTrack},
		scale: 1,
	})

	playback := icon.Get(icon.Pause)
	if v.Paused {
		playback = icon.Get(icon.Play)
	}

	volume := icon.Get(icon.Volume)
	if v.Muted {
		volume = icon.Get(icon.Muted)
	}

	filled := v.Volume * volumeCells / 100
	slider := strings.Repeat("■", filled) + strings.Repeat("□", volumeCells-filled)

	f.items(
		button(playback, widget.ControlPlayPause, false),
		button(icon.Get(icon.SeekBackward), widget.ControlSeekBackward, false),
		button(icon.Get(icon.SeekForward), widget.ControlSeekForward, false),
		text(v.Elapsed+" / "+v.Total),
		button(volume, widget.ControlMute, v.Muted),
		item{
			text:  slider,
			input: mo.Some(widget.ControlInput{Control: widget.ControlVolumeSlider}),
			scale: 100,
			cells: true,
		},
		button(icon.Get(icon.Fullscreen), widget.ControlFullscreen, v.Fullscreen),
		button(icon.Get(icon.Settings)+" "+v.SpeedLabel, widget.ControlSettings, v.Menu != widget.MenuClosed),
	)

	b.viewMenu(f)

	f.layout.controls = [2]int{start, f.row()}
}

func (b *statefulBubble) viewMenu(f *frame) {
	v := b.view

	option := func(n int, label string, selected bool, in widget.ControlInput) {
		marker := "  "
		if selected {
			marker = style.Fg(style.AccentColor)("● ")
		}
		f.items(item{
			text:  fmt.Sprintf("%s%d %s", marker, n, label),
			input: mo.Some(in),
		})
	}

	switch v.Menu {
	case widget.MenuRoot:
		f.add("")
		option(1, "Speed    "+v.SpeedLabel, false, widget.ControlInput{Control: widget.ControlSpeedMenu})
		option(2, "Quality  "+v.Quality, false, widget.ControlInput{Control: widget.ControlQualityMenu})
	case widget.MenuSpeed:
		f.add("", style.Faint("Speed"))
		for i, rate := range widget.Speeds {
			option(i+1, widget.SpeedLabel(rate), rate == v.Speed, widget.ControlInput{Control: widget.ControlSpeedOption, Index: i})
		}
	case widget.MenuQuality:
		f.add("", style.Faint("Quality"))
		for i, quality := range widget.Qualities {
			option(i+1, quality, quality == v.Quality, widget.ControlInput{Control: widget.ControlQualityOption, Index: i})
		}
	}
}
