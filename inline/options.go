// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/preroll-cli/preroll/engine"
	"github.com/preroll-cli/preroll/widget"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type Options struct {
	In  io.Reader
	Out io.Writer

	Configuration widget.Configuration
	Ad, Main      engine.Element

	// Json switches the output from one summary line per view to one JSON object per view.
	Json bool

	// Queue overrides the player's event queue.
	Queue mo.Option[widget.Queue]

	// Tick drives simulated elements; it is ignored for elements that play on their own.
	Tick time.Duration
}

// Command is one parsed input line.
type Command struct {
	Name string

	// Input is delivered through the host, as a page would deliver it.
	Input mo.Option[widget.Input]

	// Call invokes the player's public API directly.
	Call mo.Option[func(*widget.Player)]

	Wait  time.Duration
	Print bool
	Quit  bool
}

// Commands lists every verb ParseCommand accepts, for help output.
var Commands = []string{
	"start", "skip", "play", "pause", "toggle",
	"seek <seconds>", "forward", "back", "track <fraction>",
	"volume <0-100>", "mute", "fullscreen",
	"settings", "speed <rate>", "quality <label>",
	"key <name>", "move <player|controls>", "leave", "click [mount]",
	"wait <duration>", "state", "quit",
}

// ParseCommand turns a line such as "seek 42" into a command aimed at mount.
func ParseCommand(line, mount string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	cmd := Command{Name: name}

	control := func(c widget.Control) (Command, error) {
		cmd.Input = mo.Some[widget.Input](widget.ControlInput{Control: c})
		return cmd, nil
	}

	arg := func() (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("%s expects exactly one argument", name)
		}
		return args[0], nil
	}

	number := func() (float64, error) {
		raw, err := arg()
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: invalid number %q", name, raw)
		}
		return v, nil
	}

	switch name {
	case "start":
		return control(widget.ControlPlay)
	case "skip":
		return control(widget.ControlSkip)
	case "toggle":
		return control(widget.ControlPlayPause)
	case "forward":
		return control(widget.ControlSeekForward)
	case "back":
		return control(widget.ControlSeekBackward)
	case "mute":
		return control(widget.ControlMute)
	case "fullscreen":
		return control(widget.ControlFullscreen)
	case "settings":
		return control(widget.ControlSettings)
	case "play":
		cmd.Call = mo.Some(func(p *widget.Player) { p.Play() })
		return cmd, nil
	case "pause":
		cmd.Call = mo.Some(func(p *widget.Player) { p.Pause() })
		return cmd, nil
	case "seek":
		seconds, err := number()
		if err != nil {
			return Command{}, err
		}
		cmd.Call = mo.Some(func(p *widget.Player) { p.SeekTo(seconds) })
		return cmd, nil
	case "track":
		fraction, err := number()
		if err != nil {
			return Command{}, err
		}
		cmd.Input = mo.Some[widget.Input](widget.ControlInput{Control: widget.ControlTrack, Value: fraction})
		return cmd, nil
	case "volume":
		level, err := number()
		if err != nil {
			return Command{}, err
		}
		cmd.Input = mo.Some[widget.Input](widget.ControlInput{Control: widget.ControlVolumeSlider, Value: level})
		return cmd, nil
	case "speed":
		rate, err := number()
		if err != nil {
			return Command{}, err
		}
		index := lo.IndexOf(widget.Speeds, rate)
		if index < 0 {
			return Command{}, fmt.Errorf("speed: %v is not one of %v", rate, widget.Speeds)
		}
		cmd.Input = mo.Some[widget.Input](widget.ControlInput{Control: widget.ControlSpeedOption, Index: index})
		return cmd, nil
	case "quality":
		label, err := arg()
		if err != nil {
			return Command{}, err
		}
		index := lo.IndexOf(lo.Map(widget.Qualities, func(q string, _ int) string {
			return strings.ToLower(q)
		}), strings.ToLower(label))
		if index < 0 {
			return Command{}, fmt.Errorf("quality: %q is not one of %v", label, widget.Qualities)
		}
		cmd.Input = mo.Some[widget.Input](widget.ControlInput{Control: widget.ControlQualityOption, Index: index})
		return cmd, nil
	case "key":
		k, err := arg()
		if err != nil {
			return Command{}, err
		}
		if k == "space" {
			k = " "
		}
		cmd.Input = mo.Some[widget.Input](widget.KeyInput{Key: k, Focus: mount})
		return cmd, nil
	case "move":
		where, err := arg()
		if err != nil {
			return Command{}, err
		}
		var region widget.Region
		switch where {
		case "player":
			region = widget.RegionPlayer
		case "controls":
			region = widget.RegionControls
		default:
			return Command{}, fmt.Errorf("move: unknown region %q", where)
		}
		cmd.Input = mo.Some[widget.Input](widget.PointerInput{Kind: widget.PointerMove, Region: region, Within: mount})
		return cmd, nil
	case "leave":
		cmd.Input = mo.Some[widget.Input](widget.PointerInput{Kind: widget.PointerLeave})
		return cmd, nil
	case "click":
		within := ""
		if len(args) > 0 {
			within = args[0]
		}
		cmd.Input = mo.Some[widget.Input](widget.PointerInput{Kind: widget.PointerClick, Within: within})
		return cmd, nil
	case "wait":
		raw, err := arg()
		if err != nil {
			return Command{}, err
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Command{}, fmt.Errorf("wait: %w", err)
		}
		cmd.Wait = d
		return cmd, nil
	case "state":
		cmd.Print = true
		return cmd, nil
	case "quit", "exit":
		cmd.Quit = true
		return cmd, nil
	default:
		return Command{}, fmt.Errorf("unknown command: %s", name)
	}
}
