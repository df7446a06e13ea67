package inline

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/preroll-cli/preroll/engine"
	"github.com/preroll-cli/preroll/widget"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func options(script string) (*Options, *bytes.Buffer) {
	cfg := widget.DefaultConfiguration()
	cfg.Mount = "player"
	cfg.Ad.Source = "memory://ad?duration=10"
	cfg.Ad.SkipAfter = 0
	cfg.Main.Source = "memory://feature?duration=120"

	var out bytes.Buffer
	return &Options{
		In:            strings.NewReader(script),
		Out:           &out,
		Configuration: cfg,
		Ad:            engine.NewMemory(10),
		Main:          engine.NewMemory(120),
		Json:          true,
		Queue:         mo.Some[widget.Queue](widget.NewInlineQueue()),
	}, &out
}

func outputs(out *bytes.Buffer) []Output {
	var result []Output
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var o Output
		So(json.Unmarshal(scanner.Bytes(), &o), ShouldBeNil)
		result = append(result, o)
	}
	return result
}

func TestRun(t *testing.T) {
	Convey("Given a scripted session", t, func() {
		Convey("Each distinct view is written as a JSON line", func() {
			opts, out := options("start\nskip\nvolume 40\nspeed 1.5\nquality 720p\nquit\nstart\n")
			So(Run(opts), ShouldBeNil)

			lines := outputs(out)
			So(len(lines), ShouldBeGreaterThan, 2)
			So(lines[0].View.Stage, ShouldEqual, widget.StageThumbnail)

			last := lines[len(lines)-1].View
			So(last.Stage, ShouldEqual, widget.StageMain)
			So(last.Volume, ShouldEqual, 40)
			So(last.SpeedLabel, ShouldEqual, "1.5x")
			So(last.Quality, ShouldEqual, "720p")
		})

		Convey("The default queue has settled by the time state is printed", func() {
			opts, out := options("start\nskip\nvolume 40\nstate\n")
			opts.Queue = mo.None[widget.Queue]()
			So(Run(opts), ShouldBeNil)

			lines := outputs(out)
			So(len(lines), ShouldBeGreaterThan, 0)

			last := lines[len(lines)-1].View
			So(last.Mount, ShouldEqual, "player")
			So(last.Stage, ShouldEqual, widget.StageMain)
			So(last.Volume, ShouldEqual, 40)
		})

		Convey("Stages are written as names", func() {
			opts, out := options("state\n")
			So(Run(opts), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, `"stage":"thumbnail"`)
			So(out.String(), ShouldContainSubstring, `"menu":"closed"`)
		})

		Convey("Bad commands are reported and skipped", func() {
			opts, out := options("bogus\nstart\n")
			So(Run(opts), ShouldBeNil)

			lines := outputs(out)
			So(lines[1].Error, ShouldEqual, "unknown command: bogus")
			So(lines[len(lines)-1].View.Stage, ShouldEqual, widget.StageAd)
		})

		Convey("The player is destroyed when input ends", func() {
			opts, _ := options("start\n")
			So(Run(opts), ShouldBeNil)
			So(opts.Main.(*engine.Memory).Subscribers(), ShouldEqual, 0)
			So(opts.Ad.Play(), ShouldEqual, engine.ErrClosed)
		})

		Convey("A configuration error is returned", func() {
			opts, _ := options("")
			opts.Configuration.Mount = ""
			So(Run(opts), ShouldNotBeNil)
		})

		Convey("Text mode writes one summary per view", func() {
			opts, out := options("start\nskip\n")
			opts.Json = false
			So(Run(opts), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "[thumbnail] Big Buck Bunny")
			So(out.String(), ShouldContainSubstring, "[main] playing 0:00 / 2:00")
		})
	})
}

func TestParseCommand(t *testing.T) {
	Convey("ParseCommand", t, func() {
		Convey("Controls become control input", func() {
			cmd, err := ParseCommand("skip", "player")
			So(err, ShouldBeNil)
			So(cmd.Input.MustGet(), ShouldResemble, widget.ControlInput{Control: widget.ControlSkip})
		})

		Convey("Keys are focused on the mount", func() {
			cmd, err := ParseCommand("key space", "player")
			So(err, ShouldBeNil)
			So(cmd.Input.MustGet(), ShouldResemble, widget.KeyInput{Key: " ", Focus: "player"})
		})

		Convey("Speeds and qualities resolve to option indexes", func() {
			cmd, err := ParseCommand("speed 1.25", "player")
			So(err, ShouldBeNil)
			So(cmd.Input.MustGet(), ShouldResemble, widget.ControlInput{Control: widget.ControlSpeedOption, Index: 3})

			cmd, err = ParseCommand("quality 1080P", "player")
			So(err, ShouldBeNil)
			So(cmd.Input.MustGet(), ShouldResemble, widget.ControlInput{Control: widget.ControlQualityOption, Index: 1})

			_, err = ParseCommand("speed 3", "player")
			So(err, ShouldNotBeNil)
		})

		Convey("Pointer commands carry their region", func() {
			cmd, err := ParseCommand("move controls", "player")
			So(err, ShouldBeNil)
			So(cmd.Input.MustGet(), ShouldResemble, widget.PointerInput{Kind: widget.PointerMove, Region: widget.RegionControls, Within: "player"})

			cmd, err = ParseCommand("click sidebar", "player")
			So(err, ShouldBeNil)
			So(cmd.Input.MustGet(), ShouldResemble, widget.PointerInput{Kind: widget.PointerClick, Within: "sidebar"})
		})

		Convey("API commands carry a call", func() {
			cmd, err := ParseCommand("seek 42", "player")
			So(err, ShouldBeNil)
			So(cmd.Call.IsPresent(), ShouldBeTrue)
			So(cmd.Input.IsPresent(), ShouldBeFalse)
		})

		Convey("wait parses a duration", func() {
			cmd, err := ParseCommand("wait 1.5s", "player")
			So(err, ShouldBeNil)
			So(cmd.Wait.Seconds(), ShouldEqual, 1.5)
		})

		Convey("Malformed commands are rejected", func() {
			for _, line := range []string{"", "seek", "seek soon", "volume 1 2", "move around", "wait forever", "dance"} {
				_, err := ParseCommand(line, "player")
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("Schema names the stage values", t, func() {
		data, err := json.Marshal(Schema())
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, `"thumbnail"`)
		So(string(data), ShouldContainSubstring, `"quality"`)
	})
}

func TestHost(t *testing.T) {
	Convey("Given a host", t, func() {
		var rendered []widget.View
		host := NewHost("player", func(v widget.View) { rendered = append(rendered, v) })

		Convey("Only its own mount resolves", func() {
			_, ok := host.Resolve("player")
			So(ok, ShouldBeTrue)
			_, ok = host.Resolve("other")
			So(ok, ShouldBeFalse)
		})

		Convey("Keys and clicks reach document listeners, the rest the surface", func() {
			surface, _ := host.Resolve("player")
			var doc, local []widget.Input
			cancelDoc := host.Listen(func(in widget.Input) { doc = append(doc, in) })
			cancelLocal := surface.Listen(func(in widget.Input) { local = append(local, in) })
			So(host.Listeners(), ShouldEqual, 2)

			host.Dispatch(widget.KeyInput{Key: "k", Focus: "player"})
			host.Dispatch(widget.PointerInput{Kind: widget.PointerClick})
			host.Dispatch(widget.PointerInput{Kind: widget.PointerLeave})
			host.Dispatch(widget.ControlInput{Control: widget.ControlMute})

			So(len(doc), ShouldEqual, 2)
			So(len(local), ShouldEqual, 2)

			cancelDoc()
			cancelLocal()
			So(host.Listeners(), ShouldEqual, 0)
		})
	})
}
