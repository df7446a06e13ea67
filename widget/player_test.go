package widget

import (
	"errors"
	"testing"
	"time"

	"github.com/preroll-cli/preroll/engine"
	. "github.com/smartystreets/goconvey/convey"
)

type fixture struct {
	host    *fakeHost
	surface *fakeSurface
	clock   *manualClock
	ad      *engine.Memory
	main    *engine.Memory
	player  *Player
}

func testConfiguration() Configuration {
	cfg := DefaultConfiguration()
	cfg.Mount = "player"
	cfg.Ad.Source = "memory://ad?duration=10"
	cfg.Ad.SkipAfter = 5
	cfg.Main.Source = "memory://feature?duration=120"
	cfg.AutoHideDelay = 3000 * time.Millisecond
	return cfg
}

func newFixture(cfg Configuration) *fixture {
	f := &fixture{
		host:  newFakeHost("player", "sidebar"),
		clock: &manualClock{},
		ad:    engine.NewMemory(10),
		main:  engine.NewMemory(120),
	}
	f.surface = f.host.surfaces["player"]

	p, err := New(f.host, cfg, f.ad, f.main, WithClock(f.clock), WithQueue(NewInlineQueue()))
	So(err, ShouldBeNil)
	f.player = p
	return f
}

func (f *fixture) control(c Control) {
	f.surface.send(ControlInput{Control: c})
}

func (f *fixture) key(k string) {
	f.host.send(KeyInput{Key: k, Focus: "player"})
}

// enterMain plays through the ad by letting it end.
func (f *fixture) enterMain() {
	f.control(ControlPlay)
	f.ad.Advance(10 * time.Second)
	So(f.player.State().Stage, ShouldEqual, StageMain)
}

func TestNew(t *testing.T) {
	Convey("Given a host with a player mount", t, func() {
		host := newFakeHost("player")
		ad, main := engine.NewMemory(10), engine.NewMemory(60)
		cfg := testConfiguration()

		Convey("A missing mount is a configuration error", func() {
			cfg.Mount = ""
			_, err := New(host, cfg, ad, main, WithQueue(NewInlineQueue()))

			var cfgErr *ConfigurationError
			So(errors.As(err, &cfgErr), ShouldBeTrue)
			So(cfgErr.Reason, ShouldContainSubstring, "mount")
		})

		Convey("An unresolvable mount is a configuration error", func() {
			cfg.Mount = "nowhere"
			_, err := New(host, cfg, ad, main, WithQueue(NewInlineQueue()))

			var cfgErr *ConfigurationError
			So(errors.As(err, &cfgErr), ShouldBeTrue)
			So(cfgErr.Mount, ShouldEqual, "nowhere")
		})

		Convey("Negative values are rejected", func() {
			cfg.SkipForward = -1
			_, err := New(host, cfg, ad, main, WithQueue(NewInlineQueue()))
			So(err, ShouldHaveSameTypeAs, &ConfigurationError{})
		})

		Convey("A missing main source is rejected", func() {
			cfg.Main.Source = ""
			_, err := New(host, cfg, ad, main, WithQueue(NewInlineQueue()))
			So(err, ShouldNotBeNil)
		})

		Convey("A valid configuration renders the thumbnail", func() {
			p, err := New(host, cfg, ad, main, WithQueue(NewInlineQueue()), WithClock(&manualClock{}))
			So(err, ShouldBeNil)

			view := p.State()
			So(view.Stage, ShouldEqual, StageThumbnail)
			So(view.Thumbnail, ShouldEqual, cfg.Thumbnail)
			So(view.ControlsVisible, ShouldBeFalse)
			So(view.Elapsed, ShouldEqual, "0:00")
			So(view.SpeedLabel, ShouldEqual, "1x")
			So(view.Quality, ShouldEqual, "Auto")
			So(host.surfaces["player"].renders(), ShouldEqual, 1)

			So(ad.Visible(), ShouldBeFalse)
			So(main.Visible(), ShouldBeFalse)
			So(p.Duration(), ShouldEqual, 0.0)
		})
	})
}

func TestSequencing(t *testing.T) {
	Convey("Given a player with a five second skip threshold", t, func() {
		f := newFixture(testConfiguration())

		Convey("Activating play starts the ad", func() {
			f.control(ControlPlay)

			view := f.player.State()
			So(view.Stage, ShouldEqual, StageAd)
			So(f.ad.Source(), ShouldEqual, "memory://ad?duration=10")
			So(f.ad.Visible(), ShouldBeTrue)
			So(f.ad.Paused(), ShouldBeFalse)
			So(view.Ad.SkipEligible, ShouldBeFalse)
			So(view.Ad.Countdown, ShouldEqual, 5)

			Convey("Skip is inert before the threshold and active from it", func() {
				for second := 1; second <= 5; second++ {
					f.ad.Advance(time.Second)
					view := f.player.State()

					So(view.Ad.Elapsed, ShouldEqual, float64(second))
					So(view.Ad.Remaining, ShouldEqual, float64(10-second))
					So(view.Ad.SkipEligible, ShouldEqual, second >= 5)
					So(view.Ad.Countdown, ShouldEqual, 5-second)

					if second < 5 {
						f.control(ControlSkip)
						So(f.player.State().Stage, ShouldEqual, StageAd)
					}
				}

				Convey("Eligibility survives a backward seek", func() {
					So(f.ad.SetPosition(1), ShouldBeNil)
					So(f.player.State().Ad.SkipEligible, ShouldBeTrue)
				})

				Convey("Skipping enters the main content", func() {
					f.control(ControlSkip)
					So(f.player.State().Stage, ShouldEqual, StageMain)
					So(f.ad.Position(), ShouldEqual, 0.0)
					So(f.ad.Paused(), ShouldBeTrue)
					So(f.ad.Visible(), ShouldBeFalse)
					So(f.main.Paused(), ShouldBeFalse)
				})
			})

			Convey("A fractional position rounds the countdown up", func() {
				f.ad.Advance(1500 * time.Millisecond)
				So(f.player.State().Ad.Countdown, ShouldEqual, 4)
			})

			Convey("The ad ending activates the main content", func() {
				f.ad.Advance(10 * time.Second)

				view := f.player.State()
				So(view.Stage, ShouldEqual, StageMain)
				So(view.Ad, ShouldResemble, AdView{})
				So(f.ad.Position(), ShouldEqual, 0.0)
				So(f.ad.Visible(), ShouldBeFalse)
				So(f.main.Source(), ShouldEqual, "memory://feature?duration=120")
				So(f.main.Visible(), ShouldBeTrue)
				So(f.main.Paused(), ShouldBeFalse)
				So(view.Total, ShouldEqual, "2:00")
				So(view.Paused, ShouldBeFalse)
			})
		})

		Convey("Main events are ignored before the main stage", func() {
			f.control(ControlPlay)
			So(f.main.Load("memory://other?duration=30"), ShouldBeNil)
			So(f.player.State().Total, ShouldEqual, "0:00")
		})

		Convey("Stages never move backwards", func() {
			f.enterMain()

			f.control(ControlPlay)
			f.control(ControlSkip)
			So(f.player.State().Stage, ShouldEqual, StageMain)
			So(f.main.Source(), ShouldEqual, "memory://feature?duration=120")

			Convey("and ad notifications are stale", func() {
				So(f.ad.Play(), ShouldBeNil)
				f.ad.Advance(3 * time.Second)
				f.ad.Advance(10 * time.Second)
				So(f.player.State().Stage, ShouldEqual, StageMain)
				So(f.player.State().Ad, ShouldResemble, AdView{})
			})
		})
	})

	Convey("Given a player without an ad", t, func() {
		cfg := testConfiguration()
		cfg.Ad.Source = ""
		f := newFixture(cfg)

		Convey("Play goes straight to the main content", func() {
			f.player.Play()
			So(f.player.State().Stage, ShouldEqual, StageMain)
			So(f.ad.Source(), ShouldBeEmpty)
			So(f.main.Paused(), ShouldBeFalse)
		})
	})
}

func TestPlayback(t *testing.T) {
	Convey("Given a player in the main stage", t, func() {
		f := newFixture(testConfiguration())
		f.enterMain()

		Convey("Position updates drive the progress", func() {
			f.main.Advance(30 * time.Second)

			view := f.player.State()
			So(view.Progress, ShouldEqual, 25.0)
			So(view.Elapsed, ShouldEqual, "0:30")
			So(f.player.CurrentTime(), ShouldEqual, 30.0)
			So(f.player.Duration(), ShouldEqual, 120.0)
		})

		Convey("SeekTo clamps into the duration", func() {
			f.player.SeekTo(500)
			So(f.main.Position(), ShouldEqual, 120.0)
			So(f.player.State().Progress, ShouldEqual, 100.0)

			f.player.SeekTo(-5)
			So(f.main.Position(), ShouldEqual, 0.0)
		})

		Convey("Seeking by offset stops at both ends", func() {
			f.key("left")
			f.key("left")
			So(f.main.Position(), ShouldEqual, 0.0)

			f.player.SeekTo(115)
			f.control(ControlSeekForward)
			So(f.main.Position(), ShouldEqual, 120.0)
			f.key("right")
			So(f.main.Position(), ShouldEqual, 120.0)

			f.control(ControlSeekBackward)
			So(f.main.Position(), ShouldEqual, 110.0)
		})

		Convey("Clicking the track seeks by fraction", func() {
			f.surface.send(ControlInput{Control: ControlTrack, Value: 0.5})
			So(f.main.Position(), ShouldEqual, 60.0)

			f.surface.send(ControlInput{Control: ControlTrack, Value: 1.7})
			So(f.main.Position(), ShouldEqual, 120.0)
		})

		Convey("Volume is clamped to the unit range", func() {
			f.player.SetVolume(1.5)
			So(f.main.Volume(), ShouldEqual, 1.0)
			So(f.player.State().Volume, ShouldEqual, 100)

			f.player.SetVolume(-0.2)
			So(f.main.Volume(), ShouldEqual, 0.0)
			So(f.player.State().Muted, ShouldBeTrue)

			f.surface.send(ControlInput{Control: ControlVolumeSlider, Value: 35})
			So(f.main.Volume(), ShouldEqual, 0.35)
			So(f.player.State().Volume, ShouldEqual, 35)
		})

		Convey("Arrow keys step the volume", func() {
			f.key("down")
			So(f.main.Volume(), ShouldEqual, 0.9)
			f.key("up")
			f.key("up")
			So(f.main.Volume(), ShouldEqual, 1.0)

			f.player.SetVolume(0.05)
			f.key("down")
			So(f.main.Volume(), ShouldEqual, 0.0)
		})

		Convey("Mute toggles between silence and full volume", func() {
			f.player.SetVolume(0.4)
			f.key("m")
			So(f.main.Volume(), ShouldEqual, 0.0)
			So(f.player.State().Muted, ShouldBeTrue)

			f.control(ControlMute)
			So(f.main.Volume(), ShouldEqual, 1.0)
		})

		Convey("Space and k toggle playback", func() {
			f.key(" ")
			So(f.main.Paused(), ShouldBeTrue)
			So(f.player.State().Paused, ShouldBeTrue)

			f.key("k")
			So(f.main.Paused(), ShouldBeFalse)

			f.control(ControlPlayPause)
			So(f.main.Paused(), ShouldBeTrue)
		})

		Convey("Keys aimed at another mount are ignored", func() {
			f.host.send(KeyInput{Key: "k", Focus: "sidebar"})
			So(f.main.Paused(), ShouldBeFalse)
		})

		Convey("f toggles fullscreen", func() {
			f.key("f")
			So(f.main.Fullscreen(), ShouldBeTrue)
			So(f.player.State().Fullscreen, ShouldBeTrue)
		})

		Convey("Buffering and seeking show the loading indicator", func() {
			f.main.Stall()
			So(f.player.State().Loading, ShouldBeTrue)
			f.main.Resume()
			So(f.player.State().Loading, ShouldBeFalse)
		})

		Convey("The main content ending behaves like a pause", func() {
			f.clock.Advance(3 * time.Second)
			So(f.player.State().ControlsVisible, ShouldBeFalse)

			f.main.Advance(200 * time.Second)
			view := f.player.State()
			So(view.Paused, ShouldBeTrue)
			So(view.ControlsVisible, ShouldBeTrue)
		})

		Convey("Pause and Play reach the main element", func() {
			f.player.Pause()
			So(f.main.Paused(), ShouldBeTrue)
			f.player.Play()
			So(f.main.Paused(), ShouldBeFalse)
		})
	})

	Convey("Before the main stage the playback controls are inert", t, func() {
		f := newFixture(testConfiguration())
		f.control(ControlPlay)

		f.key("m")
		f.control(ControlSeekForward)
		f.player.SeekTo(50)
		So(f.main.Volume(), ShouldEqual, 1.0)
		So(f.main.Position(), ShouldEqual, 0.0)
		So(f.main.Source(), ShouldBeEmpty)
	})
}

func TestSettingsMenu(t *testing.T) {
	Convey("Given a player in the main stage", t, func() {
		f := newFixture(testConfiguration())
		f.enterMain()

		Convey("The settings control toggles the root menu", func() {
			f.control(ControlSettings)
			So(f.player.State().Menu, ShouldEqual, MenuRoot)
			f.control(ControlSettings)
			So(f.player.State().Menu, ShouldEqual, MenuClosed)
		})

		Convey("Opening one submenu closes the other", func() {
			f.control(ControlSettings)
			f.control(ControlSpeedMenu)
			So(f.player.State().Menu, ShouldEqual, MenuSpeed)
			f.control(ControlQualityMenu)
			So(f.player.State().Menu, ShouldEqual, MenuQuality)
		})

		Convey("Selecting a speed applies it and closes the menu", func() {
			f.control(ControlSpeedMenu)
			f.surface.send(ControlInput{Control: ControlSpeedOption, Index: 3})

			view := f.player.State()
			So(f.main.PlaybackRate(), ShouldEqual, 1.25)
			So(view.SpeedLabel, ShouldEqual, "1.25x")
			So(view.Menu, ShouldEqual, MenuClosed)
		})

		Convey("Selecting a quality only changes the label", func() {
			f.control(ControlQualityMenu)
			f.surface.send(ControlInput{Control: ControlQualityOption, Index: 2})

			So(f.player.State().Quality, ShouldEqual, "720p")
			So(f.main.Source(), ShouldEqual, "memory://feature?duration=120")
		})

		Convey("Out of range options are ignored", func() {
			f.control(ControlSpeedMenu)
			f.surface.send(ControlInput{Control: ControlSpeedOption, Index: 9})
			So(f.player.State().Menu, ShouldEqual, MenuSpeed)
			So(f.main.PlaybackRate(), ShouldEqual, 1.0)
		})

		Convey("A click outside the mount closes the menu", func() {
			f.control(ControlSettings)
			f.host.send(PointerInput{Kind: PointerClick, Within: "player"})
			So(f.player.State().Menu, ShouldEqual, MenuRoot)

			f.host.send(PointerInput{Kind: PointerClick, Within: "sidebar"})
			So(f.player.State().Menu, ShouldEqual, MenuClosed)
		})
	})
}

func TestAutoHide(t *testing.T) {
	Convey("Given a playing main stage with a 3000ms delay", t, func() {
		f := newFixture(testConfiguration())
		f.enterMain()
		So(f.player.State().ControlsVisible, ShouldBeTrue)
		So(f.player.vis.Pending(), ShouldBeTrue)

		Convey("The controls hide after exactly the delay", func() {
			f.clock.Advance(2999 * time.Millisecond)
			So(f.player.State().ControlsVisible, ShouldBeTrue)
			f.clock.Advance(time.Millisecond)
			So(f.player.State().ControlsVisible, ShouldBeFalse)
			So(f.player.vis.Pending(), ShouldBeFalse)

			Convey("Pointer movement brings them back and re-arms", func() {
				f.surface.send(PointerInput{Kind: PointerMove, Region: RegionPlayer, Within: "player"})
				So(f.player.State().ControlsVisible, ShouldBeTrue)
				f.clock.Advance(3 * time.Second)
				So(f.player.State().ControlsVisible, ShouldBeFalse)
			})
		})

		Convey("Movement restarts the delay", func() {
			f.clock.Advance(2 * time.Second)
			f.surface.send(PointerInput{Kind: PointerMove, Region: RegionPlayer, Within: "player"})
			f.clock.Advance(2 * time.Second)
			So(f.player.State().ControlsVisible, ShouldBeTrue)
			So(f.clock.Pending(), ShouldEqual, 1)
			f.clock.Advance(time.Second)
			So(f.player.State().ControlsVisible, ShouldBeFalse)
		})

		Convey("Nothing hides while paused", func() {
			f.player.Pause()
			So(f.clock.Pending(), ShouldEqual, 0)
			So(f.player.vis.Pending(), ShouldBeFalse)
			f.clock.Advance(10 * time.Second)
			So(f.player.State().ControlsVisible, ShouldBeTrue)
		})

		Convey("Nothing hides while the settings menu is open", func() {
			f.control(ControlSettings)
			f.clock.Advance(10 * time.Second)
			So(f.player.State().ControlsVisible, ShouldBeTrue)

			Convey("Closing the menu re-arms", func() {
				f.control(ControlSettings)
				f.clock.Advance(3 * time.Second)
				So(f.player.State().ControlsVisible, ShouldBeFalse)
			})
		})

		Convey("Nothing hides while the pointer is over the controls", func() {
			f.surface.send(PointerInput{Kind: PointerMove, Region: RegionControls, Within: "player"})
			So(f.player.vis.Pending(), ShouldBeFalse)
			f.clock.Advance(10 * time.Second)
			So(f.player.State().ControlsVisible, ShouldBeTrue)
		})

		Convey("Leaving the player hides at once", func() {
			f.surface.send(PointerInput{Kind: PointerLeave})
			So(f.player.State().ControlsVisible, ShouldBeFalse)
			So(f.clock.Pending(), ShouldEqual, 0)
		})

		Convey("Leaving with the menu open keeps the controls", func() {
			f.control(ControlSettings)
			f.surface.send(PointerInput{Kind: PointerLeave})
			So(f.player.State().ControlsVisible, ShouldBeTrue)
		})
	})
}

func TestDestroy(t *testing.T) {
	Convey("Given a playing player", t, func() {
		f := newFixture(testConfiguration())
		f.enterMain()
		renders := f.surface.renders()

		Convey("Destroy releases everything it owns", func() {
			f.player.Destroy()

			So(f.clock.Pending(), ShouldEqual, 0)
			So(f.main.Subscribers(), ShouldEqual, 0)
			So(f.ad.Subscribers(), ShouldEqual, 0)
			So(f.surface.count(), ShouldEqual, 0)
			So(f.host.count(), ShouldEqual, 0)
			So(f.main.Play(), ShouldEqual, engine.ErrClosed)

			Convey("and is idempotent", func() {
				So(func() { f.player.Destroy() }, ShouldNotPanic)
			})

			Convey("and later calls are ignored", func() {
				f.player.SeekTo(30)
				f.clock.Advance(time.Minute)
				So(f.surface.renders(), ShouldEqual, renders)
			})
		})
	})
}

func TestLoopPlayer(t *testing.T) {
	Convey("Given a player on its own loop", t, func() {
		host := newFakeHost("player")
		ad, main := engine.NewMemory(10), engine.NewMemory(120)
		cfg := testConfiguration()
		cfg.Ad.SkipAfter = 0

		p, err := New(host, cfg, ad, main, WithClock(&manualClock{}))
		So(err, ShouldBeNil)
		Reset(p.Destroy)

		Convey("State is ready as soon as New returns", func() {
			view := p.State()
			So(view.Mount, ShouldEqual, "player")
			So(view.Stage, ShouldEqual, StageThumbnail)
			So(view.Volume, ShouldEqual, 100)
		})

		Convey("Sync waits for queued input and what it caused", func() {
			surface := host.surfaces["player"]
			surface.send(ControlInput{Control: ControlPlay})
			surface.send(ControlInput{Control: ControlSkip})
			p.SetVolume(0.4)
			p.Sync()

			view := p.State()
			So(view.Stage, ShouldEqual, StageMain)
			So(view.Volume, ShouldEqual, 40)
			So(view.Paused, ShouldBeFalse)
		})

		Convey("Sync returns once the player is destroyed", func() {
			p.Destroy()
			done := make(chan struct{})
			go func() {
				p.Sync()
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				So("sync stalled", ShouldBeEmpty)
			}
		})
	})
}
