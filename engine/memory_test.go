package engine

import (
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func record(el Element) (*[]Kind, func()) {
	kinds := &[]Kind{}
	cancel := el.Subscribe(func(ev Event) {
		*kinds = append(*kinds, ev.Kind)
	})
	return kinds, cancel
}

func TestMemory(t *testing.T) {
	Convey("Given a memory element", t, func() {
		m := NewMemory(30)
		kinds, cancel := record(m)

		Convey("Duration is unknown before the first load", func() {
			So(math.IsNaN(m.Duration()), ShouldBeTrue)
			So(m.Play(), ShouldNotBeNil)
		})

		Convey("Load reads the duration query parameter", func() {
			So(m.Load("memory://ad?duration=15"), ShouldBeNil)
			So(m.Duration(), ShouldEqual, 15.0)
			So(*kinds, ShouldResemble, []Kind{MetadataLoaded})
		})

		Convey("Load falls back to the default duration", func() {
			So(m.Load("memory://feature"), ShouldBeNil)
			So(m.Duration(), ShouldEqual, 30.0)
		})

		Convey("Load rejects a malformed duration", func() {
			So(m.Load("memory://ad?duration=soon"), ShouldNotBeNil)
		})

		Convey("When playing", func() {
			So(m.Load("memory://ad?duration=10"), ShouldBeNil)
			So(m.Play(), ShouldBeNil)

			Convey("Play emits play-started then playing", func() {
				So(*kinds, ShouldResemble, []Kind{MetadataLoaded, PlayStarted, Playing})
				So(m.Paused(), ShouldBeFalse)
			})

			Convey("Advance moves the position and scales with the rate", func() {
				m.Advance(2 * time.Second)
				So(m.Position(), ShouldEqual, 2.0)

				So(m.SetPlaybackRate(2), ShouldBeNil)
				m.Advance(time.Second)
				So(m.Position(), ShouldEqual, 4.0)
			})

			Convey("Reaching the end pauses and emits ended", func() {
				m.Advance(12 * time.Second)
				So(m.Position(), ShouldEqual, 10.0)
				So(m.Paused(), ShouldBeTrue)
				So((*kinds)[len(*kinds)-2:], ShouldResemble, []Kind{Paused, Ended})

				Convey("Playing again restarts from zero", func() {
					So(m.Play(), ShouldBeNil)
					So(m.Position(), ShouldEqual, 0.0)
				})
			})

			Convey("Pause is idempotent", func() {
				So(m.Pause(), ShouldBeNil)
				So(m.Pause(), ShouldBeNil)
				So(*kinds, ShouldResemble, []Kind{MetadataLoaded, PlayStarted, Playing, Paused})
			})

			Convey("Advance is ignored while paused", func() {
				So(m.Pause(), ShouldBeNil)
				m.Advance(time.Second)
				So(m.Position(), ShouldEqual, 0.0)
			})
		})

		Convey("SetPosition clamps into the known range", func() {
			So(m.Load("memory://ad?duration=10"), ShouldBeNil)

			So(m.SetPosition(42), ShouldBeNil)
			So(m.Position(), ShouldEqual, 10.0)

			So(m.SetPosition(-3), ShouldBeNil)
			So(m.Position(), ShouldEqual, 0.0)

			So((*kinds)[1:4], ShouldResemble, []Kind{SeekStarted, PositionUpdated, SeekEnded})
		})

		Convey("SetVolume rejects levels outside the unit range", func() {
			So(m.SetVolume(1.5), ShouldNotBeNil)
			So(m.SetVolume(-0.1), ShouldNotBeNil)
			So(m.SetVolume(0.4), ShouldBeNil)
			So(m.Volume(), ShouldEqual, 0.4)
		})

		Convey("SetPlaybackRate rejects zero", func() {
			So(m.SetPlaybackRate(0), ShouldNotBeNil)
			So(m.PlaybackRate(), ShouldEqual, 1.0)
		})

		Convey("Stall and Resume report buffering", func() {
			m.Stall()
			m.Resume()
			So(*kinds, ShouldResemble, []Kind{BufferingStarted, BufferingResolved})
		})

		Convey("Visibility and fullscreen are tracked", func() {
			So(m.SetVisible(false), ShouldBeNil)
			So(m.Visible(), ShouldBeFalse)
			So(m.ToggleFullscreen(), ShouldBeNil)
			So(m.Fullscreen(), ShouldBeTrue)
		})

		Convey("Unsubscribe stops delivery", func() {
			So(m.Subscribers(), ShouldEqual, 1)
			cancel()
			cancel()
			So(m.Subscribers(), ShouldEqual, 0)
			m.Stall()
			So(*kinds, ShouldBeEmpty)
		})

		Convey("Commands fail after close", func() {
			So(m.Close(), ShouldBeNil)
			So(m.Load("memory://x"), ShouldEqual, ErrClosed)
			So(m.Play(), ShouldEqual, ErrClosed)
		})
	})
}
