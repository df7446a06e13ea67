package icon

import (
	"testing"

	"github.com/preroll-cli/preroll/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given the player glyphs", t, func() {
		glyphs := []Icon{Play, Pause, SeekBackward, SeekForward, Volume, Muted, Fullscreen, Settings, Skip, Loading}

		Convey("Every glyph renders for each variant", func() {
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				for _, g := range glyphs {
					So(Get(g), ShouldNotBeEmpty)
				}
			}
		})

		Convey("Play and pause never share a glyph", func() {
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				So(Get(Play), ShouldNotEqual, Get(Pause))
				So(Get(Volume), ShouldNotEqual, Get(Muted))
			}
		})

		Convey("It returns empty for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Play), ShouldBeEmpty)
		})

		Convey("It returns empty for an unregistered icon", func() {
			viper.Set(key.IconsVariant, plain)
			So(Get(Icon(999)), ShouldBeEmpty)
		})
	})
}
