package widget

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestViewJSON(t *testing.T) {
	Convey("A view decodes from its own JSON", t, func() {
		view := View{
			Mount:      "player",
			Stage:      StageMain,
			Title:      "Feature",
			Progress:   25,
			Elapsed:    "0:30",
			Total:      "2:00",
			Volume:     40,
			Menu:       MenuSpeed,
			Speed:      1.5,
			SpeedLabel: "1.5x",
			Quality:    "720p",
		}

		data, err := json.Marshal(view)
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, `"stage":"main"`)
		So(string(data), ShouldContainSubstring, `"menu":"speed"`)

		var decoded View
		So(json.Unmarshal(data, &decoded), ShouldBeNil)
		So(decoded, ShouldResemble, view)

		Convey("Every stage and menu name parses back", func() {
			for i := range stageNames {
				var s Stage
				So(s.UnmarshalText([]byte(Stage(i).String())), ShouldBeNil)
				So(s, ShouldEqual, Stage(i))
			}
			for i := range menuNames {
				var m Menu
				So(m.UnmarshalText([]byte(Menu(i).String())), ShouldBeNil)
				So(m, ShouldEqual, Menu(i))
			}
		})

		Convey("Unknown names are rejected", func() {
			So(json.Unmarshal([]byte(`{"stage":"intermission"}`), &decoded), ShouldNotBeNil)
			So(json.Unmarshal([]byte(`{"menu":"audio"}`), &decoded), ShouldNotBeNil)
		})
	})
}
