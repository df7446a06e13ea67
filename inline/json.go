package inline

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/preroll-cli/preroll/widget"
)

// Output is one line of JSON output: either a view or an error.
type Output struct {
	View  *widget.View `json:"view,omitempty"`
	Error string       `json:"error,omitempty"`
}

func writeJson(out io.Writer, output Output) error {
	data, err := json.Marshal(&output)
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}

func writeText(out io.Writer, view widget.View) error {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s]", view.Stage)

	switch view.Stage {
	case widget.StageThumbnail:
		fmt.Fprintf(&b, " %s", view.Title)
	case widget.StageAd:
		fmt.Fprintf(&b, " ad %.0fs", view.Ad.Elapsed)
		if view.Ad.SkipEligible {
			b.WriteString(" skip available")
		} else {
			fmt.Fprintf(&b, " skip in %d", view.Ad.Countdown)
		}
	case widget.StageMain:
		state := "playing"
		if view.Paused {
			state = "paused"
		}
		fmt.Fprintf(&b, " %s %s / %s %.0f%% volume %d %s %s", state, view.Elapsed, view.Total, view.Progress, view.Volume, view.SpeedLabel, view.Quality)
		if view.Loading {
			b.WriteString(" loading")
		}
		if !view.ControlsVisible {
			b.WriteString(" controls hidden")
		}
		if view.Menu != widget.MenuClosed {
			fmt.Fprintf(&b, " menu %s", view.Menu)
		}
	}

	b.WriteByte('\n')
	_, err := io.WriteString(out, b.String())
	return err
}

func enumSchema[T fmt.Stringer](values ...T) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v.String()
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}

// Schema describes a line of JSON output.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Mapper = func(t reflect.Type) *jsonschema.Schema {
		switch t {
		case reflect.TypeOf(widget.Stage(0)):
			return enumSchema(widget.StageThumbnail, widget.StageAd, widget.StageMain)
		case reflect.TypeOf(widget.Menu(0)):
			return enumSchema(widget.MenuClosed, widget.MenuRoot, widget.MenuSpeed, widget.MenuQuality)
		}
		return nil
	}

	return reflector.Reflect(&Output{})
}
