package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/preroll-cli/preroll/color"
	"github.com/preroll-cli/preroll/constant"
	"github.com/preroll-cli/preroll/engine"
	"github.com/preroll-cli/preroll/key"
	"github.com/preroll-cli/preroll/style"
	"github.com/preroll-cli/preroll/widget"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Preroll + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	defaults := widget.DefaultConfiguration()

	register(key.PlayerMount, "player", "Identifier of the surface the player attaches to")
	register(key.PlayerCaption, "", "Informational caption shown under the player")
	register(key.MainSource, defaults.Main.Source, "URI or path of the main video")
	register(key.MainTitle, defaults.Main.Title, "Title of the main video")
	register(key.MainDescription, defaults.Main.Description, "Description shown under the title")
	register(key.MainMIMEType, defaults.Main.MIMEType, "Media type of the main video")
	register(key.AdSource, defaults.Ad.Source, "URI or path of the pre-roll advertisement.\nLeave empty to start the main video directly")
	register(key.AdSkipAfter, defaults.Ad.SkipAfter, "Seconds of the advertisement that must play before it can be skipped")
	register(key.AdMIMEType, defaults.Ad.MIMEType, "Media type of the advertisement")
	register(key.ThumbnailSource, defaults.Thumbnail, "Poster shown before playback starts")
	register(key.ControlsSkipBackward, defaults.SkipBackward, "Seconds to seek back with the left arrow")
	register(key.ControlsSkipForward, defaults.SkipForward, "Seconds to seek forward with the right arrow")
	register(key.ControlsAutoHideDelay, int(defaults.AutoHideDelay.Milliseconds()), "Milliseconds of inactivity before the controls hide while playing")
	register(key.SectionTitle, "", "Heading rendered above the player")
	register(key.SectionDescription, "", "Text rendered under the section heading")
	register(key.EngineBackend, engine.BackendMPV, "Media engine to use.\nAvailable options are: mpv, memory (simulated playback, no output)")
	register(key.EngineMPVBinary, "mpv", "Path or name of the mpv executable")
	register(key.EngineMemoryDuration, 30.0, "Length in seconds of sources played by the memory engine")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
