// Package icon provides a multi-variant rendering engine for player glyphs and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/preroll-cli/preroll/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a glyph in the registry.
type Icon int

const (
	Play Icon = iota
	Pause
	SeekBackward
	SeekForward
	Volume
	Muted
	Fullscreen
	Settings
	Skip
	Loading
	Success
	Fail
	Progress
)

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Play:         {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(>_<)>", squares: "▶"},
	Pause:        {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(-_-)zz", squares: "⏸"},
	SeekBackward: {emoji: "⏪", nerd: "", plain: "<<", kaomoji: "<<(o_o)", squares: "◀◀"},
	SeekForward:  {emoji: "⏩", nerd: "", plain: ">>", kaomoji: "(o_o)>>", squares: "▶▶"},
	Volume:       {emoji: "🔊", nerd: "", plain: "vol", kaomoji: "♪(^o^)", squares: "◼))"},
	Muted:        {emoji: "🔇", nerd: "", plain: "mute", kaomoji: "(x_x)", squares: "◼x"},
	Fullscreen:   {emoji: "⛶", nerd: "", plain: "[ ]", kaomoji: "[(o_o)]", squares: "⛶"},
	Settings:     {emoji: "⚙️", nerd: "", plain: "*", kaomoji: "(*_*)", squares: "▣"},
	Skip:         {emoji: "⏭️", nerd: "", plain: ">|", kaomoji: "(>_>)>|", squares: "▶|"},
	Loading:      {emoji: "⏳", nerd: "", plain: "...", kaomoji: "(._.)...", squares: "◌"},
	Success:      {emoji: "🎉", nerd: "", plain: "+", kaomoji: "(ᵔ◡ᵔ)", squares: "▣"},
	Fail:         {emoji: "💀", nerd: "", plain: "x", kaomoji: "(╥﹏╥)", squares: "▨"},
	Progress:     {emoji: "⏳", nerd: "", plain: "~", kaomoji: "(・_・)", squares: "▧"},
}

// Get retrieves the visual representation for the receiver based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.Get()
}
