package widget

const volumeStep = 0.10

var shortcuts = map[string]struct{}{
	" ":     {},
	"space": {},
	"k":     {},
	"left":  {},
	"right": {},
	"up":    {},
	"down":  {},
	"f":     {},
	"m":     {},
}

// IsShortcut reports whether key is bound by the player. Hosts should not apply
// their own default handling to these keys while a player has focus.
func IsShortcut(key string) bool {
	_, ok := shortcuts[key]
	return ok
}

// onKey applies a shortcut to the main content.
func (p *Player) onKey(in KeyInput) {
	if in.Focus != p.cfg.Mount || p.seq.stage != StageMain {
		return
	}

	switch in.Key {
	case " ", "space", "k":
		p.togglePlayback()
	case "left":
		p.seekBy(-p.cfg.SkipBackward)
	case "right":
		p.seekBy(p.cfg.SkipForward)
	case "up":
		p.applyVolume(StepVolume(p.mirror.volume, volumeStep))
	case "down":
		p.applyVolume(StepVolume(p.mirror.volume, -volumeStep))
	case "f":
		p.toggleFullscreen()
	case "m":
		p.applyVolume(ToggleMute(p.mirror.volume))
	}
}
