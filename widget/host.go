package widget

// Host is the environment a player is embedded in.
type Host interface {
	// Resolve finds the surface registered under mount.
	Resolve(mount string) (Surface, bool)

	// Listen delivers document-level input: keys and clicks anywhere, tagged with the mount they target.
	Listen(fn func(Input)) (cancel func())
}

// Surface is the area one player renders into.
type Surface interface {
	Render(View)

	// Listen delivers input aimed at this surface: pointer movement and control activations.
	Listen(fn func(Input)) (cancel func())
}

// Input is one of KeyInput, PointerInput or ControlInput.
type Input interface {
	isInput()
}

// KeyInput is a key press. Focus is the mount holding keyboard focus.
type KeyInput struct {
	Key   string
	Focus string
}

type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerLeave
	PointerClick
)

// Region is where on the surface the pointer is.
type Region int

const (
	RegionOutside Region = iota
	RegionPlayer
	RegionControls
)

// PointerInput is pointer movement or a click. Within is the mount containing the pointer, or "" for none.
type PointerInput struct {
	Kind   PointerKind
	Region Region
	Within string
}

// Control identifies an activatable element of the control surface.
type Control int

const (
	ControlPlay Control = iota
	ControlSkip
	ControlPlayPause
	ControlSeekBackward
	ControlSeekForward
	ControlMute
	ControlFullscreen
	ControlSettings
	ControlSpeedMenu
	ControlQualityMenu
	ControlSpeedOption
	ControlQualityOption
	ControlTrack
	ControlVolumeSlider
)

// ControlInput activates a control. Index selects a menu option; Value carries the track
// fraction in [0,1] or the volume slider level in [0,100].
type ControlInput struct {
	Control Control
	Index   int
	Value   float64
}

func (KeyInput) isInput()     {}
func (PointerInput) isInput() {}
func (ControlInput) isInput() {}
