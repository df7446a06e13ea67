package widget

// View is a complete snapshot of what a surface should display.
type View struct {
	Mount              string `json:"mount"`
	Stage              Stage  `json:"stage"`
	SectionTitle       string `json:"section_title,omitempty"`
	SectionDescription string `json:"section_description,omitempty"`
	Title              string `json:"title"`
	Description        string `json:"description,omitempty"`
	Caption            string `json:"caption,omitempty"`
	Thumbnail          string `json:"thumbnail,omitempty"`

	Ad AdView `json:"ad"`

	Paused          bool    `json:"paused"`
	Loading         bool    `json:"loading"`
	Progress        float64 `json:"progress"`
	Elapsed         string  `json:"elapsed"`
	Total           string  `json:"total"`
	Volume          int     `json:"volume"`
	Muted           bool    `json:"muted"`
	Fullscreen      bool    `json:"fullscreen"`
	ControlsVisible bool    `json:"controls_visible"`

	Menu       Menu    `json:"menu"`
	Speed      float64 `json:"speed"`
	SpeedLabel string  `json:"speed_label"`
	Quality    string  `json:"quality"`
}

// AdView describes the ad overlay.
type AdView struct {
	AdProgress
	// Countdown is the whole seconds until skipping is allowed; zero once it is.
	Countdown int `json:"countdown"`
}
