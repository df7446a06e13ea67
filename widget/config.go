package widget

import (
	"fmt"
	"time"
)

// Content describes the feature presentation.
type Content struct {
	Source      string `json:"source" jsonschema:"description=URI or path of the main video"`
	Title       string `json:"title,omitempty" jsonschema:"description=Title shown above the player"`
	Description string `json:"description,omitempty" jsonschema:"description=Text shown below the title"`
	MIMEType    string `json:"mime_type,omitempty" jsonschema:"description=Media type of the source,default=video/mp4"`
}

// Advertisement describes the pre-roll slot.
type Advertisement struct {
	Source    string  `json:"source,omitempty" jsonschema:"description=URI or path of the advertisement; empty skips straight to the main content"`
	SkipAfter float64 `json:"skip_after" jsonschema:"description=Seconds before the skip control becomes available,minimum=0"`
	MIMEType  string  `json:"mime_type,omitempty" jsonschema:"description=Media type of the source,default=video/mp4"`
}

// Configuration is fixed for the lifetime of a Player.
type Configuration struct {
	Mount              string        `json:"mount" jsonschema:"description=Identifier of the surface the player attaches to"`
	Main               Content       `json:"main"`
	Ad                 Advertisement `json:"ad"`
	Thumbnail          string        `json:"thumbnail,omitempty" jsonschema:"description=Poster shown before playback starts"`
	SkipBackward       float64       `json:"skip_backward" jsonschema:"description=Seconds sought by the backward control,minimum=0"`
	SkipForward        float64       `json:"skip_forward" jsonschema:"description=Seconds sought by the forward control,minimum=0"`
	AutoHideDelay      time.Duration `json:"auto_hide_delay" jsonschema:"description=Idle time before the controls hide while playing (nanoseconds),minimum=0"`
	SectionTitle       string        `json:"section_title,omitempty"`
	SectionDescription string        `json:"section_description,omitempty"`
	Caption            string        `json:"caption,omitempty"`
}

// DefaultConfiguration returns the defaults for every field except Mount, which callers must supply.
func DefaultConfiguration() Configuration {
	return Configuration{
		Main: Content{
			Source:      "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
			Title:       "Big Buck Bunny",
			Description: "A large and lovable rabbit deals with three tiny bullies, led by a flying squirrel, who are determined to squelch his happiness.",
			MIMEType:    "video/mp4",
		},
		Ad: Advertisement{
			Source:    "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
			SkipAfter: 5,
			MIMEType:  "video/mp4",
		},
		Thumbnail:     "https://storage.googleapis.com/gtv-videos-bucket/sample/images/BigBuckBunny.jpg",
		SkipBackward:  10,
		SkipForward:   10,
		AutoHideDelay: 3 * time.Second,
	}
}

// ConfigurationError is returned by New when the player cannot be constructed.
type ConfigurationError struct {
	Mount  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Mount == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error for mount %q: %s", e.Mount, e.Reason)
}

func (c Configuration) validate() error {
	fail := func(reason string) error {
		return &ConfigurationError{Mount: c.Mount, Reason: reason}
	}

	switch {
	case c.Mount == "":
		return fail("mount target is required")
	case c.Main.Source == "":
		return fail("main source is required")
	case c.Ad.SkipAfter < 0:
		return fail("ad skip threshold must not be negative")
	case c.SkipBackward < 0, c.SkipForward < 0:
		return fail("skip steps must not be negative")
	case c.AutoHideDelay < 0:
		return fail("auto-hide delay must not be negative")
	}

	return nil
}
