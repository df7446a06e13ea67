// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 24

// Player Mounting - these keys describe where the player attaches and the text around it.
const (
	PlayerMount   = "player.mount"
	PlayerCaption = "player.caption"
)

// Main Content - these keys describe the feature presentation played after the advertisement.
const (
	MainSource      = "main.source"
	MainTitle       = "main.title"
	MainDescription = "main.description"
	MainMIMEType    = "main.mime_type"
)

// Advertisement - these keys configure the pre-roll slot and its skip policy.
const (
	AdSource    = "ad.source"
	AdSkipAfter = "ad.skip_after"
	AdMIMEType  = "ad.mime_type"
)

// Thumbnail - the poster shown before playback starts.
const (
	ThumbnailSource = "thumbnail.source"
)

// Control Surface - these keys tune seeking steps and the auto-hide behaviour.
const (
	ControlsSkipBackward  = "controls.skip_backward"
	ControlsSkipForward   = "controls.skip_forward"
	ControlsAutoHideDelay = "controls.auto_hide_delay"
)

// Section - optional heading rendered above the player.
const (
	SectionTitle       = "section.title"
	SectionDescription = "section.description"
)

// Media Engine - these keys select and tune the playback backend.
const (
	EngineBackend        = "engine.backend"
	EngineMPVBinary      = "engine.mpv_binary"
	EngineMemoryDuration = "engine.memory_duration"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
