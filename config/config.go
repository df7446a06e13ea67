// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/preroll-cli/preroll/constant"
	"github.com/preroll-cli/preroll/filesystem"
	"github.com/preroll-cli/preroll/key"
	"github.com/preroll-cli/preroll/where"
	"github.com/preroll-cli/preroll/widget"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.Preroll)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	// Synchronize environment variable bindings.
	viper.SetEnvPrefix(constant.Preroll)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	// Initialize factory default values.
	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// PlayerConfiguration assembles the player configuration from the current settings.
// Validation is left to widget.New.
func PlayerConfiguration() widget.Configuration {
	return widget.Configuration{
		Mount: viper.GetString(key.PlayerMount),
		Main: widget.Content{
			Source:      viper.GetString(key.MainSource),
			Title:       viper.GetString(key.MainTitle),
			Description: viper.GetString(key.MainDescription),
			MIMEType:    viper.GetString(key.MainMIMEType),
		},
		Ad: widget.Advertisement{
			Source:    viper.GetString(key.AdSource),
			SkipAfter: viper.GetFloat64(key.AdSkipAfter),
			MIMEType:  viper.GetString(key.AdMIMEType),
		},
		Thumbnail:          viper.GetString(key.ThumbnailSource),
		SkipBackward:       viper.GetFloat64(key.ControlsSkipBackward),
		SkipForward:        viper.GetFloat64(key.ControlsSkipForward),
		AutoHideDelay:      time.Duration(viper.GetInt64(key.ControlsAutoHideDelay)) * time.Millisecond,
		SectionTitle:       viper.GetString(key.SectionTitle),
		SectionDescription: viper.GetString(key.SectionDescription),
		Caption:            viper.GetString(key.PlayerCaption),
	}
}

// Schema returns the JSON schema of the player configuration.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	schema := reflector.Reflect(&widget.Configuration{})
	schema.Title = constant.Preroll + " player configuration"

	return json.MarshalIndent(schema, "", "  ")
}
