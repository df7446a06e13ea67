// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"fmt"

	"github.com/preroll-cli/preroll/color"
	"github.com/preroll-cli/preroll/constant"
	"github.com/preroll-cli/preroll/icon"
	"github.com/preroll-cli/preroll/key"
	"github.com/preroll-cli/preroll/style"
	"github.com/preroll-cli/preroll/util"
	"github.com/spf13/viper"
)

// Notify displays a terminal alert if a more recent stable application version is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest()
	erase()
	if err == nil {
		comp, err := Compare(version, constant.Version)
		if err == nil && comp <= 0 {
			return
		}
	}

	fmt.Printf(`
%s New version is available %s %s
%s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/preroll-cli/preroll/releases/tag/v"+version),
		style.Faint("Upgrade with: go install github.com/preroll-cli/preroll@v"+version),
	)

}
