package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/preroll-cli/preroll/engine"
	"github.com/preroll-cli/preroll/icon"
	"github.com/preroll-cli/preroll/key"
	"github.com/preroll-cli/preroll/style"
	"github.com/spf13/viper"
)

// engineStatus describes the configured backend and whether it can run here.
func engineStatus() string {
	backend := viper.GetString(key.EngineBackend)
	if missing, ok := engine.Available(); !ok {
		return fmt.Sprintf("%s (%s not found)", backend, missing)
	}
	return backend + " (ready)"
}

// CheckDependencies exits with an install hint when the configured backend cannot run here.
func CheckDependencies() {
	if missing, ok := engine.Available(); !ok {
		printMissingDependencyError(missing)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install mpv"
	case "linux":
		installCmd = "sudo apt install mpv"
	case "windows":
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := fmt.Sprintf("\n\nOr play without it using %s", style.New().Foreground(style.AccentColor).Bold(true).Render("--engine memory"))
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd)) + suggestion
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
