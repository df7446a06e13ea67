// Package cmd implements the command-line interface for preroll.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/preroll-cli/preroll/color"
	"github.com/preroll-cli/preroll/config"
	"github.com/preroll-cli/preroll/constant"
	"github.com/preroll-cli/preroll/engine"
	"github.com/preroll-cli/preroll/icon"
	"github.com/preroll-cli/preroll/key"
	"github.com/preroll-cli/preroll/log"
	"github.com/preroll-cli/preroll/style"
	"github.com/preroll-cli/preroll/tui"
	"github.com/preroll-cli/preroll/version"
	"github.com/preroll-cli/preroll/widget"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("engine", "e", "", "Select the playback backend (mpv or memory)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("engine", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return engine.Backends, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.EngineBackend, rootCmd.PersistentFlags().Lookup("engine")))

	rootCmd.PersistentFlags().String("ad", "", "Override the advertisement source; an empty value plays no ad")
	lo.Must0(viper.BindPFlag(key.AdSource, rootCmd.PersistentFlags().Lookup("ad")))

	rootCmd.PersistentFlags().Float64("skip-after", 0, "Seconds of the ad that must play before it can be skipped")
	lo.Must0(viper.BindPFlag(key.AdSkipAfter, rootCmd.PersistentFlags().Lookup("skip-after")))

	rootCmd.Flags().Duration("tick", 250*time.Millisecond, "Clock step of the memory backend")
	lo.Must0(rootCmd.Flags().MarkHidden("tick"))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd plays the configured feature, preceded by its ad, in the terminal.
var rootCmd = &cobra.Command{
	Use:   constant.Preroll + " [source]",
	Short: "A terminal video player that runs a skippable pre-roll ad before the feature",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal video player that runs a skippable pre-roll ad before the feature"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 1 {
			viper.Set(key.MainSource, args[0])
		}

		CheckDependencies()

		options, err := playerOptions()
		handleErr(err)

		handleErr(tui.Run(&tui.Options{
			Configuration: options.Configuration,
			Ad:            options.Ad,
			Main:          options.Main,
			Tick:          lo.Must(cmd.Flags().GetDuration("tick")),
		}))
	},
}

type elements struct {
	Configuration widget.Configuration
	Ad, Main      engine.Element
}

// playerOptions reads the configuration and creates one element per slot.
func playerOptions() (elements, error) {
	cfg := config.PlayerConfiguration()

	ad, err := engine.New(constant.Preroll + " - advertisement")
	if err != nil {
		return elements{}, err
	}

	title := cfg.Main.Title
	if title == "" {
		title = constant.Preroll
	}

	feature, err := engine.New(title)
	if err != nil {
		_ = ad.Close()
		return elements{}, err
	}

	return elements{Configuration: cfg, Ad: ad, Main: feature}, nil
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
