package cmd

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/preroll-cli/preroll/config"
	"github.com/preroll-cli/preroll/filesystem"
	"github.com/preroll-cli/preroll/inline"
	"github.com/preroll-cli/preroll/key"
	"github.com/preroll-cli/preroll/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().BoolP("json", "j", false, "Write each view as a JSON object")
	inlineCmd.Flags().StringP("input", "i", "", "Read commands from a file instead of stdin")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
	inlineCmd.Flags().Duration("tick", 100*time.Millisecond, "Clock step of the memory backend, 0 to advance only on commands")
	inlineCmd.Flags().StringP("mount", "m", "", "Mount identifier of the player")
	lo.Must0(viper.BindPFlag(key.PlayerMount, inlineCmd.Flags().Lookup("mount")))
}

// inlineCmd runs the player without a terminal UI, driven by line commands.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Drive the player with line commands and print every view",
	Long: `Run the player headless. Commands are read one per line; blank lines and lines
starting with # are skipped. Every distinct view the player renders is printed.

Commands:
  ` + strings.Join(inline.Commands, "\n  "),
	Example: `  printf 'start\nwait 6s\nskip\nvolume 40\nstate\n' | preroll inline --engine memory --json`,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		var (
			in  io.Reader = os.Stdin
			out io.Writer = os.Stdout
		)

		if path := lo.Must(cmd.Flags().GetString("input")); path != "" {
			file, err := filesystem.API().Open(path)
			handleErr(err)
			defer util.Ignore(file.Close)
			in = file
		}

		if path := lo.Must(cmd.Flags().GetString("output")); path != "" {
			file, err := filesystem.API().Create(path)
			handleErr(err)
			defer util.Ignore(file.Close)
			out = file
		}

		options, err := playerOptions()
		handleErr(err)

		handleErr(inline.Run(&inline.Options{
			In:            in,
			Out:           out,
			Configuration: options.Configuration,
			Ad:            options.Ad,
			Main:          options.Main,
			Json:          lo.Must(cmd.Flags().GetBool("json")),
			Tick:          lo.Must(cmd.Flags().GetDuration("tick")),
		}))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)

	inlineSchemaCmd.Flags().BoolP("config", "c", false, "Generate the JSON schema of the player configuration instead")
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of inline mode output lines",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("config")) {
			schema, err := config.Schema()
			handleErr(err)
			_, err = os.Stdout.Write(append(schema, '\n'))
			handleErr(err)
			return
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(inline.Schema()))
	},
}
