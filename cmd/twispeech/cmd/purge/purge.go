package purge

import (
	"fmt"

	"github.com/spf13/cobra"

	"twi-speech/cmd/twispeech/cmd/cmdutil"
	"twi-speech/internal/app"
)

var confirm bool

func init() {
	Cmd.PersistentFlags().BoolVar(&confirm, "confirm", false, "required to actually delete anything")

	Cmd.AddCommand(recordingsCmd)
	Cmd.AddCommand(speakersCmd)
}

// Cmd represents the purge command
var Cmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all recordings or all speakers",
	Long: `Delete all recordings or all speakers.

- recordings removes every recording row and its stored audio object
- speakers removes every speaker row; recordings are left untouched
Nothing is deleted unless --confirm is given.`,
}

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "Delete every recording and its audio object",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}
		purger, cleanup, err := app.InitializePurge(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		summary, err := purger.PurgeAllRecordings(cmd.Context(), confirm)
		if summary != nil {
			fmt.Println(summary.Message)
			for _, key := range summary.R2FailedKeys {
				fmt.Printf("  failed: %s\n", key)
			}
		}
		return err
	},
}

var speakersCmd = &cobra.Command{
	Use:   "speakers",
	Short: "Delete every speaker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}
		purger, cleanup, err := app.InitializePurge(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		n, err := purger.PurgeAllSpeakers(cmd.Context(), confirm)
		if err != nil {
			return err
		}
		fmt.Printf("Successfully deleted %d speaker documents from the database.\n", n)
		return nil
	},
}
