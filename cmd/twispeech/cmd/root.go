package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"twi-speech/cmd/twispeech/cmd/cmdutil"
	"twi-speech/cmd/twispeech/cmd/export"
	"twi-speech/cmd/twispeech/cmd/migrate"
	"twi-speech/cmd/twispeech/cmd/purge"
	"twi-speech/cmd/twispeech/cmd/serve"
	"twi-speech/cmd/twispeech/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "twispeech",
	Short: "Backend for collecting Twi speech recordings",
	Long: `Backend for collecting Twi speech recordings.
- serve runs the HTTP API used by the recording app
- export writes the speaker or recording table to an Excel workbook
- purge clears recordings or speakers in bulk
- migrate applies the schema or copies a SQLite store into PostgreSQL`,
	TraverseChildren: true,
	SilenceUsage:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(purge.Cmd)
	rootCmd.AddCommand(migrate.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&cmdutil.ConfigPath, "config", "c", "", "config file (default is $TWI_CONFIG or config.yaml)")
}
