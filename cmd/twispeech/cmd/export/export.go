package export

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"twi-speech/cmd/twispeech/cmd/cmdutil"
	"twi-speech/internal/app"
	appexport "twi-speech/internal/app/export"
)

var (
	outputFilePath string
	showProgress   bool
)

func init() {
	Cmd.PersistentFlags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "output file path (default is a timestamped name in the current directory)")
	Cmd.PersistentFlags().BoolVar(&showProgress, "progress", false, "force the progress bar even when stderr is not a terminal")

	Cmd.AddCommand(speakersCmd)
	Cmd.AddCommand(recordingsCmd)
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export speakers or recordings to excel",
}

var speakersCmd = &cobra.Command{
	Use:   "speakers",
	Short: "Export every speaker with recording progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("speakers", func(e *appexport.Exporter, f *os.File, t appexport.Tracker) (int, error) {
			return e.Speakers(cmd.Context(), f, t)
		})
	},
}

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "Export every recording, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("recordings", func(e *appexport.Exporter, f *os.File, t appexport.Tracker) (int, error) {
			return e.Recordings(cmd.Context(), f, t)
		})
	},
}

type exportFunc func(e *appexport.Exporter, f *os.File, t appexport.Tracker) (int, error)

func run(kind string, fn exportFunc) error {
	cfg, err := cmdutil.LoadConfig()
	if err != nil {
		return err
	}

	exporter, cleanup, err := app.InitializeExporter(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	path := outputFilePath
	if path == "" {
		path = appexport.FileName(kind, time.Now().In(cfg.Collection.Location()))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	tracker := appexport.NewProgressBar(appexport.ProgressConfig{
		Enabled: appexport.ShouldShowProgress(showProgress),
		Writer:  os.Stderr,
	})

	n, err := fn(exporter, f, tracker)
	if err != nil {
		_ = os.Remove(path)
		return err
	}

	fmt.Printf("export finished, %d %s written to %v\n", n, kind, path)
	return nil
}
