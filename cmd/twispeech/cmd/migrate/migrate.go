package migrate

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"twi-speech/cmd/twispeech/cmd/cmdutil"
	"twi-speech/internal/app/logging"
	"twi-speech/internal/app/repository"
	"twi-speech/internal/app/repository/migrate"
	"twi-speech/internal/app/repository/pg"
	"twi-speech/internal/app/repository/sqlite"
)

var (
	sqliteDSN   string
	postgresDSN string
)

func init() {
	copyCmd.Flags().StringVar(&sqliteDSN, "from", "", "source SQLite DSN")
	copyCmd.Flags().StringVar(&postgresDSN, "to", "", "target PostgreSQL connection string")

	copyCmd.MarkFlagRequired("from")
	copyCmd.MarkFlagRequired("to")

	Cmd.AddCommand(schemaCmd)
	Cmd.AddCommand(copyCmd)
}

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the metadata store schema and contents",
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the speaker and recording tables in the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}

		var db *repository.CommonDB
		switch cfg.Database.Driver {
		case pg.DriverName:
			db, err = pg.NewPostgresDB(cfg.Database.DSN)
		default:
			db, err = sqlite.NewSQLiteDB(cfg.Database.DSN)
		}
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrate.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Printf("schema applied to %s store\n", db.DriverName())
		return nil
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy every speaker and recording from SQLite into PostgreSQL",
	Long: `Copy every speaker and recording from SQLite into PostgreSQL.

Rows already present in the target are skipped, so the copy can be rerun.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.NewLogger(false)
		if err != nil {
			return err
		}
		defer logger.Sync()

		src, err := sqlite.NewSQLiteDB(sqliteDSN)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer src.Close()

		dst, err := pg.NewPostgresDB(postgresDSN)
		if err != nil {
			return fmt.Errorf("failed to open target: %w", err)
		}
		defer dst.Close()

		stats, err := migrate.Copy(cmd.Context(), src, dst, logger)
		if err != nil {
			return err
		}
		logger.Info("copy finished",
			zap.Int("speakers", stats.Speakers),
			zap.Int("recordings", stats.Recordings),
			zap.Int("skipped", stats.Skipped),
		)
		return nil
	},
}
