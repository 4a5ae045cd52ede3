package commands

import (
	"github.com/spf13/cobra"

	database "fisiocatania_backend/internals/databases"
	"fisiocatania_backend/internals/seeds"
)

var withSeeds bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema",
	Long: `Create or update the schema with AutoMigrate and add the check constraints
on the status codes.

Examples:
  fisiocatania migrate           # schema only
  fisiocatania migrate --seed    # schema, then regions and treatments`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()
		if err := database.Migrate(db); err != nil {
			return err
		}
		if withSeeds {
			_, err = seeds.RunAllSeeds(cmd.Context(), db)
		}
		return err
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the body regions and treatment types (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()
		res, err := seeds.RunAllSeeds(cmd.Context(), db)
		if err != nil {
			return err
		}
		cmd.Printf("inserted %d regions, %d treatments\n", res.Distretti, res.Trattamenti)
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&withSeeds, "seed", false, "Run the seeds after migrating")
}
