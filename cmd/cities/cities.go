// Package cities implements the 'cities' subcommand.
package cities

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwhicks/siteingest/internal/conf"
	"github.com/cwhicks/siteingest/internal/datastore"
	"github.com/cwhicks/siteingest/internal/ingest"
)

// Command creates the cities command, which joins Census gazetteer and
// population files per state and stores the merged records in the database.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cities STATE [STATE ...]",
		Short: "Import Census city data for the given states",
		Long: `Combine Census gazetteer files (coordinates, geographic info) with
population estimate files into the cities table. States may be given as
two-letter abbreviations (CA) or two-digit FIPS codes (06).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCities(settings, args)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the cities command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().StringVar(&settings.Cities.DataDir, "data-dir", viper.GetString("cities.datadir"), "Directory holding gazetteer and population files")
}

func runCities(settings *conf.Settings, stateCodes []string) error {
	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no database output enabled in configuration")
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	importer := ingest.NewCityImporter(settings, store)

	summary, err := importer.ImportStates(stateCodes)
	if err != nil {
		return fmt.Errorf("city import failed: %w", err)
	}

	for _, result := range summary.States {
		fmt.Printf("%s: inserted %d cities, skipped %d\n", result.StateAbbrev, result.Inserted, result.Skipped)
	}
	for _, code := range summary.Failed {
		fmt.Printf("%s: import failed\n", code)
	}
	fmt.Printf("Import complete, %d/%d states imported, %d cities in database\n",
		len(summary.States), len(stateCodes), summary.TotalCities)

	return nil
}
