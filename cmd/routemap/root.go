package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samirrijal/campusroute/internal/pkg/config"
	"github.com/samirrijal/campusroute/internal/pkg/logging"
)

var (
	scheduleFile  string
	buildingsFile string
	mapImage      string
	crnList       string
	dayName       string
	verbose       bool
	cfg           *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "routemap",
	Short:        "Plan a student's walking route between classes and draw it on the campus map",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load("campusroute-routemap")
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level := "warn"
		if verbose {
			level = "debug"
		}
		logging.Setup(level, "text")

		// The CLI always reads the spreadsheet directly.
		cfg.Campus.ScheduleSource = config.SourceXLSX
		if cmd.Flags().Changed("schedule") {
			cfg.Campus.ScheduleFile = scheduleFile
		}
		if cmd.Flags().Changed("buildings") {
			cfg.Campus.BuildingsFile = buildingsFile
		}
		if cmd.Flags().Changed("map") {
			cfg.Campus.MapImage = mapImage
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scheduleFile, "schedule", "data/schedule.xlsx", "Term schedule spreadsheet")
	rootCmd.PersistentFlags().StringVar(&buildingsFile, "buildings", "data/buildings.csv", "Building coordinates CSV (code,name,pixelX,pixelY)")
	rootCmd.PersistentFlags().StringVar(&mapImage, "map", "data/campus_map.png", "Campus map image")
	rootCmd.PersistentFlags().StringVar(&crnList, "crns", "", "CRNs separated by spaces, commas or semicolons")
	rootCmd.PersistentFlags().StringVar(&dayName, "day", "Monday", "Day of the week")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
