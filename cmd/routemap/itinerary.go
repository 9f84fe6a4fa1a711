package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samirrijal/campusroute/internal/app"
	"github.com/samirrijal/campusroute/internal/core/domain"
)

var itineraryCmd = &cobra.Command{
	Use:   "itinerary",
	Short: "Print the day's classes in time order",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		campus, err := app.Build(ctx, cfg.Campus, nil)
		if err != nil {
			return err
		}

		day := domain.ParseWeekday(dayName)
		it, missing, err := campus.Schedule.DailyItinerary(ctx, domain.ParseCRNs(crnList), day)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", day)
		if it.IsEmpty() {
			fmt.Println(domain.NoSessionsMessage(day))
		}
		for _, e := range it.Entries {
			fmt.Printf("  %-13s  %-10s  %-12s  %s\n",
				e.Session.Slot, e.Offering.Course().Code, e.Session.Activity, e.Session.Room)
		}
		if len(missing) > 0 {
			fmt.Printf("Not found: %v\n", missing)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(itineraryCmd)
}
