package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samirrijal/campusroute/internal/app"
	"github.com/samirrijal/campusroute/internal/core/domain"
)

var (
	outFile      string
	renderWidth  int
	renderHeight int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the day's route to a PNG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("width") {
			renderWidth = cfg.Render.Width
		}
		if !cmd.Flags().Changed("height") {
			renderHeight = cfg.Render.Height
		}

		crns := domain.ParseCRNs(crnList)
		day := domain.ParseWeekday(dayName)

		ctx := context.Background()
		campus, err := app.Build(ctx, cfg.Campus, nil)
		if err != nil {
			return err
		}
		svc := campus.Visualization()

		plan, err := svc.Plan(ctx, crns, day)
		if err != nil {
			return err
		}
		png, err := svc.Draw(ctx, plan.Model, renderWidth, renderHeight)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outFile, png, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outFile, err)
		}

		for _, line := range plan.Model.Summary {
			fmt.Println(line)
		}
		if len(plan.MissingCRNs) > 0 {
			fmt.Printf("Not found: %v\n", plan.MissingCRNs)
		}
		fmt.Printf("Wrote %s (%dx%d)\n", outFile, renderWidth, renderHeight)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "route.png", "Output PNG path")
	renderCmd.Flags().IntVar(&renderWidth, "width", 1280, "Image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 960, "Image height in pixels")
	rootCmd.AddCommand(renderCmd)
}
