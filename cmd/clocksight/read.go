package main

import (
	"fmt"
	"image"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clocksight/clocksight/internal/detection"
	"github.com/clocksight/clocksight/internal/imaging"
	"github.com/clocksight/clocksight/internal/pipeline"
	"github.com/clocksight/clocksight/internal/viz"
)

var (
	outDir     string
	saveStages bool
)

var readCmd = &cobra.Command{
	Use:   "read <image>",
	Short: "Decode the time shown on a clock photograph",
	Long: `Read loads a photograph of an analog clock, runs the detection
pipeline, and prints the decoded time as HH:MM on stdout.

On failure the command prints the stage that missed to stderr and exits
with status 1. With --save, the intermediate processing stages and a
detection overlay are written to the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().StringVar(&outDir, "out", "processed_imgs",
		"directory for saved stage images")
	readCmd.Flags().BoolVar(&saveStages, "save", false,
		"write intermediate stage images and the detection overlay")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	path := args[0]

	img, err := imaging.NewCache().Load(path)
	if err != nil {
		return err
	}

	log := logrus.WithField("image", path)
	result := pipeline.New(detection.NewSuite()).WithLogger(log).Run(img)

	if saveStages {
		var overlay image.Image
		if o := viz.Overlay(result.Artifacts, result.Reading); o != nil {
			overlay = o
		}
		if err := viz.SaveStages(outDir, result.Artifacts, overlay); err != nil {
			log.WithError(err).Warn("failed to save stage images")
		}
	}

	if !result.OK() {
		fmt.Fprintln(os.Stderr, result.Failure.Error())
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		os.Exit(1)
	}

	fmt.Println(result.Reading.String())
	return nil
}
