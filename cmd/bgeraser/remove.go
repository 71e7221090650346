package main

import (
	"fmt"
	"image/color"

	bgeraser "github.com/nkoller/background-eraser"
	"github.com/nkoller/background-eraser/utils"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the background of an image and write a PNG cutout",
	RunE:  runRemove,
}

func init() {
	removeCmd.Flags().StringP("input", "i", "", "Input image (PNG, JPEG, GIF, BMP, TIFF, WebP)")
	removeCmd.Flags().StringP("output", "o", "", "Output PNG file")
	removeCmd.Flags().StringP("background", "b", "", "Background color as hex (#rrggbb); detected when empty")
	removeCmd.Flags().String("detect", "border", "Detection method when --background is empty (border, kmeans, dominantcolor)")
	removeCmd.Flags().Uint8P("tolerance", "t", bgeraser.DefaultTolerance, "Largest per-channel difference treated as background")
	removeCmd.Flags().Int("workers", 1, "Goroutines per sweep")
	removeCmd.Flags().String("debug-dir", "", "Write alpha mask and reference map images to this directory")
	removeCmd.MarkFlagRequired("input")
	removeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	bgStr, _ := cmd.Flags().GetString("background")
	detectStr, _ := cmd.Flags().GetString("detect")
	tolerance, _ := cmd.Flags().GetUint8("tolerance")
	workers, _ := cmd.Flags().GetInt("workers")
	debugDir, _ := cmd.Flags().GetString("debug-dir")

	img, err := utils.ReadImage(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var bg color.NRGBA
	if bgStr != "" {
		bg, err = utils.ParseColor(bgStr)
		if err != nil {
			return err
		}
	} else {
		method, err := utils.ParseBackgroundMethod(detectStr)
		if err != nil {
			return err
		}
		bg, err = utils.DetectBackground(img, method)
		if err != nil {
			return err
		}
		bgeraser.Logger().Info("detected background", "method", method.String(), "color", utils.FormatColor(bg))
	}

	r := bgeraser.NewRemover(img, bg)
	r.Build(bgeraser.Options{Tolerance: tolerance, Workers: workers})

	if err := utils.SaveImage(r.Image(), outputPath); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if debugDir != "" {
		if err := utils.SaveDebugImages(r, debugDir); err != nil {
			return fmt.Errorf("writing debug images: %w", err)
		}
	}

	s := r.Summary()
	fmt.Fprintf(cmd.OutOrStdout(), "Erased %s from %dx%d image\n", utils.FormatColor(bg), r.Input.W, r.Input.H)
	fmt.Fprintf(cmd.OutOrStdout(), "Background: %d  Opaque: %d  Edge: %d (mean alpha %.1f, sd %.1f)\n",
		s.Background, s.Opaque, s.Edge, s.EdgeAlphaMean, s.EdgeAlphaStdDev)
	fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", outputPath)
	return nil
}
