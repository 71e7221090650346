package main

import (
	"fmt"

	"github.com/nkoller/background-eraser/utils"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [file]",
	Short: "Print the detected background color of an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().String("method", "border", "Detection method (border, kmeans, dominantcolor)")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	methodStr, _ := cmd.Flags().GetString("method")
	method, err := utils.ParseBackgroundMethod(methodStr)
	if err != nil {
		return err
	}
	img, err := utils.ReadImage(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	bg, err := utils.DetectBackground(img, method)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), utils.FormatColor(bg))
	return nil
}
