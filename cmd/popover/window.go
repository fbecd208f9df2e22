package main

import (
	"github.com/phanxgames/popover"
	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open the card in an Ebitengine window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := loadFromCommand(cmd)
		if err != nil {
			return err
		}
		scene, err := newWindowScene(cli)
		if err != nil {
			return err
		}
		return popover.Run(scene, popover.RunConfig{
			Title:   "popover",
			Width:   cli.Width,
			Height:  cli.Height,
			ShowFPS: cli.ShowFPS,
		})
	},
}

func init() {
	windowCmd.Flags().Int("width", defaultWidth, "window width in pixels")
	windowCmd.Flags().Int("height", defaultHeight, "window height in pixels")
	windowCmd.Flags().Bool("show-fps", false, "show the frame rate")
}

func newWindowScene(cli cliConfig) (*popover.Scene, error) {
	cfg, err := cli.popoverConfig(float64(cli.Height))
	if err != nil {
		return nil, err
	}
	scene, err := popover.NewScene(cfg, popover.DefaultLayout(cfg, float64(cli.Width), float64(cli.Height)))
	if err != nil {
		return nil, err
	}
	scene.ClearColor = popover.Color{R: 0.137, G: 0.118, B: 0.176, A: 1}
	return scene, nil
}
