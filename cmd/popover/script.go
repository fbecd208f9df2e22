package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/popover"
	"github.com/spf13/cobra"
)

// maxScriptFrames bounds a headless run at ten minutes of 60 Hz frames.
const maxScriptFrames = 60 * 600

var scriptCmd = &cobra.Command{
	Use:   "script [file]",
	Short: "Run a JSON test script headless and report the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := loadFromCommand(cmd)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		frames, err := runScript(cli, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "PASS %s (%d frames)\n", args[0], frames)
		return nil
	},
}

func init() {
	scriptCmd.Flags().Int("width", defaultWidth, "scene width in pixels")
	scriptCmd.Flags().Int("height", defaultHeight, "scene height in pixels")
}

// runScript steps a scene at 60 Hz until the script finishes and returns the
// number of frames taken.
func runScript(cli cliConfig, data []byte) (int, error) {
	runner, err := popover.LoadTestScript(data)
	if err != nil {
		return 0, err
	}
	scene, err := newWindowScene(cli)
	if err != nil {
		return 0, err
	}
	scene.SetTestRunner(runner)

	const dt = 1.0 / 60
	for frame := 1; frame <= maxScriptFrames; frame++ {
		if err := scene.Step(dt); err != nil {
			return frame, err
		}
		if runner.Done() {
			if err := runner.Err(); err != nil {
				return frame, fmt.Errorf("frame %d: %w", frame, err)
			}
			return frame, nil
		}
	}
	return maxScriptFrames, fmt.Errorf("script did not finish within %d frames", maxScriptFrames)
}
