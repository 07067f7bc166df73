package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify [payload]",
	Short: "Handle a turn-completion payload",
	Long: `Handle a turn-completion notify payload.

The payload is a JSON object with at least "type", "thread-id", and
"last-assistant-message" fields. It is read from the first argument, or from
stdin when no argument is given.

This path is fail-silent: malformed payloads, missing packs, and playback
failures all exit 0 so a broken sound never disrupts the calling tool.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	var raw string
	if len(args) == 1 {
		raw = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Debug("failed to read payload from stdin", "error", err)
			return nil
		}
		raw = string(data)
	}

	newRunner().HandlePayload(raw)
	return nil
}
