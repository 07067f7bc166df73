package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"turncue/internal/event"
	"turncue/internal/pack"
	"turncue/internal/player"
	"turncue/internal/state"
)

var previewOpts struct {
	wait bool
}

var previewCmd = &cobra.Command{
	Use:   "preview [category]",
	Short: "Play a test sound",
	Long: `Play a test sound for a category (default: acknowledge).

Preview bypasses cooldown and overlap policy but uses the same pack
resolution and non-repeating selection as the notify path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolVar(&previewOpts.wait, "wait", false,
		"Play in-process and block until the clip finishes")
}

func runPreview(cmd *cobra.Command, args []string) error {
	category := event.CategoryAcknowledge
	if len(args) == 1 {
		category = args[0]
	}
	if !event.ValidCategory(category) {
		return fmt.Errorf("category must be one of: %s", strings.Join(event.Categories(), ", "))
	}

	cfg, err := loadConfigStrict()
	if err != nil {
		return err
	}

	r := newRunner()
	store := state.NewStore(r.StatePath, logger)
	st := store.Load()

	resolver := pack.NewResolver(r.PacksDir)
	manifest, err := resolver.ActiveManifest(cfg)
	if err != nil {
		return fmt.Errorf("no usable sound pack: %w", err)
	}

	res, err := resolver.Resolve(manifest, st, category)
	if err != nil {
		return fmt.Errorf("no sound found for category %q", category)
	}

	if err := store.Save(st); err != nil {
		logger.Warn("failed to save state", "error", err)
	}

	volume := cfg.PlaybackVolume()
	if previewOpts.wait {
		if err := r.PlayBlocking(res.Path, volume); err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
	} else {
		if _, err := r.Play(res.Path, volume); err != nil {
			if !errors.Is(err, player.ErrNoBackend) {
				return fmt.Errorf("playback failed: %w", err)
			}
			if err := r.PlayBlocking(res.Path, volume); err != nil {
				r.Bell()
			}
		}
	}

	fmt.Printf("turncue: played %s -> %s\n", res.Category, res.File)
	return nil
}
