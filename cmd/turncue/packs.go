package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"turncue/internal/pack"
)

var (
	packActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List installed sound packs",
	RunE:  runPacks,
}

var packCmd = &cobra.Command{
	Use:   "pack [name]",
	Short: "Switch pack (or cycle when omitted)",
	Long: `Switch the active sound pack.

With a name, activates that pack. Without a name, cycles to the next
installed pack in alphabetical order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packsCmd)
	rootCmd.AddCommand(packCmd)
}

func runPacks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigStrict()
	if err != nil {
		return err
	}

	packs := pack.List(newRunner().PacksDir)
	if len(packs) == 0 {
		return fmt.Errorf("no packs installed under %s", newRunner().PacksDir)
	}

	for _, p := range packs {
		line := fmt.Sprintf("  %-24s %s", p.Name, p.DisplayName)
		if p.Name == cfg.ActivePack {
			line = packActiveStyle.Render(line + " *")
		}
		fmt.Println(line)
	}
	return nil
}

func runPack(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigStrict()
	if err != nil {
		return err
	}

	packsDir := newRunner().PacksDir
	packs := pack.List(packsDir)
	if len(packs) == 0 {
		return fmt.Errorf("no packs installed under %s", packsDir)
	}

	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}

	var next string
	if len(args) == 1 {
		name := args[0]
		idx := indexOf(names, name)
		if idx < 0 {
			return fmt.Errorf("pack %q not found; available: %s", name, strings.Join(names, ", "))
		}
		next = name
	} else {
		idx := indexOf(names, cfg.ActivePack)
		if idx < 0 {
			next = names[0]
		} else {
			next = names[(idx+1)%len(names)]
		}
	}

	cfg.ActivePack = next
	if err := cfg.Save(configFilePath()); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	display := next
	if m, err := pack.LoadManifest(packsDir, next); err == nil {
		display = m.DisplayName
	}
	fmt.Printf("turncue: switched to %s (%s)\n", next, display)
	return nil
}

func indexOf(items []string, target string) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}
