package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"turncue/internal/pack"
	"turncue/internal/state"
)

var statusOpts struct {
	output string // text, json, yaml
}

// statusReport is the machine-readable status shape.
type statusReport struct {
	State        string            `json:"state" yaml:"state"`
	Enabled      bool              `json:"enabled" yaml:"enabled"`
	ActivePack   string            `json:"active_pack" yaml:"active_pack"`
	PackDisplay  string            `json:"pack_display" yaml:"pack_display"`
	Volume       float64           `json:"volume" yaml:"volume"`
	GreetingMode string            `json:"greeting_mode" yaml:"greeting_mode"`
	LastPlayed   map[string]string `json:"last_played,omitempty" yaml:"last_played,omitempty"`
}

var (
	statusTitleStyle  = lipgloss.NewStyle().Bold(true)
	statusActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusPausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusDimStyle    = lipgloss.NewStyle().Faint(true)
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show hook status",
	Long: `Show the current hook state: active or paused, the active pack,
volume, greeting mode, and when each category last played.

Use --output json or --output yaml for machine-readable output.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusOpts.output, "output", "o", "text",
		"Output format: text, json, yaml")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigStrict()
	if err != nil {
		return err
	}

	r := newRunner()
	report := statusReport{
		State:        "active",
		Enabled:      cfg.Enabled,
		ActivePack:   cfg.ActivePack,
		PackDisplay:  cfg.ActivePack,
		Volume:       cfg.Volume,
		GreetingMode: cfg.GreetingMode,
	}
	if r.Paused() {
		report.State = "paused"
	}

	if m, err := pack.LoadManifest(r.PacksDir, cfg.ActivePack); err == nil {
		report.PackDisplay = m.DisplayName
	}

	st := state.NewStore(r.StatePath, logger).Load()
	if len(st.LastPlayTime) > 0 {
		report.LastPlayed = make(map[string]string, len(st.LastPlayTime))
		for category, t := range st.LastPlayTime {
			report.LastPlayed[category] = t.Format(time.RFC3339)
		}
	}

	switch statusOpts.output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	case "text":
		printStatusText(report, st)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", statusOpts.output)
	}
}

func printStatusText(report statusReport, st *state.State) {
	stateStyle := statusActiveStyle
	if report.State == "paused" {
		stateStyle = statusPausedStyle
	}

	fmt.Printf("%s %s\n", statusTitleStyle.Render("turncue:"), stateStyle.Render(report.State))
	fmt.Printf("  pack:     %s (%s)\n", report.ActivePack, report.PackDisplay)
	fmt.Printf("  enabled:  %t, volume %.2f\n", report.Enabled, report.Volume)
	fmt.Printf("  greeting: %s\n", report.GreetingMode)

	if len(st.LastPlayTime) == 0 {
		fmt.Println(statusDimStyle.Render("  nothing played yet"))
		return
	}
	for category, t := range st.LastPlayTime {
		fmt.Printf("  last %-14s %s\n", category+":", statusDimStyle.Render(humanize.Time(t)))
	}
}
