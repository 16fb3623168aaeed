package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"smartsave-go/internal/app"
	analyticsdomain "smartsave-go/internal/domain/analytics"
)

var flagJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print goals, streak, badges and reminders",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the dashboard as JSON")
	rootCmd.AddCommand(summaryCmd)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3AA99F"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#879A39"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6F6E69"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DA702C"))
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#575653")).Padding(0, 1)
	progressLen = 20
)

func runSummary(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := app.OpenStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	service := analyticsdomain.NewService(store.Repo, log)
	dashboard := service.Dashboard(cmd.Context())

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dashboard)
	}
	return renderSummary(os.Stdout, dashboard)
}

func renderSummary(w io.Writer, dashboard analyticsdomain.Dashboard) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SMARTSAVE"))
	b.WriteString(fmt.Sprintf("  🔥 %d day streak  ·  ₹%d saved\n", dashboard.Streak, dashboard.TotalSaved))
	if dashboard.Reminder != "" {
		b.WriteString(warnStyle.Render(dashboard.Reminder))
		b.WriteString("\n")
	}

	if len(dashboard.Goals) == 0 {
		b.WriteString(mutedStyle.Render("No goals yet. Create one with the web app."))
		b.WriteString("\n")
	}

	for _, goal := range dashboard.Goals {
		name := goal.Name
		if goal.Icon != "" {
			name = goal.Icon + " " + name
		}
		status := goal.Projection
		if goal.IsCompleted {
			status = doneStyle.Render(status)
		}

		card := strings.Join([]string{
			titleStyle.Render(name),
			fmt.Sprintf("%s %3d%%  ₹%d / ₹%d", progressBar(goal.Percent), goal.Percent, goal.Saved, goal.Target),
			goal.Nudge,
			status + mutedStyle.Render("  · deadline "+goal.Deadline),
		}, "\n")
		b.WriteString(cardStyle.Render(card))
		b.WriteString("\n")
	}

	if len(dashboard.Badges) > 0 {
		names := make([]string, 0, len(dashboard.Badges))
		for _, badge := range dashboard.Badges {
			names = append(names, badge.Icon+" "+badge.Name)
		}
		b.WriteString("Badges: " + strings.Join(names, ", ") + "\n")
	}

	if len(dashboard.Monthly) > 0 {
		months := make([]string, 0, len(dashboard.Monthly))
		for _, month := range dashboard.Monthly {
			months = append(months, fmt.Sprintf("%s ₹%d", month.Label, month.Total))
		}
		b.WriteString(mutedStyle.Render("Monthly: " + strings.Join(months, "  ")))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func progressBar(percent int) string {
	filled := percent * progressLen / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", progressLen-filled) + "]"
}
