package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"standings/cmd/standings/ui"
	"standings/internal/logging"
	"standings/internal/planner"
	"standings/internal/syndicate"
)

var (
	currentFlag map[string]string
	farmFlag    map[string]string
)

// projectCmd prints the projection for a farming plan
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project standings after a farming plan",
	Long: `Applies the farming plan through the syndicate relationship matrix and
shows the net change and projected total for every syndicate.

Example:
  standings project --current veil=100000,loka=40000 --farm steel=10000`,
	RunE: runProject,
}

// recommendCmd prints the next farming step
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend which syndicate to farm next",
	RunE:  runRecommend,
}

func init() {
	for _, c := range []*cobra.Command{projectCmd, recommendCmd} {
		c.Flags().StringToStringVar(&currentFlag, "current", nil, "Current standings, e.g. steel=50000,veil=100000 (defaults from config)")
	}
	projectCmd.Flags().StringToStringVar(&farmFlag, "farm", nil, "Standing to farm per syndicate, e.g. suda=20000")
}

func runProject(cmd *cobra.Command, args []string) error {
	log := logging.For(logger, cfg.Logging, logging.CategoryCLI)

	current, err := currentStandings(currentFlag)
	if err != nil {
		return err
	}
	farm, err := applyFactionValues(syndicate.Standings{}, farmFlag)
	if err != nil {
		return err
	}
	for _, v := range farm {
		if v < 0 {
			return fmt.Errorf("farm amounts must not be negative")
		}
	}

	plan := planner.FarmPlan(farm)
	p := planner.Project(current, plan)
	log.Debug("projected plan", zap.Any("plan", plan))

	fmt.Fprint(cmd.OutOrStdout(), ui.ProjectionTable(ui.DefaultStyles(), current, plan, p))
	return nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	log := logging.For(logger, cfg.Logging, logging.CategoryCLI)

	current, err := currentStandings(currentFlag)
	if err != nil {
		return err
	}
	rec := planner.Recommend(current)
	log.Debug("recommendation", zap.Stringer("rule", rec.Rule), zap.Float64("amount", rec.Amount))

	styles := ui.DefaultStyles()
	fmt.Fprint(cmd.OutOrStdout(), ui.StandingsTable(styles, "Current standings", current))
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), ui.RecommendationView(styles, rec))
	return nil
}
