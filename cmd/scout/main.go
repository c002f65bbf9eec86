// Command scout is the football-scout CLI: scrape player data, compare
// players, rank hidden gems, and ask the AI assistant questions. The serve
// subcommand runs the dashboard HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yotambraun/football-scout-rag/internal/api"
	"github.com/yotambraun/football-scout-rag/internal/app"
	"github.com/yotambraun/football-scout-rag/internal/config"
	"github.com/yotambraun/football-scout-rag/internal/domain"
	"github.com/yotambraun/football-scout-rag/internal/util"
	"go.uber.org/zap"
)

const version = "1.0.0"

var (
	container *app.Container

	scoutConcurrency int
	gemsMaxValue     float64
	gemsMinApps      int
	compareAge       int
	askPlayers       []string
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "football-scout",
		Short:   "AI-powered football scouting agent",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			buildCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			container, err = app.Build(buildCtx, cfg, logger)
			if err != nil {
				logger.Error("Failed to assemble services", zap.Error(err))
				return err
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if container != nil {
				container.Close()
				_ = container.Logger.Sync()
			}
		},
	}

	rootCmd.AddCommand(
		newScoutCommand(),
		newAnalyzeCommand(),
		newCompareCommand(),
		newCompareAgeCommand(),
		newGemsCommand(),
		newAskCommand(),
		newServeCommand(),
	)

	return rootCmd
}

func newScoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scout <player> [player...]",
		Short: "Scout one or more players and print their reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := container.Agent.ScoutPlayers(cmd.Context(), args, scoutConcurrency)

			failed := 0
			for _, result := range results {
				if result.Err != nil {
					failed++
					fmt.Fprintf(os.Stderr, "Error scouting %q: %v\n", result.Name, result.Err)
					continue
				}
				fmt.Println(result.Report.Text)
			}

			if failed == len(results) {
				return fmt.Errorf("all %d scouts failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&scoutConcurrency, "concurrency", "c", 3, "concurrent scouts")
	return cmd
}

func newAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <player>",
		Short: "Ask the assistant for a scouting analysis of one player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scoutMissing(cmd.Context(), args); err != nil {
				return err
			}

			analysis, err := container.Agent.AnalyzePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(analysis)
			return nil
		},
	}
}

func newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <player> <player> [player...]",
		Short: "Compare players side by side (scouts any that are missing)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scoutMissing(cmd.Context(), args); err != nil {
				return err
			}

			comparison, err := container.Agent.ComparePlayers(args)
			if err != nil {
				return err
			}

			printComparison(comparison)
			return nil
		},
	}
}

func newCompareAgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare-age <player> <player>",
		Short: "Compare two players at the same approximated age",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scoutMissing(cmd.Context(), args); err != nil {
				return err
			}

			report, err := container.Agent.CompareAtAge(cmd.Context(), args[0], args[1], compareAge)
			if err != nil {
				return err
			}

			fmt.Println(report)
			return nil
		},
	}
	cmd.Flags().IntVarP(&compareAge, "age", "a", 21, "target age for the comparison")
	return cmd
}

func newGemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gems [player...]",
		Short: "Rank undervalued players (scouts any names given first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if err := scoutMissing(cmd.Context(), args); err != nil {
					return err
				}
			}

			gems := container.Agent.FindHiddenGems(gemsMaxValue, gemsMinApps)
			if len(gems) == 0 {
				fmt.Println("No hidden gems found. Try scouting more players first.")
				return nil
			}

			fmt.Println("Hidden Gems - Undervalued Players")
			for i, gem := range gems {
				stats := gem.Player.NormalizedStats
				fmt.Printf("%2d. %-25s %-20s %-12s goals/90 %.2f  assists/90 %.2f  score %.2f\n",
					i+1,
					gem.Player.Info.Name,
					valueOrNA(gem.Player.Info.CurrentClub),
					valueOrNA(gem.Player.Info.MarketValue),
					stats.GoalsPer90,
					stats.AssistsPer90,
					gem.Score,
				)
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&gemsMaxValue, "max-value", "m", 5_000_000, "maximum market value to consider")
	cmd.Flags().IntVarP(&gemsMinApps, "min-apps", "n", 10, "minimum career appearances")
	return cmd
}

func newAskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant a question about scouted players",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(askPlayers) > 0 {
				if err := scoutMissing(cmd.Context(), askPlayers); err != nil {
					return err
				}
			}

			answer, err := container.Agent.AnswerQuestion(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Println(answer)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&askPlayers, "players", "p", nil, "players to scout before asking")
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serverCfg := api.ServerConfig{
				Port:         container.Config.Server.Port,
				AllowOrigins: container.Config.Server.AllowOrigins,
			}
			var historyReader api.HistoryReader
			if container.History != nil {
				historyReader = container.History
			}
			handler := api.NewHandler(container.Agent, historyReader, container.Logger)
			router := api.NewRouter(handler, serverCfg)

			return api.Serve(ctx, router, serverCfg, container.Logger)
		},
	}
}

// scoutMissing fetches any of the given players not yet in the catalog.
func scoutMissing(ctx context.Context, names []string) error {
	missing := make([]string, 0, len(names))
	for _, name := range names {
		if container.Agent.GetScoutedPlayer(name) == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	results := container.Agent.ScoutPlayers(ctx, missing, 3)
	for _, result := range results {
		if result.Err != nil {
			return fmt.Errorf("failed to scout %q: %w", result.Name, result.Err)
		}
	}
	return nil
}

func printComparison(comparison *domain.Comparison) {
	fmt.Println("Player Comparison:")
	fmt.Println()

	for _, row := range comparison.Info {
		fmt.Printf("%s:\n", row.Label)
		for i, value := range row.Values {
			fmt.Printf("  - %s: %s\n", comparison.Players[i], value)
		}
		fmt.Println()
	}

	fmt.Println("Performance Metrics:")
	for _, row := range comparison.Metrics {
		fmt.Printf("\n%s:\n", row.Label)
		for i, value := range row.Values {
			fmt.Printf("  - %s: %s\n", comparison.Players[i], value)
		}
	}
}

func valueOrNA(s string) string {
	if s == "" || s == domain.NotFound {
		return "N/A"
	}
	return s
}
