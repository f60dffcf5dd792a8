package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dosada05/pelada/draft"
	"github.com/Dosada05/pelada/models"
	"github.com/Dosada05/pelada/services"
)

type draftOptions struct {
	rosterPath     string
	outputPath     string
	variant        string
	formationsFile string
	seed           int64
	seedSet        bool
}

func newDraftCmd() *cobra.Command {
	var opts draftOptions

	cmd := &cobra.Command{
		Use:          "draft",
		Short:        "Draw two teams from a JSON roster file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			return runDraft(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.rosterPath, "roster", "r", "players.json", "Path to a JSON array of players present today")
	cmd.Flags().StringVarP(&opts.outputPath, "out", "o", "", "Write the lineup workbook to this .xlsx path")
	cmd.Flags().StringVar(&opts.variant, "variant", draft.VariantA, "Formation variant (a or b)")
	cmd.Flags().StringVar(&opts.formationsFile, "formations", "", "YAML formation table overriding --variant")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed that reproduces an earlier draw")

	return cmd
}

func runDraft(ctx context.Context, out io.Writer, opts draftOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	data, err := os.ReadFile(opts.rosterPath)
	if err != nil {
		return fmt.Errorf("reading roster: %w", err)
	}
	var players []models.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return fmt.Errorf("parsing roster %s: %w", opts.rosterPath, err)
	}
	for i := range players {
		players[i].Normalize()
	}

	table, err := formationTable(opts.variant, opts.formationsFile)
	if err != nil {
		return err
	}

	lineupService := services.NewLineupService(draft.New(table), nil, nil, nil, logger)

	input := services.GenerateLineupInput{Players: players}
	if opts.seedSet {
		input.Seed = &opts.seed
	}
	lineup, err := lineupService.Generate(ctx, input)
	if err != nil {
		return err
	}

	if err := printLineup(out, lineup); err != nil {
		return err
	}

	if opts.outputPath == "" {
		return nil
	}
	res, err := lineupService.Export(ctx, lineup)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.outputPath, res.Data, 0644); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	fmt.Fprintf(out, "✓ Wrote %s\n", opts.outputPath)
	return nil
}

func printLineup(out io.Writer, lineup *models.Lineup) error {
	fmt.Fprintf(out, "Formação: %d por time (variante %s, semente %d)\n", lineup.FormationSize, lineup.Variant, lineup.Seed)

	for i, team := range [][]models.AssignedPlayer{lineup.Team1, lineup.Team2} {
		fmt.Fprintf(out, "\nTime %d\n", i+1)
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		total := 0
		for _, p := range team {
			fmt.Fprintf(tw, "%s\t%s\t(%s)\t%d\n", p.AssignedPosition, p.Name, p.Position, p.Skill)
			total += p.Skill
		}
		fmt.Fprintf(tw, "\t%d jogadores\t\t%d\n", len(team), total)
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
