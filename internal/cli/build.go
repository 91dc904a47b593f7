package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/devindex/internal/analyzer"
	"github.com/kailas-cloud/devindex/internal/config"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/metrics"
	"github.com/kailas-cloud/devindex/internal/repository/corpus"
	"github.com/kailas-cloud/devindex/internal/source"
	builduc "github.com/kailas-cloud/devindex/internal/usecase/build"
	stemuc "github.com/kailas-cloud/devindex/internal/usecase/stem"
)

func newBuildCommand(a *app) *cobra.Command {
	var (
		output string
		noStem bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the search corpus from every configured source",
		Long: `Build runs one builder per configured category concurrently, assembles the
documents sorted by id, fails on any id collision or unreadable source, and
writes the corpus file. The stem pass runs right after unless disabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if output == "" {
				output = a.cfg.Build.Output
			}

			builders := buildersFromConfig(a.cfg.Build.Sources)
			if len(builders) == 0 {
				return fmt.Errorf("no sources configured under build.sources")
			}

			metrics.RegisterBuildMetrics()
			res, err := builduc.New(builders...).WithWorkers(a.cfg.Build.Workers).Run(ctx)
			if err != nil {
				return fmt.Errorf("build failed: %w", err)
			}

			if err := corpus.WriteFile(output, corpus.Records(res.Documents)); err != nil {
				return err
			}
			printCounts(cmd, res.Counts)
			a.log.Info("corpus written",
				zap.String("path", output),
				zap.Int("documents", len(res.Documents)),
				zap.Duration("duration", res.Duration),
			)

			if noStem || !*a.cfg.Build.AutoStem {
				return nil
			}
			svc := stemuc.New(analyzer.New(), a.cfg.Stem.Workers)
			if _, err := svc.ProcessFile(ctx, output); err != nil {
				return fmt.Errorf("stem corpus: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "corpus file (default build.output)")
	cmd.Flags().BoolVar(&noStem, "no-stem", false, "skip the stem pass")
	return cmd
}

// buildersFromConfig creates a builder per category with a configured location.
func buildersFromConfig(src config.SourcesConfig) []builduc.Builder {
	var out []builduc.Builder
	if src.SVGIcons != "" {
		out = append(out, source.NewSVGIcons(src.SVGIcons))
	}
	if src.PNGIcons != "" {
		out = append(out, source.NewPNGIcons(src.PNGIcons))
	}
	if src.Emoji != "" {
		out = append(out, source.NewEmoji(src.Emoji))
	}
	if src.Cheatsheets.Root != "" {
		out = append(out, source.NewCheatsheets(src.Cheatsheets.Root, src.Cheatsheets.Pattern))
	}
	if src.TLDR.Root != "" {
		out = append(out, source.NewTLDR(src.TLDR.Root, src.TLDR.Pattern))
	}
	if src.MCP != "" {
		out = append(out, source.NewMCP(src.MCP))
	}
	if src.Tools != "" {
		out = append(out, source.NewTools(src.Tools))
	}
	return out
}

func printCounts(cmd *cobra.Command, counts map[category.Category]int) {
	cats := make([]category.Category, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	total := 0
	w := cmd.OutOrStdout()
	for _, c := range cats {
		fmt.Fprintf(w, "  %-12s %6d\n", c, counts[c])
		total += counts[c]
	}
	fmt.Fprintf(w, "  %-12s %6d\n", "total", total)
}
