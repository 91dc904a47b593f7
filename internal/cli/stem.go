package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/devindex/internal/analyzer"
	stemuc "github.com/kailas-cloud/devindex/internal/usecase/stem"
)

func newStemCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stem [corpus]",
		Short: "Add stemmed description and keyword fields to a corpus file",
		Long: `Stem rewrites the corpus file in place, adding stemmed token fields to every
record whose stems are missing or stale. Running it twice changes nothing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Build.Output
			if len(args) > 0 {
				path = args[0]
			}

			bar := newProgress(cmd.ErrOrStderr(), "Stemming")
			svc := stemuc.New(analyzer.New(), a.cfg.Stem.Workers).OnProgress(bar.update)
			stats, err := svc.ProcessFile(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "records: %d, stemmed: %d, unchanged: %d\n",
				stats.Total, stats.Stemmed, stats.Skipped)
			return nil
		},
	}
}
