package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mgrinnell/lectern/internal/api"
	"github.com/mgrinnell/lectern/internal/service"
)

// OpsAPI covers the operational endpoints the CLI calls directly.
type OpsAPI interface {
	GetHealth(ctx context.Context) (*api.Health, error)
	GetStorageStats(ctx context.Context) (*api.StorageStats, error)
	FetchAudio(ctx context.Context, packageID, filename string, w io.Writer) (int64, error)
	AudioURL(packageID, filename string) string
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Generation service.GenerationService
	Packages   service.PackageService
	Review     service.ReviewService
	Revisions  service.RevisionService
	Curriculum service.CurriculumService
	Ops        OpsAPI

	Config api.Config

	// IsInteractive reports whether stdin is a terminal; interactive
	// forms and the review dashboard require it.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "lectern" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "lectern",
		Short:         "Generate and review educational content packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation on a terminal drops into the review
			// dashboard; anywhere else it prints usage.
			if app.interactive() {
				return runReviewDashboard(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newGenerateCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newDeleteCmd(app),
		newQueueCmd(app),
		newReviewCmd(app),
		newReviseCmd(app),
		newRevisionsCmd(app),
		newCurriculumCmd(app),
		newAudioCmd(app),
		newHealthCmd(app),
		newStatsCmd(app),
	)

	return root
}
