package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/remat"
	"github.com/aretw0/remat/pkg/domain"
	"github.com/aretw0/remat/pkg/events"
	"github.com/aretw0/remat/pkg/transforms"
)

// NormalizeOptions contains the configuration for the normalize command.
type NormalizeOptions struct {
	Config Config

	Input  string
	Output string
	Text   bool

	Scale            float64
	Prune            bool
	ApplyAttributes  bool
	StampSourceFiles bool

	Quiet bool
}

// Normalize opens a document, queues the requested transforms and writes the
// result.
func Normalize(ctx context.Context, opts NormalizeOptions) error {
	logger := createLogger(opts.Config.Verbose)

	cat, err := LoadCatalog(ctx, opts.Config)
	if err != nil {
		return err
	}

	ch := events.NewChannel()
	var normalized int
	ch.Subscribe(func(evt domain.Event) {
		if evt.Type == domain.EventNormalized {
			normalized += evt.Count
		}
	})

	sessOpts := []remat.Option{
		remat.WithCatalog(cat),
		remat.WithLogger(logger),
		remat.WithEventChannel(ch),
	}
	if opts.Config.GameDir != "" {
		sessOpts = append(sessOpts, remat.WithGameDir(opts.Config.GameDir))
	}

	sess, err := remat.Open(opts.Input, sessOpts...)
	if err != nil {
		return err
	}

	if opts.Scale != 0 {
		sess.Queue(transforms.ScaleScene{Factor: opts.Scale})
	}
	if opts.ApplyAttributes {
		sess.Queue(transforms.ApplyGameAttributes{})
	}
	if opts.StampSourceFiles {
		sess.Queue(transforms.StampSourceFiles{})
	}
	if opts.Prune {
		sess.Queue(transforms.PruneUnusedMaterials{})
	}

	if err := sess.Save(ctx, opts.Output, opts.Text); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	if !opts.Quiet {
		printSystemMessage("Normalized %d of %d materials.", normalized, len(sess.Document().Materials))
		printSystemMessage("Wrote '%s'.", opts.Output)
	}
	return nil
}
