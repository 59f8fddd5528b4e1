package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/diset"
	"github.com/Sumatoshi-tech/intervals/pkg/intervalio"
	"github.com/Sumatoshi-tech/intervals/pkg/observability"
)

const opStoreReplay = "store.replay"

// NewStoreCommand creates the store replay command.
func NewStoreCommand(opts *GlobalOptions) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "store <document|->",
		Short: "Replay operations into a disjoint interval store",
		Long: `Apply the document's "ops" in order to an empty store of closed integer
ranges and print the resulting ranges and the count of covered integers.

With --seed the intervals of every list are added first, each half-open
[start, end) becoming the closed range [start, end-1].`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, observability.ModeBatch, func(ctx context.Context, s *session) error {
				doc, err := s.load(ctx, args[0])
				if err != nil {
					return err
				}

				var store *diset.Store

				runErr := s.run(ctx, opStoreReplay, len(doc.Ops), func(context.Context) (int, error) {
					store = replayDocument(doc, seed)

					return store.Len(), nil
				})
				if runErr != nil {
					return runErr
				}

				s.logger.DebugContext(ctx, "store replayed", "store", fmt.Sprint(store))

				return s.renderer.Store(store)
			})
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "add the document's lists before replaying ops")

	return cmd
}

func replayDocument(doc *intervalio.Document, seed bool) *diset.Store {
	if !seed {
		return intervalio.Replay(doc.Ops)
	}

	store := diset.New()

	for _, list := range doc.PlainLists() {
		for _, iv := range list {
			if iv.Valid() {
				store.AddRange(iv.Start, iv.End-1)
			}
		}
	}

	for _, op := range doc.Ops {
		op.Apply(store)
	}

	return store
}
