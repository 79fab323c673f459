package cmd

import (
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/parascale/graphkit/internal/analytics/kcore"
	"github.com/parascale/graphkit/pkg/topology"
	"github.com/parascale/graphkit/pkg/viewcache"
)

var (
	kcoreInput string
	kcoreK     int
)

var kcoreCmd = &cobra.Command{
	Use:   "kcore",
	Short: "Compute the k-core of a graph",
	RunE:  runKCore,
}

func init() {
	rootCmd.AddCommand(kcoreCmd)

	kcoreCmd.Flags().StringVarP(&kcoreInput, "input", "i", "", "Edge-list input file (required)")
	kcoreCmd.Flags().IntVar(&kcoreK, "k", 2, "Core order k")
	kcoreCmd.MarkFlagRequired("input")
}

func runKCore(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	base, err := loadEdgeListTopology(kcoreInput)
	if err != nil {
		return err
	}
	vc := newViewCache(base)
	transposed := vc.BuildOrGetEdgeShuffTopo(topology.TransposeYes, topology.EdgeSortAny)
	view := viewcache.NewUndirectedView(base, transposed)

	_, span := otel.Tracer("graphctl").Start(cmd.Context(), "kcore")
	defer span.End()

	result := kcore.Run(view, kcoreK)

	var count int
	for _, in := range result.InCurrentKCore {
		if in {
			count++
		}
	}

	log.Info("k:                 %d", kcoreK)
	log.Info("nodes in %d-core:   %d / %d", kcoreK, count, view.NumNodes())

	return nil
}
