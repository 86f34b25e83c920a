package tracktable

import (
	"context"
	"iter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sandialabs/tracktable-sub003/assemble"
	"github.com/sandialabs/tracktable-sub003/dgeom"
	"github.com/sandialabs/tracktable-sub003/point"
	"github.com/sandialabs/tracktable-sub003/rtree"
)

const defaultSampleCount = 5

// Pipeline couples the trajectory assembler, the distance-geometry
// extractor and the spatial index into one analytics flow: point stream in,
// trajectories, feature vectors and similarity queries out.
//
// A Pipeline is safe for sequential use. Assembly runs must not overlap;
// queries against a built index may run concurrently.
type Pipeline struct {
	logger      *Logger
	metrics     MetricsCollector
	concurrency int
	sampleCount int
	assembler   *assemble.Assembler
}

// NewPipeline creates a pipeline.
func NewPipeline(optFns ...Option) (*Pipeline, error) {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		concurrency:      1,
		sampleCount:      defaultSampleCount,
	}
	for _, fn := range optFns {
		fn(&o)
	}

	asm, err := assemble.New(o.assemblerOptions...)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		logger:      o.logger,
		metrics:     o.metricsCollector,
		concurrency: o.concurrency,
		sampleCount: o.sampleCount,
		assembler:   asm,
	}, nil
}

// Assemble drains a point stream into trajectories, including the flushed
// tails at stream end.
func (p *Pipeline) Assemble(ctx context.Context, points iter.Seq[point.Point]) ([]*point.Trajectory, error) {
	start := time.Now()
	consumed := 0
	counted := func(yield func(point.Point) bool) {
		for pt := range points {
			consumed++
			if !yield(pt) {
				return
			}
		}
	}

	trajs, err := p.assembler.Assemble(counted)
	err = translateError(err)
	p.metrics.RecordAssemble(consumed, len(trajs), time.Since(start), err)
	p.logger.LogAssemble(ctx, consumed, len(trajs), p.assembler.Skipped(), err)
	return trajs, err
}

// ExtractFeatures computes the distance-geometry feature vector of every
// trajectory, in parallel up to the configured concurrency. The result is
// index-aligned with the input.
func (p *Pipeline) ExtractFeatures(ctx context.Context, trajs []*point.Trajectory) ([][]float64, error) {
	start := time.Now()
	features := make([][]float64, len(trajs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, traj := range trajs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fv, err := dgeom.DistanceGeometryByDistance(traj, p.sampleCount)
			if err != nil {
				return err
			}
			features[i] = fv
			return nil
		})
	}

	err := translateError(g.Wait())
	p.metrics.RecordExtract(len(trajs), time.Since(start), err)
	p.logger.LogExtract(ctx, len(trajs), p.sampleCount, err)
	if err != nil {
		return nil, err
	}
	return features, nil
}

// BuildFeatureIndex bulk-loads a spatial index over feature vectors. The
// returned IDs from queries are positions in the features slice.
func (p *Pipeline) BuildFeatureIndex(features [][]float64) (*rtree.RTree, error) {
	dim := dgeom.FeatureLength(p.sampleCount)
	idx, err := rtree.Construct(features, func(o *rtree.Options) {
		o.Dimension = dim
	})
	return idx, translateError(err)
}

// SimilarTrajectories returns the IDs of the k indexed trajectories whose
// feature vectors are closest to the query vector.
func (p *Pipeline) SimilarTrajectories(ctx context.Context, idx *rtree.RTree, query []float64, k int) ([]uint32, error) {
	start := time.Now()
	ids, err := idx.Nearest(query, k)
	err = translateError(err)
	p.metrics.RecordQuery(k, time.Since(start), err)
	p.logger.LogQuery(ctx, k, len(ids), err)
	return ids, err
}
