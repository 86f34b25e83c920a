// Package tracktable provides a trajectory assembly and spatial analytics
// engine: it groups timestamped, identified point streams into
// trajectories and computes geometric analytics over them.
//
// # Components
//
//   - point: domain-tagged points (Euclidean or terrestrial) and
//     trajectories with property maps.
//   - geom: the distance engine: great-circle and Cartesian distance,
//     bearing, speed, geodesic travel, interpolation and arc-length
//     parameterization.
//   - assemble: the streaming assembler splitting point streams on
//     temporal and spatial gaps.
//   - dgeom: distance-geometry feature vectors describing trajectory
//     shape independent of scale.
//   - median: the geometric median (Weiszfeld) solver.
//   - rtree: a bounding-box spatial index with bulk and incremental
//     construction and k-nearest-neighbor queries.
//
// # Quick Start
//
//	pipe, _ := tracktable.NewPipeline(
//	    tracktable.WithSampleCount(5),
//	    tracktable.WithAssemblerOptions(func(o *assemble.Options) {
//	        o.SeparationTime = 20 * time.Minute
//	        o.SeparationDistance = 100 // km
//	    }),
//	)
//
//	trajs, _ := pipe.Assemble(ctx, pointStream)
//	features, _ := pipe.ExtractFeatures(ctx, trajs)
//	idx, _ := pipe.BuildFeatureIndex(features)
//	similar, _ := pipe.SimilarTrajectories(ctx, idx, features[0], 10)
//
// The core performs no I/O: readers supply point streams and writers
// consume trajectories, feature vectors and query results.
package tracktable
