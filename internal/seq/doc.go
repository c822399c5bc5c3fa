// Package seq provides order-preserving primitives over fixed-length
// sequences: classification, stable partitioning, filtering, zipping and
// left folds.
//
// Partition computes the classification mask once, derives every kept slot's
// compacted position from a single prefix count (IndexMap), then gathers the
// matched and unmatched slots in one pass.
package seq
