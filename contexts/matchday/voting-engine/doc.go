// Package votingengine implements post-match player voting inside the
// matchday context.
//
// The module owns ballot submission (allow-list identity resolution, window
// gating, shape and roster validation, fixed-point scoring, the atomic vote
// insert) and every derived ranking read: closed-session top threes, the flat
// global ranking, and the per-match matrix. Business rules stay in the
// domain/application layers and infrastructure sits behind ports and
// adapters.
package votingengine
