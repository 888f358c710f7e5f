// Package votingengine implements the hackathon vote store inside the
// hackathon-governance context.
//
// The module owns one current vote per (project, voter) pair: casting again
// replaces the earlier vote in place, so there is never a vote history to
// disambiguate. Tally reads and vote.cast event emission live here; result
// computation belongs to the results-engine.
package votingengine
