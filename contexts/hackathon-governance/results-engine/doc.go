// Package resultsengine aggregates hackathon votes into ranked, funded
// results. It owns the project catalog projection, the deterministic
// compute-results pass, and the read side consumed by settlement.
package resultsengine
