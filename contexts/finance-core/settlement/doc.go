// Package settlement moves approved funding out of the hackathon pool. It
// debits the pool, credits the project's contributor and maintainer accounts
// per the computed split, records one SplitPayment row per attempt and
// compensates the pool whenever a payout cannot be completed.
package settlement
