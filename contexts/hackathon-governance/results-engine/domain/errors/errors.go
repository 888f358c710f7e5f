package errors

import "errors"

var (
	ErrInvalidHackathonID = errors.New("hackathon id must not be empty")
	ErrInvalidProjection  = errors.New("project projection requires project, hackathon and payout accounts")
	ErrProjectNotFound    = errors.New("project not found")
	ErrResultNotFound     = errors.New("result not found")
)
