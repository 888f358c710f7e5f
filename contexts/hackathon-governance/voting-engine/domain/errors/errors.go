package errors

import "errors"

var (
	ErrInvalidVoteInput = errors.New("invalid vote input")
)
