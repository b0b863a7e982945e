package service

import (
	"errors"
	"fmt"
)

// The service layer reports exactly two expected failure kinds; any
// other error is an underlying storage failure and propagates wrapped.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
)

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
