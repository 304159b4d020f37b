package usecase

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrDuplicateBid = errors.New("duplicate bid")
	ErrInternal     = errors.New("internal error")
)
