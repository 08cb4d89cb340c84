package repo

import "errors"

var (
	ErrUnknownArch      = errors.New("unknown architecture")
	ErrInvalidDate      = errors.New("invalid snapshot date")
	ErrInvalidReference = errors.New("invalid registry reference")
)
