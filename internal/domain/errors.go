package domain

import "errors"

var (
	ErrIncompleteSelection = errors.New("not all attributes selected")
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrIndexOutOfRange     = errors.New("line item index out of range")
	ErrUnknownCommand      = errors.New("unknown cart command")
)
