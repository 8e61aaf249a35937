package ui

import "errors"

var (
	ErrAlreadyHasParent  = errors.New("widget already has a parent")
	ErrDuplicateID       = errors.New("id already in use")
	ErrNilWidget         = errors.New("widget is nil")
	ErrEmptyID           = errors.New("id is empty")
	ErrMinMaxNeedsParent = errors.New("min/max requires a parent window")
	ErrNotAttached       = errors.New("widget is not attached to a manager")
	ErrTooManyEventTypes = errors.New("no event type ids left")
	ErrUnknownTimer      = errors.New("unknown timer")
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrOutOfRange        = errors.New("value out of range")
	ErrNotFound          = errors.New("not found")
	ErrNilArgument       = errors.New("required argument is nil")
	ErrSeparator         = errors.New("separator must follow an item")
	ErrTreeHasRoot       = errors.New("tree already has a root node")
)
