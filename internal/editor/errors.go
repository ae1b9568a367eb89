package editor

import "errors"

// Session errors.
var (
	ErrUnknownPath    = errors.New("path is not an editable field")
	ErrUnknownSection = errors.New("unknown section")
	ErrFieldKind      = errors.New("edit does not match field kind")
	ErrInvalidOption  = errors.New("value is not an allowed option")
	ErrOutOfRange     = errors.New("value out of range")
	ErrSaving         = errors.New("save in progress")
	ErrClosed         = errors.New("session already saved")
	ErrNotEditing     = errors.New("record id can only be set on new style profiles")
	ErrNoRecord       = errors.New("gateway returned no record")
)
