package creation

import "errors"

var (
	ErrItemNotFound   = errors.New("gallery item not found")
	ErrPromptNotFound = errors.New("prompt not found")
)
