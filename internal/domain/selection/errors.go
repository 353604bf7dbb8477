package selection

import "errors"

// ErrPromptClosed is returned when the prompter can no longer supply answers.
var ErrPromptClosed = errors.New("prompt closed")
