package game

import "errors"

// ErrRoundNotInitialized reports a tick against a running round whose bodies are missing.
var ErrRoundNotInitialized = errors.New("round not initialized")
