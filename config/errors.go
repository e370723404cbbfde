package config

import "errors"

// ErrInvalidConfig is returned by Validate and LoadFile for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")
