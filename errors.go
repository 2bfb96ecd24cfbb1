// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paving

import (
	"errors"
	"fmt"
)

// Common errors returned by paving.
var (
	// ErrUnsupportedCamera is returned when a world-scale repeat is requested
	// for a camera that is neither perspective nor orthographic.
	ErrUnsupportedCamera = errors.New("paving: unsupported camera type")

	// ErrInvalidDimensions is returned when a canvas size is not positive.
	ErrInvalidDimensions = errors.New("paving: invalid dimensions")

	// ErrUnknownBond is returned by ParseBond for unrecognised names.
	ErrUnknownBond = errors.New("paving: unknown bond")
)

// ConfigurationError reports a fatal configuration problem detected before
// any drawing happens. It unwraps to ErrUnsupportedCamera.
type ConfigurationError struct {
	// Camera is the kind of the offending camera ("<nil>" when absent).
	Camera string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnsupportedCamera, e.Camera)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrUnsupportedCamera
}
