/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"errors"

	"dirpx.dev/urx/errdefs"
)

// Exit codes of the urx CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0
	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1
	// ExitValidationError indicates a malformed address or configuration.
	ExitValidationError = 2
	// ExitResolutionError indicates an address could not be opened.
	ExitResolutionError = 3
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error { return e.Err }

// exitError classifies err into an ExitError. Nil stays nil.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	code := ExitGeneralError
	switch {
	case errors.Is(err, errdefs.ErrValidation):
		code = ExitValidationError
	case errors.Is(err, errdefs.ErrResolution):
		code = ExitResolutionError
	}
	return &ExitError{Code: code, Err: err}
}
