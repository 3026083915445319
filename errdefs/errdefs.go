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

// Package errdefs defines the error categories shared by every urx package.
//
// Packages declare their own sentinel errors that wrap exactly one of the
// categories below, so callers can branch on the category with errors.Is
// without knowing which package produced the error:
//
//	if errors.Is(err, errdefs.ErrResolution) {
//	    // no resolver accepted the address
//	}
package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input: a bad address, an out-of-range
	// owner tag or a missing required argument.
	ErrValidation = errors.New("validation error")
	// ErrResolution marks an address no resolver could turn into a placed object.
	ErrResolution = errors.New("resolution error")
	// ErrCapacity marks exhaustion of a bounded resource such as the id pool.
	ErrCapacity = errors.New("capacity error")
	// ErrConsistency marks a protocol violation by the caller: lookups of
	// absent entries, duplicate insertions, calls in the wrong state.
	ErrConsistency = errors.New("consistency error")
	// ErrSetupMismatch marks a typed setup whose expected type the resolved
	// object does not satisfy. It is logged, never returned from an open.
	ErrSetupMismatch = errors.New("setup type mismatch")
	// ErrTeardown marks a failure while closing an opened object.
	ErrTeardown = errors.New("teardown error")
)

// ResolutionError reports an address that could not be resolved or placed.
type ResolutionError struct {
	// Address is the formatted address that failed.
	Address string
	// Reason describes which resolution step gave up.
	Reason string
	// Err is the optional underlying cause.
	Err error
}

// NewResolutionError constructs a ResolutionError for address.
func NewResolutionError(address, reason string, cause error) *ResolutionError {
	return &ResolutionError{Address: address, Reason: reason, Err: cause}
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("%s: %s (address %q)", ErrResolution, e.Reason, e.Address)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the category and the cause to errors.Is / errors.As.
func (e *ResolutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrResolution}
	}
	return []error{ErrResolution, e.Err}
}

// Consistencyf returns an error in the consistency category.
func Consistencyf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConsistency, fmt.Sprintf(format, args...))
}
