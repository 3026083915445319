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

// Package dragdrop implements the connector that owns an object while it is
// dragged between placements.
//
// A Transfer is Idle until Drag takes an object away from its current
// connector and records the Transfer as its owner. Drop hands the object to
// the target connector. When the shell closes the object mid-gesture, the
// Transfer is disconnected like any other owner: it disposes the payload,
// notifies the OnDraggedClosed subscribers and becomes Idle again.
package dragdrop

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/errdefs"
	uref "dirpx.dev/urx/utils/reflect"
)

var (
	// ErrNilObject is returned when Drag is called with a nil object.
	ErrNilObject = fmt.Errorf("urx(dragdrop): %w: nil object provided", errdefs.ErrValidation)
	// ErrNilConnector is returned when Drop is called with a nil target.
	ErrNilConnector = fmt.Errorf("urx(dragdrop): %w: nil connector provided", errdefs.ErrValidation)
	// ErrNilKey is returned when a payload operation receives a nil key.
	ErrNilKey = fmt.Errorf("urx(dragdrop): %w: nil payload key provided", errdefs.ErrValidation)
	// ErrInProgress is returned by Drag while another drag is active.
	ErrInProgress = fmt.Errorf("urx(dragdrop): %w: drag operation is in progress", errdefs.ErrConsistency)
	// ErrNotDragging is returned by operations that need an active drag.
	ErrNotDragging = fmt.Errorf("urx(dragdrop): %w: there is no active drag operation", errdefs.ErrConsistency)
	// ErrNotDragged is returned when the transfer is disconnected from an
	// object it does not hold.
	ErrNotDragged = fmt.Errorf("urx(dragdrop): %w: object is not being dragged", errdefs.ErrConsistency)
	// ErrNotDestination is returned by Connect: objects enter a transfer only
	// through Drag.
	ErrNotDestination = fmt.Errorf("urx(dragdrop): %w: drag transfer is not a placement", errdefs.ErrConsistency)
)

// Option customizes a Transfer.
type Option func(*Transfer)

// WithLogger sets the logger used for payload disposal failures.
func WithLogger(l *log.Logger) Option {
	return func(t *Transfer) {
		if l != nil {
			t.logger = l
		}
	}
}

// Transfer is the drag-and-drop connector. It is not safe for concurrent use.
type Transfer struct {
	owners  apis.OwnershipTable
	logger  *log.Logger
	dragged any
	payload map[any]any
	closed  map[int]func()
	nextSub int
}

// Ensure Transfer implements apis.Connector.
var _ apis.Connector = (*Transfer)(nil)

// New constructs an idle Transfer that records ownership in owners.
func New(owners apis.OwnershipTable, opts ...Option) *Transfer {
	t := &Transfer{
		owners:  owners,
		logger:  log.Default().WithPrefix("urx"),
		payload: make(map[any]any),
		closed:  make(map[int]func()),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsActive reports whether a drag is in progress.
func (t *Transfer) IsActive() bool { return t.dragged != nil }

// IsDragging reports whether obj is the object currently dragged.
func (t *Transfer) IsDragging(obj any) bool {
	if !t.IsActive() || !uref.Comparable(obj) {
		return false
	}
	return obj == t.dragged
}

// Drag disconnects obj from its current owner and takes ownership of it.
func (t *Transfer) Drag(obj any) error {
	if obj == nil {
		return ErrNilObject
	}
	if t.IsActive() {
		return ErrInProgress
	}

	owner, err := t.owners.Get(obj)
	if err != nil {
		return err
	}
	if err := owner.Disconnect(obj); err != nil {
		return fmt.Errorf("urx(dragdrop): disconnect %s: %w", uref.NameOf(obj), err)
	}
	if err := t.owners.Set(obj, t); err != nil {
		return err
	}
	t.dragged = obj
	return nil
}

// Drop connects the dragged object to target and makes target its owner.
// The payload is cleared without being disposed. If target refuses the
// object the drag stays active.
func (t *Transfer) Drop(target apis.Connector) error {
	if uref.IsNil(target) {
		return ErrNilConnector
	}
	if !t.IsActive() {
		return ErrNotDragging
	}

	dragged := t.dragged
	if err := target.Connect(dragged); err != nil {
		return fmt.Errorf("urx(dragdrop): connect %s: %w", uref.NameOf(dragged), err)
	}
	if err := t.owners.Set(dragged, target); err != nil {
		return err
	}
	t.reset()
	return nil
}

// Connect always fails: nothing is placed onto a transfer outside Drag.
func (t *Transfer) Connect(any) error { return ErrNotDestination }

// Disconnect is called by the shell when the dragged object is closed during
// the gesture. It disposes the payload, notifies the OnDraggedClosed
// subscribers and ends the drag. Payload disposal failures are logged.
func (t *Transfer) Disconnect(obj any) error {
	if !t.IsActive() {
		return ErrNotDragging
	}
	if !t.IsDragging(obj) {
		return fmt.Errorf("%w: %s", ErrNotDragged, uref.NameOf(obj))
	}

	defer t.reset()

	var errs []error
	disposed := make(map[any]struct{}, len(t.payload))
	for _, v := range t.payload {
		if uref.Comparable(v) {
			if _, seen := disposed[v]; seen {
				continue
			}
			disposed[v] = struct{}{}
		}
		if _, err := apis.Dispose(v); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		t.logger.Error("error when disposing drag payload", "object", uref.NameOf(obj), "err", err)
	}

	for _, fn := range t.subscribers() {
		t.notify(obj, fn)
	}
	return nil
}

// notify runs fn and logs a panic instead of propagating it.
func (t *Transfer) notify(obj any, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("error in dragged closed subscriber", "object", uref.NameOf(obj), "err", r)
		}
	}()
	fn()
}

// ResponsibleForRefresh is false: a transfer never displays the object.
func (t *Transfer) ResponsibleForRefresh() bool { return false }

// OnDraggedClosed subscribes fn to forced disconnects. The returned function
// cancels the subscription.
func (t *Transfer) OnDraggedClosed(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	id := t.nextSub
	t.nextSub++
	t.closed[id] = fn
	return func() { delete(t.closed, id) }
}

// subscribers returns the subscribers in subscription order.
func (t *Transfer) subscribers() []func() {
	out := make([]func(), 0, len(t.closed))
	for id := 0; id < t.nextSub; id++ {
		if fn, ok := t.closed[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (t *Transfer) reset() {
	t.dragged = nil
	clear(t.payload)
}
