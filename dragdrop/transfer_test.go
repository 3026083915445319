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

package dragdrop_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/urx/apis"
	"dirpx.dev/urx/dragdrop"
	"dirpx.dev/urx/errdefs"
	"dirpx.dev/urx/ownership"
)

type view struct{ name string }

type recorder struct {
	connected    []any
	disconnected []any
	connectErr   error
}

func (r *recorder) Connect(obj any) error {
	if r.connectErr != nil {
		return r.connectErr
	}
	r.connected = append(r.connected, obj)
	return nil
}

func (r *recorder) Disconnect(obj any) error {
	r.disconnected = append(r.disconnected, obj)
	return nil
}

func (*recorder) ResponsibleForRefresh() bool { return false }

// resource is a payload value that counts disposals.
type resource struct{ disposed int }

func (r *resource) Dispose() { r.disposed++ }

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("close failed") }

func setup(t *testing.T) (*dragdrop.Transfer, apis.OwnershipTable, *view, *recorder, *bytes.Buffer) {
	t.Helper()
	owners := ownership.New()
	origin := &recorder{}
	obj := &view{name: "readme"}
	require.NoError(t, owners.Set(obj, origin))
	logs := &bytes.Buffer{}
	tr := dragdrop.New(owners, dragdrop.WithLogger(log.New(logs)))
	return tr, owners, obj, origin, logs
}

func TestDragDrop_TransfersOwnership(t *testing.T) {
	tr, owners, obj, origin, _ := setup(t)
	target := &recorder{}

	assert.False(t, tr.IsDragging(obj))
	require.NoError(t, tr.Drag(obj))

	assert.Equal(t, []any{obj}, origin.disconnected)
	owner, err := owners.Get(obj)
	require.NoError(t, err)
	assert.Same(t, tr, owner)
	assert.True(t, tr.IsActive())
	assert.True(t, tr.IsDragging(obj))
	assert.False(t, tr.IsDragging(&view{name: "readme"}))

	require.NoError(t, tr.Drop(target))
	owner, err = owners.Get(obj)
	require.NoError(t, err)
	assert.Same(t, target, owner)
	assert.Equal(t, []any{obj}, target.connected)
	assert.False(t, tr.IsActive())
	assert.False(t, tr.IsDragging(obj))
}

func TestDrag_Rejects(t *testing.T) {
	tr, _, obj, _, _ := setup(t)

	assert.ErrorIs(t, tr.Drag(nil), dragdrop.ErrNilObject)
	assert.ErrorIs(t, tr.Drag(&view{}), errdefs.ErrConsistency, "an object without owner cannot be dragged")
	assert.False(t, tr.IsActive())

	require.NoError(t, tr.Drag(obj))
	assert.ErrorIs(t, tr.Drag(obj), dragdrop.ErrInProgress)
}

func TestDrop_Rejects(t *testing.T) {
	tr, owners, obj, _, _ := setup(t)

	assert.ErrorIs(t, tr.Drop(&recorder{}), dragdrop.ErrNotDragging)
	require.NoError(t, tr.Drag(obj))
	assert.ErrorIs(t, tr.Drop(nil), dragdrop.ErrNilConnector)

	refusing := &recorder{connectErr: errors.New("no room")}
	assert.Error(t, tr.Drop(refusing))
	assert.True(t, tr.IsDragging(obj), "a refused drop keeps the drag active")
	owner, _ := owners.Get(obj)
	assert.Same(t, tr, owner)
}

func TestPayload_Lifecycle(t *testing.T) {
	tr, _, obj, _, _ := setup(t)
	title := dragdrop.NewKey[string]("title")
	count := dragdrop.NewKey[int]("count")

	assert.ErrorIs(t, dragdrop.SetPayload(tr, title, "x"), dragdrop.ErrNotDragging)
	assert.False(t, dragdrop.HasPayload(tr, title))

	require.NoError(t, tr.Drag(obj))
	require.NoError(t, dragdrop.SetPayload(tr, title, "Read me"))

	got, err := dragdrop.Payload(tr, title)
	require.NoError(t, err)
	assert.Equal(t, "Read me", got)
	assert.True(t, dragdrop.HasPayload(tr, title))

	n, err := dragdrop.Payload(tr, count)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, dragdrop.HasPayload(tr, count))

	other := dragdrop.NewKey[string]("title")
	assert.False(t, dragdrop.HasPayload(tr, other), "keys compare by identity")

	_, err = dragdrop.Payload[string](tr, nil)
	assert.ErrorIs(t, err, dragdrop.ErrNilKey)

	require.NoError(t, tr.Drop(&recorder{}))
	_, err = dragdrop.Payload(tr, title)
	assert.ErrorIs(t, err, dragdrop.ErrNotDragging)
}

func TestPayload_InterfaceNil(t *testing.T) {
	tr, _, obj, _, _ := setup(t)
	key := dragdrop.NewKey[error]("err")
	require.NoError(t, tr.Drag(obj))
	require.NoError(t, dragdrop.SetPayload(tr, key, nil))

	got, err := dragdrop.Payload(tr, key)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.True(t, dragdrop.HasPayload(tr, key))
}

func TestDrop_DoesNotDisposePayload(t *testing.T) {
	tr, _, obj, _, _ := setup(t)
	key := dragdrop.NewKey[*resource]("res")
	res := &resource{}

	require.NoError(t, tr.Drag(obj))
	require.NoError(t, dragdrop.SetPayload(tr, key, res))
	require.NoError(t, tr.Drop(&recorder{}))

	assert.Zero(t, res.disposed)
}

func TestForcedDisconnect_DisposesAndNotifies(t *testing.T) {
	tr, _, obj, _, logs := setup(t)
	res := dragdrop.NewKey[*resource]("res")
	closer := dragdrop.NewKey[failingCloser]("closer")
	plain := dragdrop.NewKey[string]("plain")
	value := &resource{}

	closed := 0
	tr.OnDraggedClosed(func() { closed++ })
	cancelled := 0
	cancel := tr.OnDraggedClosed(func() { cancelled++ })
	cancel()

	require.NoError(t, tr.Drag(obj))
	require.NoError(t, dragdrop.SetPayload(tr, res, value))
	require.NoError(t, dragdrop.SetPayload(tr, closer, failingCloser{}))
	require.NoError(t, dragdrop.SetPayload(tr, plain, "text"))

	require.NoError(t, tr.Disconnect(obj))

	assert.Equal(t, 1, value.disposed)
	assert.Equal(t, 1, closed)
	assert.Zero(t, cancelled)
	assert.False(t, tr.IsActive())
	assert.False(t, dragdrop.HasPayload(tr, res))
	assert.Contains(t, logs.String(), "close failed")

	assert.ErrorIs(t, tr.Disconnect(obj), dragdrop.ErrNotDragging)
	assert.Equal(t, 1, value.disposed)
	assert.Equal(t, 1, closed)
}

func TestForcedDisconnect_DisposesSharedValueOnce(t *testing.T) {
	tr, _, obj, _, _ := setup(t)
	first := dragdrop.NewKey[*resource]("first")
	second := dragdrop.NewKey[*resource]("second")
	shared := &resource{}

	require.NoError(t, tr.Drag(obj))
	require.NoError(t, dragdrop.SetPayload(tr, first, shared))
	require.NoError(t, dragdrop.SetPayload(tr, second, shared))
	require.NoError(t, tr.Disconnect(obj))

	assert.Equal(t, 1, shared.disposed)
}

func TestForcedDisconnect_SubscriberPanicEndsDrag(t *testing.T) {
	tr, _, obj, _, logs := setup(t)
	tr.OnDraggedClosed(func() { panic("subscriber boom") })
	after := 0
	tr.OnDraggedClosed(func() { after++ })

	require.NoError(t, tr.Drag(obj))
	require.NotPanics(t, func() { require.NoError(t, tr.Disconnect(obj)) })

	assert.False(t, tr.IsActive())
	assert.Equal(t, 1, after, "later subscribers still run")
	assert.Contains(t, logs.String(), "subscriber boom")
}

func TestDisconnect_WrongObject(t *testing.T) {
	tr, _, obj, _, _ := setup(t)
	require.NoError(t, tr.Drag(obj))

	assert.ErrorIs(t, tr.Disconnect(&view{}), dragdrop.ErrNotDragged)
	assert.True(t, tr.IsDragging(obj))
}

func TestTransfer_IsNotADestination(t *testing.T) {
	tr, _, obj, _, _ := setup(t)

	assert.ErrorIs(t, tr.Connect(obj), dragdrop.ErrNotDestination)
	assert.False(t, tr.ResponsibleForRefresh())
}
