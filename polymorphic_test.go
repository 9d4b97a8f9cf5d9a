package engram_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/engram"
	"github.com/hupe1980/engram/testutil"
)

func newFigureRegistry(t *testing.T) *engram.Registry {
	t.Helper()

	reg := engram.NewRegistry()
	require.NoError(t, testutil.RegisterFigures(reg))
	return reg
}

func TestPolymorphic_RoundTrip(t *testing.T) {
	reg := newFigureRegistry(t)

	figures := []testutil.Figure{
		&testutil.Circle{Radius: 2, Label: "wheel"},
		&testutil.Rect{W: 3, H: 4, Tags: []string{"a", "b"}},
		nil,
	}

	w := engram.New(engram.WithRegistry(reg), engram.WithVersion(1))
	for _, f := range figures {
		require.NoError(t, w.WritePolymorphic(f))
	}

	r := engram.FromBytes(w.Bytes(), engram.WithRegistry(reg), engram.WithVersion(1))
	for _, want := range figures {
		got, err := engram.ReadPolymorphic[testutil.Figure](r)
		require.NoError(t, err)
		if want == nil {
			assert.Nil(t, got)
			continue
		}
		require.NotNil(t, got)
		assert.Equal(t, want.TypeID(), got.TypeID())
		assert.Equal(t, want, got)
		assert.InDelta(t, want.Area(), got.Area(), 1e-9)
	}
	assert.Equal(t, 0, r.Remaining())
}

func TestPolymorphic_WireLayout(t *testing.T) {
	reg := newFigureRegistry(t)

	c := engram.New(engram.WithRegistry(reg))
	require.NoError(t, c.WritePolymorphic(&testutil.Circle{Radius: 1}))

	id := string(testutil.CircleTypeID)
	// null flag + id + float64 + empty label
	assert.Equal(t, 1+8+len(id)+8+8, c.Len())
	assert.Equal(t, byte(1), c.Bytes()[0])
	assert.Equal(t, id, string(c.Bytes()[9:9+len(id)]))

	nilC := engram.New(engram.WithRegistry(reg))
	require.NoError(t, nilC.WritePolymorphic(nil))
	assert.Equal(t, []byte{0}, nilC.Bytes())

	// A typed nil pointer is written as null too.
	var circle *testutil.Circle
	typedNil := engram.New(engram.WithRegistry(reg))
	require.NoError(t, typedNil.WritePolymorphic(circle))
	assert.Equal(t, []byte{0}, typedNil.Bytes())
}

func TestPolymorphic_VersionIsPassedThrough(t *testing.T) {
	reg := newFigureRegistry(t)
	rect := &testutil.Rect{W: 1, H: 2, Tags: []string{"dropped"}}

	v0 := engram.New(engram.WithRegistry(reg))
	require.NoError(t, v0.WritePolymorphic(rect))
	v1 := engram.New(engram.WithRegistry(reg), engram.WithVersion(1))
	require.NoError(t, v1.WritePolymorphic(rect))
	assert.Less(t, v0.Len(), v1.Len())

	got, err := engram.ReadPolymorphic[*testutil.Rect](v0)
	require.NoError(t, err)
	assert.Equal(t, float32(2), got.H)
	assert.Nil(t, got.Tags)
}

func TestPolymorphic_UnknownTypeOnWrite(t *testing.T) {
	var logs bytes.Buffer
	logger := engram.NewLogger(slog.NewTextHandler(&logs, nil))

	c := engram.New(engram.WithRegistry(newFigureRegistry(t)), engram.WithLogger(logger))
	err := c.WritePolymorphic(&testutil.Unregistered{})

	require.Error(t, err)
	assert.ErrorIs(t, err, engram.ErrUnknownType)
	assert.True(t, engram.IsFatal(err))
	assert.Equal(t, 0, c.Len())
	assert.Contains(t, logs.String(), "unknown polymorphic type")
}

func TestPolymorphic_UnknownTypeOnRead(t *testing.T) {
	// Written against a registry that knows the type, read against one that does not.
	w := engram.New(engram.WithRegistry(newFigureRegistry(t)))
	require.NoError(t, w.WritePolymorphic(&testutil.Circle{Radius: 1}))

	m := &engram.BasicMetricsCollector{}
	r := engram.FromBytes(w.Bytes(), engram.WithRegistry(engram.NewRegistry()), engram.WithMetricsCollector(m))

	got, err := engram.ReadPolymorphic[testutil.Figure](r)
	require.Error(t, err)
	assert.Nil(t, got)

	var ute *engram.UnknownTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, testutil.CircleTypeID, ute.ID)
	assert.True(t, engram.IsFatal(err))
	assert.Equal(t, int64(1), m.GetStats().UnknownTypeErrors)
}

type notAFigure interface {
	engram.Polymorphic
	Perimeter() float64
}

func TestPolymorphic_TypeMismatch(t *testing.T) {
	reg := newFigureRegistry(t)

	c := engram.New(engram.WithRegistry(reg))
	require.NoError(t, c.WritePolymorphic(&testutil.Circle{Radius: 1}))

	_, err := engram.ReadPolymorphic[notAFigure](c)
	assert.ErrorIs(t, err, engram.ErrTypeMismatch)

	c.Rewind()
	_, err = engram.ReadPolymorphic[*testutil.Rect](c)
	assert.ErrorIs(t, err, engram.ErrTypeMismatch)
}

func TestPolymorphic_Truncated(t *testing.T) {
	reg := newFigureRegistry(t)

	w := engram.New(engram.WithRegistry(reg))
	require.NoError(t, w.WritePolymorphic(&testutil.Circle{Radius: 1, Label: "x"}))

	data := w.Bytes()
	for n := range len(data) {
		r := engram.FromBytes(data[:n], engram.WithRegistry(reg))
		_, err := r.ReadPolymorphic()
		assert.ErrorIs(t, err, engram.ErrUnderflow, "prefix of %d bytes", n)
		assert.False(t, engram.IsFatal(err))
	}
}

func TestPolymorphicOf(t *testing.T) {
	reg := newFigureRegistry(t)
	shape := engram.SliceOf(engram.PolymorphicOf[testutil.Figure]())

	want := []testutil.Figure{
		&testutil.Rect{W: 1, H: 1},
		nil,
		&testutil.Circle{Radius: 0.5},
	}

	c := engram.New(engram.WithRegistry(reg))
	require.NoError(t, engram.Write(c, shape, want))

	got, err := engram.Read(c, shape)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPolymorphic_DefaultRegistry(t *testing.T) {
	if !engram.DefaultRegistry().Contains(testutil.CircleTypeID) {
		require.NoError(t, engram.Register[testutil.Circle](nil))
	}

	c := engram.New()
	require.NoError(t, c.WritePolymorphic(&testutil.Circle{Radius: 3}))

	got, err := c.ReadPolymorphic()
	require.NoError(t, err)
	assert.Equal(t, &testutil.Circle{Radius: 3}, got)
}
