package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/unitconv"
	"github.com/alexshd/unitconv/measures"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "units.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	orig := measures.Default()
	require.NoError(t, store.Save(ctx, orig))

	reg, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, orig.Measures(), reg.Measures())
	assert.Equal(t, orig.Abbreviations(), reg.Abbreviations())

	wantList, err := orig.List("")
	require.NoError(t, err)
	gotList, err := reg.List("")
	require.NoError(t, err)
	assert.Equal(t, wantList, gotList)

	f, err := unitconv.Convert(reg, 100, "C", "F")
	require.NoError(t, err)
	assert.InDelta(t, 212, f, 1e-9)

	k, err := unitconv.Convert(reg, 32, "F", "K")
	require.NoError(t, err)
	assert.InDelta(t, 273.15, k, 1e-9)

	// time has one system and no anchor table; that must survive storage.
	m, ok := reg.Measure("time")
	require.True(t, ok)
	assert.Empty(t, m.Anchors)
}

func TestStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Save(ctx, measures.Default()))
	require.NoError(t, store.Save(ctx, unitconv.MustRegistry(measures.Mass())))

	reg, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mass"}, reg.Measures())
}

func TestStore_EmptyEdgeSurvives(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	orig := unitconv.MustRegistry(unitconv.Measure{
		Name: "q",
		Systems: []unitconv.System{
			{Name: "a", Units: []unitconv.Unit{{Abbr: "ua", Singular: "A", Plural: "As", ToAnchor: 1}}},
			{Name: "b", Units: []unitconv.Unit{{Abbr: "ub", Singular: "B", Plural: "Bs", ToAnchor: 1}}},
		},
		Anchors: []unitconv.Anchor{{From: "a", To: "b"}},
	})
	require.NoError(t, store.Save(ctx, orig))

	reg, err := store.Load(ctx)
	require.NoError(t, err)

	_, err = unitconv.Convert(reg, 1, "ua", "ub")
	var missing *unitconv.MissingAnchorError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, unitconv.EmptyAnchorEdge, missing.Problem)
}

func TestStore_OpaqueTransform(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Save(ctx, unitconv.MustRegistry(measures.Length())))

	opaque := unitconv.MustRegistry(unitconv.Measure{
		Name: "q",
		Systems: []unitconv.System{
			{Name: "a", Units: []unitconv.Unit{{Abbr: "ua", ToAnchor: 1}}},
			{Name: "b", Units: []unitconv.Unit{{Abbr: "ub", ToAnchor: 1}}},
		},
		Anchors: []unitconv.Anchor{{From: "a", To: "b", Edge: unitconv.Transform(func(x float64) float64 { return x })}},
	})
	err := store.Save(ctx, opaque)
	assert.ErrorIs(t, err, ErrOpaqueTransform)

	// The failed save rolled back; the previous registry is intact.
	reg, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"length"}, reg.Measures())
}

func TestStore_LoadEmpty(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, unitconv.ErrConfig)
	assert.Contains(t, err.Error(), "no registry")
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}
