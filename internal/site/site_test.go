package site

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/helmarr/helmarr/internal/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func TestStore_AddAndGet(t *testing.T) {
	store := NewStore(setupTestDB(t))

	s := &Site{Name: "NewSite", Domain: "new.example.org", URL: "https://new.example.org", Priority: 1, Active: true}
	require.NoError(t, store.Add(s))
	assert.NotZero(t, s.ID)

	got, err := store.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "NewSite", got.Name)
	assert.True(t, got.Active)

	byDomain, err := store.GetByDomain("new.example.org")
	require.NoError(t, err)
	assert.Equal(t, s.ID, byDomain.ID)
}

func TestStore_DuplicateDomain(t *testing.T) {
	store := NewStore(setupTestDB(t))

	require.NoError(t, store.Add(&Site{Name: "A", Domain: "dup.example.org"}))
	err := store.Add(&Site{Name: "B", Domain: "dup.example.org"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestStore_ListOrderedByPriority(t *testing.T) {
	store := NewStore(setupTestDB(t))

	require.NoError(t, store.Add(&Site{Name: "Low", Domain: "low.example.org", Priority: 9}))
	require.NoError(t, store.Add(&Site{Name: "High", Domain: "high.example.org", Priority: 1}))

	sites, err := store.List()
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "High", sites[0].Name)
	assert.Equal(t, "Low", sites[1].Name)
}

func TestStore_UpdateAndDelete(t *testing.T) {
	store := NewStore(setupTestDB(t))

	s := &Site{Name: "Old", Domain: "old.example.org"}
	require.NoError(t, store.Add(s))

	s.Name = "Renamed"
	require.NoError(t, store.Update(s))
	got, err := store.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	require.NoError(t, store.Delete(s.ID))
	_, err = store.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(s.ID), ErrNotFound)
	assert.ErrorIs(t, store.Update(s), ErrNotFound)
}

func TestStore_Reset(t *testing.T) {
	store := NewStore(setupTestDB(t))

	require.NoError(t, store.Add(&Site{Name: "A", Domain: "a.example.org"}))
	require.NoError(t, store.Add(&Site{Name: "B", Domain: "b.example.org"}))
	require.NoError(t, store.Reset())

	sites, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "leon site", NormalizeName("  Léon   Site "))
	assert.Equal(t, "oldsite", NormalizeName("OldSite"))
}

func TestClosest(t *testing.T) {
	candidates := []string{"OurBits", "RedLeaves", "HDHome"}

	got, ok := Closest("ourbits", candidates)
	require.True(t, ok)
	assert.Equal(t, "OurBits", got)

	// A typo still clears the threshold.
	got, ok = Closest("OurBitz", candidates)
	require.True(t, ok)
	assert.Equal(t, "OurBits", got)

	// Nothing similar: no suggestion.
	_, ok = Closest("zzqqxx", candidates)
	assert.False(t, ok)

	_, ok = Closest("", candidates)
	assert.False(t, ok)
}
