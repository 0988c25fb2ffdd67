package profile

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/goliatone/go-cvgen/pkg/store"
)

func TestSave_ShallowMergeLaterWritesWin(t *testing.T) {
	m := New(WithStore(store.NewMemory()))

	if !m.Save(map[string]any{"lastname": "Doe", "phone": "555"}, KeyUser) {
		t.Fatalf("first write failed")
	}
	if !m.Save(map[string]any{"lastname": "Smith", "email": "a@b.c"}, KeyUser) {
		t.Fatalf("second write failed")
	}

	user := m.User()
	if user.Lastname != "Smith" {
		t.Fatalf("later write should win per-key, got %q", user.Lastname)
	}
	if user.Phone != "555" || user.Email != "a@b.c" {
		t.Fatalf("unrelated keys clobbered: %+v", user)
	}
}

func TestSave_WriteThenLookupRoundTrip(t *testing.T) {
	m := New(WithStore(store.NewMemory()))

	for _, key := range []Key{KeyUser, KeyTheme} {
		if !m.Save(map[string]any{"marker": string(key)}, key) {
			t.Fatalf("write %q failed", key)
		}
		value, ok := m.Lookup(key)
		if !ok {
			t.Fatalf("lookup %q not found after write", key)
		}
		section, ok := value.(map[string]any)
		if !ok || section["marker"] != string(key) {
			t.Fatalf("lookup %q missing written fields: %#v", key, value)
		}
	}
}

func TestSave_UnknownKeyWritesNothing(t *testing.T) {
	backing := store.NewMemory()
	m := New(WithStore(backing))
	m.Save(map[string]any{"lastname": "Doe"}, KeyUser)
	before, _ := backing.Get(DefaultStorageKey)

	if m.Save(map[string]any{"x": 1}, Key("nonexistent")) {
		t.Fatalf("expected write to an unknown key to fail")
	}
	after, _ := backing.Get(DefaultStorageKey)
	if before != after {
		t.Fatalf("failed write must not persist anything")
	}
}

func TestSave_NestedKeyFoundByScan(t *testing.T) {
	m := New(WithStore(store.NewMemory()))
	m.userSection()["extra"] = map[string]any{"inner": map[string]any{}}

	if !m.Save(map[string]any{"v": "x"}, Key("inner")) {
		t.Fatalf("expected scan to find the nested section")
	}
	value, ok := m.Lookup(Key("inner"))
	if !ok {
		t.Fatalf("nested section not found after write")
	}
	section := value.(map[string]any)
	if section["v"] != "x" {
		t.Fatalf("nested write lost: %#v", section)
	}
}

func TestSave_PresentButEmptyValueOwnsTheKey(t *testing.T) {
	m := New(WithStore(store.NewMemory()))
	// existence check, not truthiness: an empty-string section still
	// receives the merge
	m.userSection()["note"] = ""

	if !m.Save(map[string]any{"v": "x"}, Key("note")) {
		t.Fatalf("expected existence check to accept falsy section")
	}
	note, _ := m.userSection()["note"].(map[string]any)
	if diff := cmp.Diff(map[string]any{"v": "x"}, note); diff != "" {
		t.Fatalf("merge over falsy section mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup_RootReturnsWholeDocument(t *testing.T) {
	m := New(WithStore(store.NewMemory()))
	value, ok := m.Lookup(KeyRoot)
	if !ok {
		t.Fatalf("root lookup must always succeed")
	}
	doc, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("root lookup should return the document tree")
	}
	if _, ok := doc[string(KeyUser)]; !ok {
		t.Fatalf("document missing user section")
	}
}

func TestLookup_EmptyMapIsAValidMatch(t *testing.T) {
	m := New(WithStore(store.NewMemory()))
	m.userSection()["empty"] = map[string]any{}

	value, ok := m.Lookup(Key("empty"))
	if !ok {
		t.Fatalf("empty object must count as found, not absent")
	}
	if section, _ := value.(map[string]any); len(section) != 0 {
		t.Fatalf("unexpected content: %#v", value)
	}

	if _, ok := m.Lookup(Key("missing")); ok {
		t.Fatalf("absent key must report not found")
	}
}

func TestSave_PersistsWriteThrough(t *testing.T) {
	backing := store.NewMemory()
	m := New(WithStore(backing))

	m.Save(map[string]any{"lastname": "Doe"}, KeyUser)

	raw, ok := backing.Get(DefaultStorageKey)
	if !ok {
		t.Fatalf("expected document persisted under the well-known key")
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("persisted document not JSON: %v", err)
	}
	user, _ := doc["user"].(map[string]any)
	if user["lastname"] != "Doe" {
		t.Fatalf("persisted document missing the write: %s", raw)
	}
}
