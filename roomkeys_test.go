package e2ee

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
	"github.com/idan2025/tor-chat-app-sub000/keystore"
)

// failStore wraps a Memory store and fails writes on demand.
type failStore struct {
	*keystore.Memory
	failPuts bool
}

func (f *failStore) Put(key string, value []byte) error {
	if f.failPuts {
		return errors.New("simulated write failure")
	}
	return f.Memory.Put(key, value)
}

func mustRoomKey(t *testing.T) string {
	t.Helper()
	key, err := GenerateRoomKey()
	if err != nil {
		t.Fatalf("GenerateRoomKey() failed: %v", err)
	}
	return key
}

func TestGenerateRoomKey(t *testing.T) {
	key := mustRoomKey(t)

	raw, err := crypto.FromBase64(key)
	if err != nil {
		t.Fatalf("room key is not valid base64: %v", err)
	}
	if len(raw) != crypto.KeySize {
		t.Errorf("room key decodes to %d bytes, want %d", len(raw), crypto.KeySize)
	}
}

func TestGenerateRoomKey_Unique(t *testing.T) {
	if mustRoomKey(t) == mustRoomKey(t) {
		t.Error("two generated room keys are identical")
	}
}

func TestKeyring_StoreRoomKey_RoundTrip(t *testing.T) {
	k := newTestKeyring(t)
	key := mustRoomKey(t)

	if err := k.StoreRoomKey("room-1", key); err != nil {
		t.Fatalf("StoreRoomKey() failed: %v", err)
	}

	got, ok, err := k.RoomKey("room-1")
	if err != nil {
		t.Fatalf("RoomKey() failed: %v", err)
	}
	if !ok {
		t.Fatal("RoomKey() = ok=false for a stored room")
	}
	if got != key {
		t.Error("RoomKey() returned a different key than stored")
	}
}

func TestKeyring_RoomKey_UnknownRoom(t *testing.T) {
	k := newTestKeyring(t)

	key, ok, err := k.RoomKey("never-stored")
	if err != nil {
		t.Fatalf("RoomKey() for unknown room = %v, want nil error", err)
	}
	if ok {
		t.Error("RoomKey() = ok=true for unknown room")
	}
	if key != "" {
		t.Error("RoomKey() returned key material for unknown room")
	}
}

func TestKeyring_StoreRoomKey_Idempotent(t *testing.T) {
	k := newTestKeyring(t)
	key := mustRoomKey(t)

	if err := k.StoreRoomKey("room-1", key); err != nil {
		t.Fatalf("StoreRoomKey() failed: %v", err)
	}
	if err := k.StoreRoomKey("room-1", key); err != nil {
		t.Fatalf("second StoreRoomKey() with same key failed: %v", err)
	}

	got, ok, err := k.RoomKey("room-1")
	if err != nil || !ok {
		t.Fatalf("RoomKey() = %v, ok=%v", err, ok)
	}
	if got != key {
		t.Error("key changed across idempotent stores")
	}
}

func TestKeyring_StoreRoomKey_Replaces(t *testing.T) {
	k := newTestKeyring(t)
	first := mustRoomKey(t)
	second := mustRoomKey(t)

	if err := k.StoreRoomKey("room-1", first); err != nil {
		t.Fatalf("StoreRoomKey() failed: %v", err)
	}
	if err := k.StoreRoomKey("room-1", second); err != nil {
		t.Fatalf("StoreRoomKey() failed: %v", err)
	}

	got, ok, err := k.RoomKey("room-1")
	if err != nil || !ok {
		t.Fatalf("RoomKey() = %v, ok=%v", err, ok)
	}
	if got != second {
		t.Error("store did not replace the existing room key")
	}
}

func TestKeyring_StoreRoomKey_Invalid(t *testing.T) {
	k := newTestKeyring(t)

	t.Run("empty room id", func(t *testing.T) {
		if err := k.StoreRoomKey("", mustRoomKey(t)); err == nil {
			t.Error("StoreRoomKey() with empty room id should fail")
		}
	})

	t.Run("malformed key", func(t *testing.T) {
		if err := k.StoreRoomKey("room-1", "not a key"); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("StoreRoomKey() = %v, want ErrInvalidKey", err)
		}
	})

	t.Run("wrong size key", func(t *testing.T) {
		short := crypto.ToBase64([]byte("short"))
		if err := k.StoreRoomKey("room-1", short); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("StoreRoomKey() = %v, want ErrInvalidKey", err)
		}
	})
}

func TestKeyring_DeleteRoomKey(t *testing.T) {
	k := newTestKeyring(t)

	// Deleting a key this device never held is fine.
	if err := k.DeleteRoomKey("never-stored"); err != nil {
		t.Fatalf("DeleteRoomKey() for unknown room = %v, want nil", err)
	}

	keyA := mustRoomKey(t)
	keyB := mustRoomKey(t)
	if err := k.StoreRoomKey("room-a", keyA); err != nil {
		t.Fatalf("StoreRoomKey() failed: %v", err)
	}
	if err := k.StoreRoomKey("room-b", keyB); err != nil {
		t.Fatalf("StoreRoomKey() failed: %v", err)
	}

	if err := k.DeleteRoomKey("room-a"); err != nil {
		t.Fatalf("DeleteRoomKey() failed: %v", err)
	}

	if _, ok, _ := k.RoomKey("room-a"); ok {
		t.Error("deleted room key is still retrievable")
	}
	got, ok, err := k.RoomKey("room-b")
	if err != nil || !ok {
		t.Fatalf("RoomKey() = %v, ok=%v", err, ok)
	}
	if got != keyB {
		t.Error("deleting one room disturbed another room's key")
	}
}

func TestKeyring_ClearRoomKeys(t *testing.T) {
	k := newTestKeyring(t)

	for i := 0; i < 3; i++ {
		roomID := fmt.Sprintf("room-%d", i)
		if err := k.StoreRoomKey(roomID, mustRoomKey(t)); err != nil {
			t.Fatalf("StoreRoomKey() failed: %v", err)
		}
	}

	if err := k.ClearRoomKeys(); err != nil {
		t.Fatalf("ClearRoomKeys() failed: %v", err)
	}

	ids, err := k.RoomIDs()
	if err != nil {
		t.Fatalf("RoomIDs() failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("RoomIDs() after clear = %v, want empty", ids)
	}
	if _, ok, _ := k.RoomKey("room-0"); ok {
		t.Error("room key retrievable after ClearRoomKeys")
	}
}

func TestKeyring_RoomIDs_Sorted(t *testing.T) {
	k := newTestKeyring(t)

	for _, roomID := range []string{"charlie", "alpha", "bravo"} {
		if err := k.StoreRoomKey(roomID, mustRoomKey(t)); err != nil {
			t.Fatalf("StoreRoomKey() failed: %v", err)
		}
	}

	ids, err := k.RoomIDs()
	if err != nil {
		t.Fatalf("RoomIDs() failed: %v", err)
	}

	want := []string{"alpha", "bravo", "charlie"}
	if len(ids) != len(want) {
		t.Fatalf("RoomIDs() returned %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("RoomIDs()[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestKeyring_RoomKeysSurviveReopen(t *testing.T) {
	store := keystore.NewMemory()

	k, err := New(WithStore(store))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	key := mustRoomKey(t)
	if err := k.StoreRoomKey("room-1", key); err != nil {
		t.Fatalf("StoreRoomKey() failed: %v", err)
	}

	// A fresh keyring starts with a cold cache and must fall back to the
	// persisted map.
	k2, err := New(WithStore(store))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer k2.Close()

	got, ok, err := k2.RoomKey("room-1")
	if err != nil {
		t.Fatalf("RoomKey() failed: %v", err)
	}
	if !ok {
		t.Fatal("persisted room key not found by a fresh keyring")
	}
	if got != key {
		t.Error("persisted room key does not match")
	}
}

func TestKeyring_StoreRoomKey_FailedPersist(t *testing.T) {
	fs := &failStore{Memory: keystore.NewMemory()}
	k, err := New(WithStore(fs))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer k.Close()

	key := mustRoomKey(t)
	fs.failPuts = true

	err = k.StoreRoomKey("room-1", key)
	if err == nil {
		t.Fatal("StoreRoomKey() with failing store should report failure")
	}
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Errorf("StoreRoomKey() error = %v, want *StorageError", err)
	}

	// The cache must not have picked up the key the store refused.
	fs.failPuts = false
	if _, ok, _ := k.RoomKey("room-1"); ok {
		t.Error("cache diverged from store after failed persist")
	}
}

func TestKeyring_ConcurrentRoomKeyAccess(t *testing.T) {
	k := newTestKeyring(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			roomID := fmt.Sprintf("room-%d", n)
			key, err := GenerateRoomKey()
			if err != nil {
				t.Errorf("GenerateRoomKey() failed: %v", err)
				return
			}
			if err := k.StoreRoomKey(roomID, key); err != nil {
				t.Errorf("StoreRoomKey() failed: %v", err)
				return
			}
			got, ok, err := k.RoomKey(roomID)
			if err != nil || !ok || got != key {
				t.Errorf("RoomKey(%s) = %q, %v, %v", roomID, got, ok, err)
			}
		}(i)
	}
	wg.Wait()

	ids, err := k.RoomIDs()
	if err != nil {
		t.Fatalf("RoomIDs() failed: %v", err)
	}
	if len(ids) != 8 {
		t.Errorf("RoomIDs() returned %d ids, want 8", len(ids))
	}
}
