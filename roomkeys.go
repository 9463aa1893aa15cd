package e2ee

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
	"github.com/idan2025/tor-chat-app-sub000/keystore"
)

// GenerateRoomKey creates a fresh symmetric room key, text-encoded. Pure
// computation: storing it and distributing it are separate, deliberate
// steps.
func GenerateRoomKey() (string, error) {
	key, err := crypto.RandomBytes(crypto.KeySize)
	if err != nil {
		return "", wrapCryptoError("generate room key", err)
	}
	return crypto.ToBase64(key), nil
}

// loadRoomKeyMap reads the persisted room-key map. A device with no
// stored map gets an empty one. Callers hold k.mu.
func (k *Keyring) loadRoomKeyMap() (map[string]string, error) {
	record, err := k.store.Get(roomKeysStorageKey)
	if errors.Is(err, keystore.ErrKeyNotFound) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, wrapStorageError("load room keys", err)
	}

	keys := make(map[string]string)
	if err := json.Unmarshal(record, &keys); err != nil {
		return nil, fmt.Errorf("%w: room key record: %v", ErrInvalidPayload, err)
	}
	return keys, nil
}

// saveRoomKeyMap persists the room-key map. Callers hold k.mu.
func (k *Keyring) saveRoomKeyMap(keys map[string]string) error {
	record, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("marshal room keys: %w", err)
	}
	if err := k.store.Put(roomKeysStorageKey, record); err != nil {
		return wrapStorageError("store room keys", err)
	}
	return nil
}

// StoreRoomKey persists key as the room key for roomID, replacing any
// existing key for that room. The write lock is held across the whole
// read-modify-write, and the cache is updated only after the persist
// succeeds, so cache and store never diverge.
func (k *Keyring) StoreRoomKey(roomID, key string) error {
	if roomID == "" {
		return fmt.Errorf("room id is required")
	}
	if _, err := decodeKey(key); err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return ErrKeyringClosed
	}

	keys, err := k.loadRoomKeyMap()
	if err != nil {
		return err
	}
	keys[roomID] = key
	if err := k.saveRoomKeyMap(keys); err != nil {
		return err
	}
	k.roomKeys[roomID] = key

	k.log.Debugf("stored room key for %s", roomID)
	return nil
}

// RoomKey returns the key for roomID. A room this device holds no key
// for is reported as ok=false, not an error: membership without a key is
// a normal state between joining a room and receiving its key.
func (k *Keyring) RoomKey(roomID string) (key string, ok bool, err error) {
	k.mu.RLock()
	if k.closed {
		k.mu.RUnlock()
		return "", false, ErrKeyringClosed
	}
	if key, ok := k.roomKeys[roomID]; ok {
		k.mu.RUnlock()
		return key, true, nil
	}
	k.mu.RUnlock()

	// Cache miss: consult the persisted map, filling the cache on a hit
	// so reopened keyrings warm up as rooms are touched.
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return "", false, ErrKeyringClosed
	}
	if key, ok := k.roomKeys[roomID]; ok {
		return key, true, nil
	}

	keys, err := k.loadRoomKeyMap()
	if err != nil {
		return "", false, err
	}
	key, ok = keys[roomID]
	if !ok {
		return "", false, nil
	}
	k.roomKeys[roomID] = key
	return key, true, nil
}

// DeleteRoomKey removes the key for roomID from the store and the cache.
// Deleting a key this device does not hold is not an error.
func (k *Keyring) DeleteRoomKey(roomID string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return ErrKeyringClosed
	}

	keys, err := k.loadRoomKeyMap()
	if err != nil {
		return err
	}
	if _, exists := keys[roomID]; !exists {
		delete(k.roomKeys, roomID)
		return nil
	}
	delete(keys, roomID)
	if err := k.saveRoomKeyMap(keys); err != nil {
		return err
	}
	delete(k.roomKeys, roomID)

	k.log.Debugf("deleted room key for %s", roomID)
	return nil
}

// ClearRoomKeys removes every room key from the store and the cache.
// Used on logout and account wipe.
func (k *Keyring) ClearRoomKeys() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return ErrKeyringClosed
	}

	if err := k.store.Delete(roomKeysStorageKey); err != nil {
		return wrapStorageError("clear room keys", err)
	}
	k.roomKeys = make(map[string]string)

	k.log.Debugf("cleared all room keys")
	return nil
}

// RoomIDs returns the sorted identifiers of every room this device holds
// a key for.
func (k *Keyring) RoomIDs() ([]string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.closed {
		return nil, ErrKeyringClosed
	}

	keys, err := k.loadRoomKeyMap()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	for id := range keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
