package keeper

import (
	"fmt"
	"sort"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/algoswap/algoswap/x/dex/types"
)

// lockTable hands out one reader/writer lock per state key. Entries are
// reference counted and dropped once nobody holds or waits on them.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	rw   sync.RWMutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*lockEntry)}
}

func pairLockKey(pk types.PairKey) string {
	return "pair/" + pk.String()
}

func balanceLockKey(asset types.AssetID, account sdk.AccAddress) string {
	return fmt.Sprintf("balance/%d/%x", asset, account.Bytes())
}

func (t *lockTable) ref(key string) *lockEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.locks[key]
	if !ok {
		e = &lockEntry{}
		t.locks[key] = e
	}
	e.refs++
	return e
}

func (t *lockTable) unref(key string, e *lockEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(t.locks, key)
	}
}

// sortedUnique returns keys in a fixed global order so that writers taking
// several locks never deadlock against each other.
func sortedUnique(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	j := 0
	for i := range out {
		if i == 0 || out[i] != out[i-1] {
			out[j] = out[i]
			j++
		}
	}
	return out[:j]
}

// Lock takes the write lock of every key and returns the matching release.
func (t *lockTable) Lock(keys ...string) (unlock func()) {
	keys = sortedUnique(keys)
	entries := make([]*lockEntry, len(keys))
	for i, key := range keys {
		entries[i] = t.ref(key)
		entries[i].rw.Lock()
	}
	return func() {
		for i := len(keys) - 1; i >= 0; i-- {
			entries[i].rw.Unlock()
			t.unref(keys[i], entries[i])
		}
	}
}

// RLock takes the read lock of every key and returns the matching release.
func (t *lockTable) RLock(keys ...string) (unlock func()) {
	keys = sortedUnique(keys)
	entries := make([]*lockEntry, len(keys))
	for i, key := range keys {
		entries[i] = t.ref(key)
		entries[i].rw.RLock()
	}
	return func() {
		for i := len(keys) - 1; i >= 0; i-- {
			entries[i].rw.RUnlock()
			t.unref(keys[i], entries[i])
		}
	}
}

// size reports how many keys currently have holders or waiters.
func (t *lockTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.locks)
}
