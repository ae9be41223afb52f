package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Persister is the durable key-value slot the state tree mirrors into.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// ErrNotFound is returned by Load when no snapshot exists for the key.
var ErrNotFound = fmt.Errorf("state: snapshot not found")

// Store hands out containers keyed by session slot. It is the only place
// rehydration happens; everything after load is in-memory.
type Store struct {
	persister Persister
	notifier  Notifier
}

func NewStore(persister Persister, notifier Notifier) *Store {
	return &Store{persister: persister, notifier: notifier}
}

// Load rehydrates the container for the key. A missing snapshot, a corrupt
// payload or a schema-version mismatch all produce the default empty state
// rather than an error; the stale slot is overwritten on the next commit.
func (s *Store) Load(ctx context.Context, key string) *Container {
	container := &Container{
		key:       key,
		state:     NewState(),
		persister: s.persister,
		notifier:  s.notifier,
	}
	if s.persister == nil {
		return container
	}

	data, err := s.persister.Load(ctx, key)
	if err != nil {
		if err != ErrNotFound {
			log.Printf("state: failed to load snapshot for %q: %v", key, err)
		}
		return container
	}

	var snapshot State
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Printf("state: discarding corrupt snapshot for %q: %v", key, err)
		return container
	}
	if snapshot.Version != SchemaVersion {
		log.Printf("state: discarding snapshot for %q (schema version %d, want %d)", key, snapshot.Version, SchemaVersion)
		return container
	}

	snapshot.normalize()
	container.state = &snapshot
	return container
}

func saveSnapshot(ctx context.Context, p Persister, key string, state *State) error {
	state.Version = SchemaVersion
	state.UpdatedAt = time.Now()
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return p.Save(ctx, key, data)
}
