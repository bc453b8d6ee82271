package engine

import (
	"context"
	"fmt"
	"time"
)

// MemoryStore keeps interaction state in a plain map. It is the default
// store for a single-process deployment; state is lost on restart.
type MemoryStore struct {
	interactions map[string]Interaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		interactions: make(map[string]Interaction),
	}
}

func (m *MemoryStore) Create(ctx context.Context, in Interaction) error {
	if in.UID == "" {
		return fmt.Errorf("engine: missing interaction uid")
	}
	m.interactions[in.UID] = in
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, uid string) (*Interaction, error) {
	in, ok := m.interactions[uid]
	if !ok {
		return nil, nil // not found
	}
	if time.Now().After(in.ExpiresAt) {
		delete(m.interactions, uid)
		return nil, nil
	}
	return &in, nil
}

func (m *MemoryStore) Update(ctx context.Context, in Interaction) error {
	if _, ok := m.interactions[in.UID]; !ok {
		return fmt.Errorf("engine: cannot update unknown interaction %s", in.UID)
	}
	m.interactions[in.UID] = in
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, uid string) error {
	delete(m.interactions, uid)
	return nil
}
