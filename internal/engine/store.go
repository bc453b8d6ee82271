package engine

import (
	"context"
	"time"
)

// Interaction is the serializable state of one paused authorization
// attempt, as the engine persists it between requests.
type Interaction struct {
	UID              string            `json:"uid"`
	Prompt           Prompt            `json:"prompt"`
	Params           map[string]string `json:"params"`
	SessionAccountID string            `json:"sessionAccountId,omitempty"`
	Result           Result            `json:"result,omitempty"`
	Finished         bool              `json:"finished"`
	ExpiresAt        time.Time         `json:"expiresAt"`
}

// Store defines how the engine keeps interaction state. Implementations
// must treat the state as opaque; expired interactions read as missing.
type Store interface {
	Create(ctx context.Context, in Interaction) error
	Get(ctx context.Context, uid string) (*Interaction, error)
	Update(ctx context.Context, in Interaction) error
	Delete(ctx context.Context, uid string) error
}
