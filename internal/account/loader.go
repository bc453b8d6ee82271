package account

import (
	"encoding/json"
	"fmt"
	"os"
)

// InitialUser is one record of the initial-users file: a full profile
// plus the account id to store it under.
type InitialUser struct {
	ID string `json:"id"`
	UserProfile
}

// LoadInitialUsers reads a JSON array of initial users and inserts each
// one into the directory, in source order.
//
// Validation is all-or-nothing: an unreadable file, malformed JSON or a
// single invalid record fails the whole load before any account is
// created. The caller treats the returned error as fatal.
func LoadInitialUsers(path string, dir *Directory) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("account: failed to read initial users file: %w", err)
	}

	var users []InitialUser
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("account: failed to parse initial users JSON: %w", err)
	}

	for i, u := range users {
		if u.ID == "" {
			return fmt.Errorf("account: invalid initial user at index %d: id is required", i)
		}
		if err := u.UserProfile.Validate(); err != nil {
			return fmt.Errorf("account: invalid initial user at index %d: %w", i, err)
		}
	}

	for _, u := range users {
		dir.Create(u.ID, u.UserProfile)
	}

	return nil
}
