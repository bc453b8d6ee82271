package account

import "errors"

var (
	// ErrNotFound is returned when no account matches a lookup.
	ErrNotFound = errors.New("account not found")

	// ErrInvalidCredentials deliberately covers both "no such user" and
	// "wrong password" so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Directory is the in-memory account store. It is constructed once at
// startup and handed to every consumer; state is never global.
//
// The directory is not safe for concurrent use. The server model is a
// single logical thread of execution per request with no suspension
// inside directory operations, so no locking is needed here.
type Directory struct {
	accounts map[string]*Account
	order    []string
}

func NewDirectory() *Directory {
	return &Directory{
		accounts: make(map[string]*Account),
	}
}

// Create inserts or overwrites the account for id. There is no
// uniqueness check on id: the last write wins, and an overwritten entry
// keeps its original position in insertion order. Callers are expected
// to supply a stable, already-unique id.
func (d *Directory) Create(id string, profile UserProfile) *Account {
	acc := &Account{id: id, profile: profile}

	if _, exists := d.accounts[id]; !exists {
		d.order = append(d.order, id)
	}
	d.accounts[id] = acc

	return acc
}

func (d *Directory) FindByID(id string) (*Account, error) {
	acc, ok := d.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return acc, nil
}

// FindByUsername scans all accounts in insertion order and returns the
// first match. Duplicate usernames are not prevented; the oldest entry
// wins.
func (d *Directory) FindByUsername(username string) (*Account, error) {
	for _, id := range d.order {
		if acc := d.accounts[id]; acc.profile.Username == username {
			return acc, nil
		}
	}
	return nil, ErrNotFound
}

// ValidateCredentials checks a login/password pair. The comparison is
// exact and case-sensitive. The failure is uniform: a missing user and
// a wrong password are indistinguishable to the caller.
func (d *Directory) ValidateCredentials(login, password string) (*Account, error) {
	acc, err := d.FindByUsername(login)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if acc.profile.Password != password {
		return nil, ErrInvalidCredentials
	}
	return acc, nil
}

// UpdatePartial merges the supplied patch into the existing profile.
// Fields not present in the patch are untouched.
func (d *Directory) UpdatePartial(id string, patch ProfilePatch) (*Account, error) {
	acc, ok := d.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	acc.profile = patch.apply(acc.profile)
	return acc, nil
}

// Len reports the number of stored accounts.
func (d *Directory) Len() int {
	return len(d.accounts)
}
