package account

import "fmt"

// UserProfile holds everything we know about a user, including the
// plaintext password. This service is a mock identity provider: the
// password is stored and compared as-is, on purpose.
type UserProfile struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	Password  string   `json:"password"`
}

// Validate checks that every profile field is present. Roles may be an
// empty list but must be supplied.
func (p UserProfile) Validate() error {
	switch {
	case p.FirstName == "":
		return fmt.Errorf("account: firstName is required")
	case p.LastName == "":
		return fmt.Errorf("account: lastName is required")
	case p.Username == "":
		return fmt.Errorf("account: username is required")
	case p.Email == "":
		return fmt.Errorf("account: email is required")
	case p.Roles == nil:
		return fmt.Errorf("account: roles is required")
	case p.Password == "":
		return fmt.Errorf("account: password is required")
	}
	return nil
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	Username  *string   `json:"username"`
	Email     *string   `json:"email"`
	Roles     *[]string `json:"roles"`
	Password  *string   `json:"password"`
}

func (p ProfilePatch) apply(profile UserProfile) UserProfile {
	if p.FirstName != nil {
		profile.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		profile.LastName = *p.LastName
	}
	if p.Username != nil {
		profile.Username = *p.Username
	}
	if p.Email != nil {
		profile.Email = *p.Email
	}
	if p.Roles != nil {
		profile.Roles = *p.Roles
	}
	if p.Password != nil {
		profile.Password = *p.Password
	}
	return profile
}

// Claims is the public projection of a profile. There is no password
// field here by construction, so it can never leak into a token.
type Claims struct {
	Sub       string   `json:"sub"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
}

// Account pairs an opaque identifier with a profile. By this system's
// convention the id equals the username at creation time, but nothing
// in the directory requires that.
type Account struct {
	id      string
	profile UserProfile
}

func (a *Account) AccountID() string {
	return a.id
}

func (a *Account) Profile() UserProfile {
	return a.profile
}

// Claims projects the profile into OIDC claims. The subject is always
// the account id, regardless of anything stored in the profile.
func (a *Account) Claims() Claims {
	return Claims{
		Sub:       a.id,
		FirstName: a.profile.FirstName,
		LastName:  a.profile.LastName,
		Username:  a.profile.Username,
		Email:     a.profile.Email,
		Roles:     a.profile.Roles,
	}
}
