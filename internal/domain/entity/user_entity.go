package entity

import (
	"strings"
	"time"

	"github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
)

// User is the aggregate root for user domain.
// Email is always held normalized; the password never leaves the domain except
// through ToRecord.
type User struct {
	id        int64
	name      string
	email     string
	password  string
	createdAt time.Time
}

type UserPatch struct {
	Name     Optional[string]
	Email    Optional[string]
	Password Optional[string]
}

func NewUser(name, email, password string) (*User, error) {
	return newUser(0, name, email, password, time.Now().UTC())
}

func UserFromRecord(rec repository.UserRecord) (*User, error) {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return newUser(rec.ID, rec.Name, rec.Email, rec.Password, createdAt)
}

func newUser(id int64, name, email, password string, createdAt time.Time) (*User, error) {
	if err := firstErr(
		ValidateUserName(name),
		ValidateEmail(email),
		ValidatePassword(password),
	); err != nil {
		return nil, err
	}
	u := &User{
		id:        id,
		name:      strings.TrimSpace(name),
		password:  password,
		createdAt: createdAt,
	}
	u.SetEmail(email)
	return u, nil
}

func (u *User) ID() int64            { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Password is exposed for the storage conversion only; outbound shapes must not read it.
func (u *User) Password() string { return u.password }

// SetEmail assigns a normalized email without running the format rule.
func (u *User) SetEmail(email string) {
	u.email = NormalizeEmail(email)
}

// FullUpdate replaces name, email and password, or none of them.
func (u *User) FullUpdate(name, email, password string) error {
	if err := firstErr(
		ValidateUserName(name),
		ValidateEmail(email),
		ValidatePassword(password),
	); err != nil {
		return err
	}
	u.name = strings.TrimSpace(name)
	u.SetEmail(email)
	u.password = password
	return nil
}

// PartialUpdate applies only the provided fields, all-or-nothing.
// None of a user's fields can be cleared, so null is rejected everywhere.
func (u *User) PartialUpdate(patch UserPatch) error {
	next := *u

	if patch.Name.Set {
		if err := ValidateUserName(patch.Name.Value); err != nil {
			return err
		}
		next.name = strings.TrimSpace(patch.Name.Value)
	}
	if patch.Email.Set {
		if err := ValidateEmail(patch.Email.Value); err != nil {
			return err
		}
		next.SetEmail(patch.Email.Value)
	}
	if patch.Password.Set {
		if patch.Password.Null {
			return NewValidationError("password", "password is required")
		}
		if err := ValidatePassword(patch.Password.Value); err != nil {
			return err
		}
		next.password = patch.Password.Value
	}

	*u = next
	return nil
}

func (u *User) ToRecord() repository.UserRecord {
	rec := repository.UserRecord{
		Name:     u.name,
		Email:    u.email,
		Password: u.password,
	}
	rec.CreatedAt = u.createdAt
	if u.id > 0 {
		rec.ID = u.id
	}
	return rec
}
