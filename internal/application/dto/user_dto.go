package dto

import (
	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-catalog/pkg/validation"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PatchUserRequest struct {
	Name     entity.Optional[string] `json:"name"`
	Email    entity.Optional[string] `json:"email"`
	Password entity.Optional[string] `json:"password"`
}

// UserResponse deliberately has no password field.
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func validateUserFields(details map[string]string, name, email, password string) {
	validation.Check(details, "name", name, "required,notblank")
	validation.Check(details, "email", email, "required,notblank,contains=@")
	validation.Check(details, "password", password, "required,pwd")
}

func (r CreateUserRequest) Validate() error {
	details := map[string]string{}
	validateUserFields(details, r.Name, r.Email, r.Password)
	if len(details) > 0 {
		return entity.NewValidationDetails(details)
	}
	return nil
}

func (r UpdateUserRequest) Validate() error {
	details := map[string]string{}
	validateUserFields(details, r.Name, r.Email, r.Password)
	if len(details) > 0 {
		return entity.NewValidationDetails(details)
	}
	return nil
}

func (r PatchUserRequest) Validate() error {
	details := map[string]string{}
	check := func(field string, o entity.Optional[string], tag string) {
		if !o.Set {
			return
		}
		if o.Null {
			details[field] = "must not be null"
			return
		}
		validation.Check(details, field, o.Value, tag)
	}
	check("name", r.Name, "required,notblank")
	check("email", r.Email, "required,notblank,contains=@")
	check("password", r.Password, "required,pwd")
	if len(details) > 0 {
		return entity.NewValidationDetails(details)
	}
	return nil
}

func (r CreateUserRequest) ToEntity() (*entity.User, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return entity.NewUser(r.Name, r.Email, r.Password)
}

func (r PatchUserRequest) ToPatch() entity.UserPatch {
	return entity.UserPatch{Name: r.Name, Email: r.Email, Password: r.Password}
}

func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		CreatedAt: formatTime(u.CreatedAt()),
	}
}
