package models

import "context"

type User struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Ada"`
	Bio  string `json:"bio" example:"mathematician"`
}

// UserInput is the body accepted by create and update.
type UserInput struct {
	Name string `json:"name" example:"Ada" swagger:"required"`
	Bio  string `json:"bio" example:"mathematician" swagger:"required"`
}

// Validate reports whether both fields are present. Only an absent or
// empty value counts as missing.
func (in UserInput) Validate() bool {
	return in.Name != "" && in.Bio != ""
}

// UserRepository returns (nil, nil) from FindByID, Remove and Update when
// the id does not resolve to a record.
type UserRepository interface {
	Find(ctx context.Context) ([]*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Insert(ctx context.Context, in UserInput) (*User, error)
	Remove(ctx context.Context, id int64) (*User, error)
	Update(ctx context.Context, id int64, in UserInput) (*User, error)
}
