package models

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	RoleID   int64  `json:"rolId"`
	Active   bool   `json:"activo"`
}

func (u User) RecordID() int64 { return u.ID }

type UserPayload struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	RoleID   int64   `json:"rolId"`
	Active   bool    `json:"activo"`
	Password *string `json:"password,omitempty"`
}

type UserForm struct {
	Username string `form:"username" validate:"required,notblank,min=3"`
	Email    string `form:"email" validate:"required,email"`
	RoleID   string `form:"rolId" validate:"required,number"`
	Active   bool   `form:"activo"`
	Password string `form:"password" validate:"omitempty,min=6"`
}
