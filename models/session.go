package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Client storage keys.
const (
	KeyAuthToken = "authToken"
	KeyUsername  = "username"
	KeyUserData  = "userData"
	KeyToast     = "toast"
)

// StorageEntry is one key of a browser's persistent storage. Values are
// JSON encoded, the way the page scripts stringify them.
type StorageEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SID       string         `gorm:"column:sid;size:64;not null;uniqueIndex:idx_storage_sid_key" json:"sid"`
	Key       string         `gorm:"column:storage_key;size:64;not null;uniqueIndex:idx_storage_sid_key" json:"key"`
	Value     datatypes.JSON `gorm:"column:value" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (StorageEntry) TableName() string { return "client_storage" }

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,notblank"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Token    string          `json:"token"`
	Username string          `json:"username"`
	User     json.RawMessage `json:"usuario"`
}

// UserData is the session user kept under the userData key, including the
// role and the profile specific to it (tenant or owner).
type UserData struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     *Role           `json:"rol"`
	Profile  json.RawMessage `json:"perfil,omitempty"`
}
