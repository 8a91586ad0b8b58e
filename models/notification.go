package models

type Notification struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"usuarioId"`
	Title     string `json:"titulo"`
	Message   string `json:"mensaje"`
	Type      string `json:"tipo"`
	Read      bool   `json:"leida"`
	CreatedAt string `json:"fechaCreacion"`
}

func (n Notification) RecordID() int64 { return n.ID }

type NotificationPayload struct {
	UserID  int64  `json:"usuarioId"`
	Title   string `json:"titulo"`
	Message string `json:"mensaje"`
	Type    string `json:"tipo"`
	Read    bool   `json:"leida"`
}

type NotificationForm struct {
	UserID  string `form:"usuarioId" validate:"required,number"`
	Title   string `form:"titulo" validate:"required,notblank"`
	Message string `form:"mensaje" validate:"required,notblank"`
	Type    string `form:"tipo" validate:"required,notblank"`
	Read    bool   `form:"leida"`
}
