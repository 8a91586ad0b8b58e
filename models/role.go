package models

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

func (r Role) RecordID() int64 { return r.ID }
