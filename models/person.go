package models

// Tenant is an inquilino.
type Tenant struct {
	ID        int64  `json:"id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	DNI       string `json:"dni"`
	Phone     string `json:"telefono"`
	Email     string `json:"email"`
}

func (t Tenant) RecordID() int64 { return t.ID }

// FullName joins first and last name, skipping the empty one.
func (t Tenant) FullName() string { return joinName(t.FirstName, t.LastName) }

// Owner is a propietario.
type Owner struct {
	ID        int64  `json:"id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Phone     string `json:"telefono"`
	Email     string `json:"email"`
}

func (o Owner) RecordID() int64 { return o.ID }

func (o Owner) FullName() string { return joinName(o.FirstName, o.LastName) }

// PersonPayload is shared by /inquilinos and /propietarios; owners leave DNI nil.
type PersonPayload struct {
	FirstName string  `json:"nombre"`
	LastName  string  `json:"apellido"`
	DNI       *string `json:"dni,omitempty"`
	Phone     *string `json:"telefono"`
	Email     *string `json:"email"`
}

type TenantForm struct {
	FirstName string `form:"nombre" validate:"required,notblank"`
	LastName  string `form:"apellido" validate:"required,notblank"`
	DNI       string `form:"dni" validate:"required,number,min=8,max=8"`
	Phone     string `form:"telefono" validate:"omitempty,number"`
	Email     string `form:"email" validate:"omitempty,email"`
}

type OwnerForm struct {
	FirstName string `form:"nombre" validate:"required,notblank"`
	LastName  string `form:"apellido" validate:"required,notblank"`
	Phone     string `form:"telefono" validate:"omitempty,number"`
	Email     string `form:"email" validate:"omitempty,email"`
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
