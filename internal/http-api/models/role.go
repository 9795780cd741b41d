package models

// Role is a named permission grant. Its name doubles as the authority string
// compared during authorization checks (e.g. "ROLE_CSR").
type Role struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"column:role_name;uniqueIndex;not null"`
	Description string `json:"description"`
}

// Authority returns the access-control token for this role.
func (r Role) Authority() string {
	return r.Name
}

func (Role) TableName() string {
	return "security_roles"
}
