package models

// RoleName is the closed set of role names known to the system.
type RoleName string

const (
	RoleAdmin     RoleName = "admin"
	RoleManager   RoleName = "manager"
	RoleDeveloper RoleName = "developer"
)

// AllRoleNames lists every valid role, in seed order.
var AllRoleNames = []RoleName{RoleAdmin, RoleManager, RoleDeveloper}

// Valid reports whether the role name is one of the known roles.
func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDeveloper:
		return true
	}
	return false
}

// Role is immutable reference data seeded at migration time.
type Role struct {
	ID   uint64   `gorm:"primarykey" json:"id"`
	Name RoleName `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`

	// Relations
	Users []User `gorm:"foreignKey:RoleID" json:"-"`
}
