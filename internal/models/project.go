package models

import (
	"time"
)

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	IsArchived  bool      `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Members []User `gorm:"many2many:project_members;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Tasks   []Task `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// MemberIDs projects the ids of the currently linked members. It is derived
// from the loaded membership relation, never stored independently.
func (p *Project) MemberIDs() []uint64 {
	ids := make([]uint64, len(p.Members))
	for i, m := range p.Members {
		ids[i] = m.ID
	}
	return ids
}
