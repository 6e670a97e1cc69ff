package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a participant who can be assigned receipt items. Members belong
// to the account that created them and are reused across splits.
type Member struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Name       string    `gorm:"not null;size:100" json:"name"`
	Email      string    `gorm:"size:255" json:"email,omitempty"`
	Color      string    `gorm:"size:7" json:"color"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	IsFrequent bool      `gorm:"default:false" json:"is_frequent"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MemberColors is the palette assigned to new members round-robin.
var MemberColors = []string{
	"#A0826D",
	"#C9A88A",
	"#8B6F47",
	"#D4B5A0",
	"#9B7E5E",
	"#B8956F",
	"#7A5C42",
	"#CDB8A3",
}

// ColorForIndex picks a palette color for the nth member.
func ColorForIndex(index int) string {
	return MemberColors[index%len(MemberColors)]
}

// Request structs
type CreateMemberRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	IsFrequent bool   `json:"is_frequent"`
}

type UpdateMemberRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email" binding:"omitempty,email"`
	AvatarURL string `json:"avatar_url"`
}
