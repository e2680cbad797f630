package models

import (
	"time"
)

// Tenancy links a tenant to a room. StartDate anchors period enumeration
// for every charge of the room's building.
type Tenancy struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	RoomID    uint       `gorm:"not null;index" json:"room_id"`
	StartDate time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`
	Active    bool       `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Room Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// TableName specifies the table name for Tenancy
func (Tenancy) TableName() string {
	return "tenancies"
}
