package models

import (
	"time"
)

// Building represents a property managed by a landlord or agent.
type Building struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	LandlordUserID uint      `gorm:"not null;index" json:"landlord_user_id"`
	Name           string    `gorm:"not null" json:"name"`
	Address        string    `json:"address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Associations
	Landlord User     `gorm:"foreignKey:LandlordUserID" json:"-"`
	Rooms    []Room   `gorm:"foreignKey:BuildingID" json:"rooms,omitempty"`
	Charges  []Charge `gorm:"foreignKey:BuildingID" json:"charges,omitempty"`
}

// TableName specifies the table name for Building
func (Building) TableName() string {
	return "buildings"
}

// Room represents a rentable unit within a building.
type Room struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BuildingID uint      `gorm:"not null;index" json:"building_id"`
	Label      string    `gorm:"not null" json:"label"`
	Capacity   int       `gorm:"default:1" json:"capacity"`
	Occupied   bool      `gorm:"default:false" json:"occupied"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Building Building `gorm:"foreignKey:BuildingID" json:"-"`
}

// TableName specifies the table name for Room
func (Room) TableName() string {
	return "rooms"
}
