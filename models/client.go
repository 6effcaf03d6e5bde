package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Phone   string    `gorm:"not null"`
	Address string    `gorm:"type:text"`

	Bills []Bill `gorm:"foreignKey:ClientID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
