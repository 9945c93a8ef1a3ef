package model

import "time"

type Testimonial struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName  string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerImage *string   `gorm:"type:varchar(255)" json:"customer_image"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	Rating        int       `gorm:"not null;index" json:"rating"`
	IsFeatured    bool      `gorm:"not null;default:false;index" json:"is_featured"`
	IsActive      bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
