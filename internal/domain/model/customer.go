package model

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// 顧客。emailで一意。
type Customer struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Email      string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone      string         `gorm:"type:varchar(30);index" json:"phone"`
	Address    string         `gorm:"type:text" json:"address"`
	City       string         `gorm:"type:varchar(255);index" json:"city"`
	PostalCode string         `gorm:"type:varchar(20)" json:"postal_code"`
	Province   string         `gorm:"type:varchar(255)" json:"province"`
	BirthDate  *time.Time     `gorm:"type:date" json:"birth_date"`
	Gender     *Gender        `gorm:"type:varchar(10)" json:"gender"`
	Status     CustomerStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt  time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
