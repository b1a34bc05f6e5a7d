package models

import "gorm.io/gorm"

// Message is a contact form submission accepted by the inbox.
type Message struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Email       string `gorm:"not null" json:"email"`
	Subject     string `gorm:"not null" json:"subject"`
	Body        string `gorm:"type:text;not null" json:"message"`
	Company     string `json:"company,omitempty"`
	Budget      string `gorm:"type:varchar(16)" json:"budget,omitempty"`
	Timeline    string `gorm:"type:varchar(16)" json:"timeline,omitempty"`
	Fingerprint string `gorm:"index;type:varchar(64)" json:"fingerprint"`
}
