package model

import (
	"time"
)

// Result is one persisted quiz outcome. Records are written once at
// submission time and never updated or deleted afterwards.
type Result struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	User           User      `json:"-" gorm:"foreignKey:UserID"`
	Title          string    `json:"title" gorm:"not null"`
	Technology     string    `json:"technology" gorm:"not null;index"`
	Level          string    `json:"level" gorm:"not null"`
	TotalQuestions int       `json:"totalQuestions" gorm:"not null"`
	Correct        int       `json:"correct" gorm:"not null"`
	Wrong          int       `json:"wrong" gorm:"not null"`
	CreatedAt      time.Time `json:"createdAt"`
}
