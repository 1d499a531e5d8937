package models

import "gorm.io/gorm"

type Account struct {
	gorm.Model
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`        // bcrypt hash
	Role     string `gorm:"default:student"` // student, professor, admin
}

type Major struct {
	gorm.Model
	Name        string `gorm:"unique;not null"`
	Description string
}

type StudyStatus struct {
	gorm.Model
	Name string `gorm:"unique;not null"` // regular, part-time, ...
}

type Student struct {
	gorm.Model
	Name      string `gorm:"not null"`
	Surname   string `gorm:"not null"`
	Index     int    `gorm:"column:index_number;unique;not null"` // enrollment index number
	Year      int    // current year of study, 1..4
	AccountID uint   `gorm:"not null"`
	Account   Account
	MajorID   uint `gorm:"not null"`
	Major     Major
	StatusID  uint `gorm:"not null"`
	Status    StudyStatus
}
