package models

import "gorm.io/gorm"

type Professor struct {
	gorm.Model
	Name      string `gorm:"not null"`
	Surname   string `gorm:"not null"`
	Title     string // assistant, docent, full professor, ...
	AccountID uint   `gorm:"not null"`
	Account   Account
}

// Engagement assigns a professor to teach a course, at most once per pair.
type Engagement struct {
	gorm.Model
	ProfessorID uint `gorm:"not null;uniqueIndex:idx_engagements_professor_course"`
	Professor   Professor
	CourseID    uint `gorm:"not null;uniqueIndex:idx_engagements_professor_course"`
	Course      Course
}
