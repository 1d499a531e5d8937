package models

import (
	"time"

	"gorm.io/gorm"
)

// Exam is the terminal assessment for a (student, course) pair. Grade and
// TotalPoints are fixed at creation time from the grading formula.
type Exam struct {
	gorm.Model
	Name              string  `gorm:"not null"`
	Points            float64 // raw exam score, 0..30
	DateOfExamination time.Time
	Comment           string
	Grade             int     // derived, 5..10
	TotalPoints       float64 // derived, activity points + exam points
	StudentID         uint    `gorm:"not null"`
	Student           Student
	CourseID          uint `gorm:"not null"`
	Course            Course
}
