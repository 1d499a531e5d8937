package models

import "gorm.io/gorm"

// Activity is a student's submission against a task. A student can't reuse
// an activity name, and points never exceed the task's ceiling.
type Activity struct {
	gorm.Model
	ActivityName string `gorm:"not null;uniqueIndex:idx_activities_student_name"`
	Points       float64
	Comment      string
	TaskID       uint `gorm:"not null"`
	Task         Task
	StudentID    uint `gorm:"not null;uniqueIndex:idx_activities_student_name"`
	Student      Student
}
