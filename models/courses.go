package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Code        string `gorm:"unique;not null"`
	FullName    string `gorm:"not null"`
	Points      int    // credit points
	Year        int    // 1..4
	Semester    int    // 1..8
	Description string
}

type TaskType string

const (
	TaskTypeHomework     TaskType = "HOMEWORK"
	TaskTypeProject      TaskType = "PROJECT"
	TaskTypePresentation TaskType = "PRESENTATION"
	TaskTypeTest         TaskType = "TEST"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeHomework, TaskTypeProject, TaskTypePresentation, TaskTypeTest:
		return true
	}
	return false
}

// Task is a gradable unit of work, defined at most once per (course, type).
type Task struct {
	gorm.Model
	Type          TaskType `gorm:"not null;uniqueIndex:idx_tasks_course_type"`
	MaxPoints     float64  // ceiling for a single activity
	NumberOfTasks int      // activities of this type allowed per student
	CourseID      uint     `gorm:"not null;uniqueIndex:idx_tasks_course_type"`
	Course        Course
}
