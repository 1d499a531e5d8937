package models

import "gorm.io/gorm"

type Post struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Content     string
	ProfessorID uint `gorm:"not null"`
	Professor   Professor
}

type Report struct {
	gorm.Model
	Reason    string `gorm:"not null"`
	PostID    uint   `gorm:"not null"`
	Post      Post
	StudentID uint `gorm:"not null"`
	Student   Student
}
