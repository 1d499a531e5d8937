package services

import (
	"errors"

	"smarty/models"

	"gorm.io/gorm"
)

type ReportService struct {
	DB       *gorm.DB
	Posts    *PostService
	Students *StudentService
}

func NewReportService(db *gorm.DB, posts *PostService, students *StudentService) *ReportService {
	return &ReportService{DB: db, Posts: posts, Students: students}
}

func (s *ReportService) CreateReport(reason string, postID, studentID uint) (*models.Report, error) {
	post, err := s.Posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	student, err := s.Students.GetByID(studentID)
	if err != nil {
		return nil, err
	}

	report := models.Report{
		Reason:    reason,
		PostID:    post.ID,
		Post:      *post,
		StudentID: student.ID,
		Student:   *student,
	}
	if err := s.DB.Create(&report).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

func (s *ReportService) GetAllReports(page, pageSize int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	if err := s.DB.Model(&models.Report{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.DB.Preload("Post").Preload("Student").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (s *ReportService) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := s.DB.Preload("Post").Preload("Student").First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Report with id %d doesn't exist", id)
		}
		return nil, err
	}
	return &report, nil
}

func (s *ReportService) DeleteReport(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.DB.Unscoped().Delete(&models.Report{}, id).Error
}
