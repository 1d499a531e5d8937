package services

import (
	"errors"

	"smarty/models"

	"gorm.io/gorm"
)

type StatusService struct {
	DB *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{DB: db}
}

func (s *StatusService) GetStatusByID(id uint) (*models.StudyStatus, error) {
	var status models.StudyStatus
	if err := s.DB.First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Status with id %d doesn't exist", id)
		}
		return nil, err
	}
	return &status, nil
}

func (s *StatusService) ExistsByID(id uint) error {
	var count int64
	if err := s.DB.Model(&models.StudyStatus{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NotFoundf("Status with id %d doesn't exist", id)
	}
	return nil
}

func (s *StatusService) GetAllStatuses() ([]models.StudyStatus, error) {
	var statuses []models.StudyStatus
	if err := s.DB.Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}
