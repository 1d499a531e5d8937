package services

import (
	"errors"

	"smarty/models"

	"gorm.io/gorm"
)

type MajorService struct {
	DB *gorm.DB
}

func NewMajorService(db *gorm.DB) *MajorService {
	return &MajorService{DB: db}
}

func (s *MajorService) CreateMajor(name, description string) (*models.Major, error) {
	var count int64
	if err := s.DB.Model(&models.Major{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, Conflictf("Major with name %s already exists", name)
	}

	major := models.Major{Name: name, Description: description}
	if err := s.DB.Create(&major).Error; err != nil {
		return nil, err
	}
	return &major, nil
}

func (s *MajorService) GetByID(id uint) (*models.Major, error) {
	var major models.Major
	if err := s.DB.First(&major, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Major with id %d doesn't exist", id)
		}
		return nil, err
	}
	return &major, nil
}

func (s *MajorService) ExistsByID(id uint) error {
	var count int64
	if err := s.DB.Model(&models.Major{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NotFoundf("Major with id %d doesn't exist", id)
	}
	return nil
}

func (s *MajorService) GetAllMajors() ([]models.Major, error) {
	var majors []models.Major
	if err := s.DB.Find(&majors).Error; err != nil {
		return nil, err
	}
	return majors, nil
}
