package services

import (
	"errors"

	"smarty/models"

	"gorm.io/gorm"
)

type PostService struct {
	DB         *gorm.DB
	Professors *ProfessorService
}

func NewPostService(db *gorm.DB, professors *ProfessorService) *PostService {
	return &PostService{DB: db, Professors: professors}
}

func (s *PostService) CreatePost(title, content string, professorID uint) (*models.Post, error) {
	professor, err := s.Professors.GetByID(professorID)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		Title:       title,
		Content:     content,
		ProfessorID: professor.ID,
		Professor:   *professor,
	}
	if err := s.DB.Create(&post).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

func (s *PostService) GetAllPosts(page, pageSize int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := s.DB.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.DB.Preload("Professor").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (s *PostService) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.DB.Preload("Professor").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Post with id %d doesn't exist", id)
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostService) DeletePost(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.DB.Unscoped().Delete(&models.Post{}, id).Error
}
