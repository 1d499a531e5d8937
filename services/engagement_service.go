package services

import (
	"errors"

	"smarty/models"

	"gorm.io/gorm"
)

type EngagementService struct {
	DB         *gorm.DB
	Professors *ProfessorService
	Courses    *CourseService
}

func NewEngagementService(db *gorm.DB, professors *ProfessorService, courses *CourseService) *EngagementService {
	return &EngagementService{DB: db, Professors: professors, Courses: courses}
}

func (s *EngagementService) CreateEngagement(professorID, courseID uint) (*models.Engagement, error) {
	professor, err := s.Professors.GetByID(professorID)
	if err != nil {
		return nil, err
	}
	course, err := s.Courses.GetByID(courseID)
	if err != nil {
		return nil, err
	}

	if err := s.validateExistsByProfessorAndCourse(professor, course); err != nil {
		return nil, err
	}

	engagement := models.Engagement{
		ProfessorID: professor.ID,
		Professor:   *professor,
		CourseID:    course.ID,
		Course:      *course,
	}
	if err := s.DB.Create(&engagement).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflictf("Engagement already exists for professor %s and course %s", professor.Name, course.Code)
		}
		return nil, err
	}

	return &engagement, nil
}

func (s *EngagementService) validateExistsByProfessorAndCourse(professor *models.Professor, course *models.Course) error {
	var count int64
	err := s.DB.Model(&models.Engagement{}).
		Where("professor_id = ? AND course_id = ?", professor.ID, course.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return Conflictf("Engagement already exists for professor %s and course %s", professor.Name, course.Code)
	}
	return nil
}

func (s *EngagementService) GetAllEngagements(page, pageSize int) ([]models.Engagement, int64, error) {
	var engagements []models.Engagement
	var total int64

	if err := s.DB.Model(&models.Engagement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.DB.Preload("Professor").Preload("Course").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&engagements).Error
	if err != nil {
		return nil, 0, err
	}

	return engagements, total, nil
}

func (s *EngagementService) GetByID(id uint) (*models.Engagement, error) {
	var engagement models.Engagement
	if err := s.DB.Preload("Professor").Preload("Course").First(&engagement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Engagement with id %d doesn't exist", id)
		}
		return nil, err
	}
	return &engagement, nil
}

// UpdateEngagement rebinds the pair and re-checks its uniqueness.
func (s *EngagementService) UpdateEngagement(id, professorID, courseID uint) (*models.Engagement, error) {
	engagement, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	professor, err := s.Professors.GetByID(professorID)
	if err != nil {
		return nil, err
	}
	course, err := s.Courses.GetByID(courseID)
	if err != nil {
		return nil, err
	}

	if professor.ID != engagement.ProfessorID || course.ID != engagement.CourseID {
		if err := s.validateExistsByProfessorAndCourse(professor, course); err != nil {
			return nil, err
		}
	}

	engagement.ProfessorID = professor.ID
	engagement.Professor = *professor
	engagement.CourseID = course.ID
	engagement.Course = *course

	if err := s.DB.Save(engagement).Error; err != nil {
		return nil, err
	}

	return engagement, nil
}

func (s *EngagementService) DeleteEngagement(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.DB.Unscoped().Delete(&models.Engagement{}, id).Error
}
