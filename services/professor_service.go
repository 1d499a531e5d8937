package services

import (
	"errors"

	"smarty/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ProfessorService struct {
	DB       *gorm.DB
	Accounts *AccountService
	Courses  courseChecker
}

func NewProfessorService(db *gorm.DB, accounts *AccountService) *ProfessorService {
	return &ProfessorService{DB: db, Accounts: accounts}
}

type ProfessorInput struct {
	Name     string
	Surname  string
	Title    string
	Email    string
	Password string
}

func (s *ProfessorService) CreateProfessor(in ProfessorInput) (*models.Professor, error) {
	if err := s.Accounts.ExistsByEmail(in.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	professor := models.Professor{
		Name:    in.Name,
		Surname: in.Surname,
		Title:   in.Title,
		Account: models.Account{
			Email:    in.Email,
			Password: string(hashedPassword),
			Role:     "professor",
		},
	}
	if err := s.DB.Create(&professor).Error; err != nil {
		return nil, err
	}

	return &professor, nil
}

func (s *ProfessorService) GetAllProfessors(page, pageSize int) ([]models.Professor, int64, error) {
	var professors []models.Professor
	var total int64

	if err := s.DB.Model(&models.Professor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.DB.Preload("Account").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&professors).Error
	if err != nil {
		return nil, 0, err
	}

	return professors, total, nil
}

func (s *ProfessorService) GetByID(id uint) (*models.Professor, error) {
	var professor models.Professor
	if err := s.DB.Preload("Account").First(&professor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Professor with id %d doesn't exist", id)
		}
		return nil, err
	}
	return &professor, nil
}

func (s *ProfessorService) GetProfessorByEmail(email string) (*models.Professor, error) {
	var professor models.Professor
	err := s.DB.Preload("Account").
		Joins("JOIN accounts ON accounts.id = professors.account_id").
		Where("accounts.email = ? AND accounts.deleted_at IS NULL", email).
		First(&professor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Professor with email %s doesn't exist", email)
		}
		return nil, err
	}
	return &professor, nil
}

func (s *ProfessorService) ExistsByID(id uint) error {
	var count int64
	if err := s.DB.Model(&models.Professor{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NotFoundf("Professor with id %d doesn't exist", id)
	}
	return nil
}

func (s *ProfessorService) GetProfessorsByCourse(courseID uint) ([]models.Professor, error) {
	if err := s.Courses.ExistsByID(courseID); err != nil {
		return nil, err
	}

	var professors []models.Professor
	err := s.DB.
		Joins("JOIN engagements ON engagements.professor_id = professors.id").
		Where("engagements.course_id = ? AND engagements.deleted_at IS NULL", courseID).
		Find(&professors).Error
	if err != nil {
		return nil, err
	}
	if len(professors) == 0 {
		return nil, NotFoundf("List of professors by course is empty")
	}

	return professors, nil
}

func (s *ProfessorService) UpdateProfessor(id uint, name, surname, title string) (*models.Professor, error) {
	professor, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		professor.Name = name
	}
	if surname != "" {
		professor.Surname = surname
	}
	if title != "" {
		professor.Title = title
	}

	if err := s.DB.Save(professor).Error; err != nil {
		return nil, err
	}

	return professor, nil
}

func (s *ProfessorService) UpdatePassword(id uint, password, confirmedPassword string) (*models.Professor, error) {
	professor, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if password != confirmedPassword {
		return nil, Forbiddenf("Passwords aren't matching")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	professor.Account.Password = string(hashedPassword)
	if err := s.DB.Save(&professor.Account).Error; err != nil {
		return nil, err
	}

	return professor, nil
}

// DeleteProfessor removes the professor with their account and engagements.
func (s *ProfessorService) DeleteProfessor(id uint) error {
	professor, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("professor_id = ?", id).Unscoped().Delete(&models.Engagement{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&models.Account{}, professor.AccountID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Professor{}, id).Error
	})
}
