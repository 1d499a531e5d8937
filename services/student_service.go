package services

import (
	"database/sql"
	"errors"

	"smarty/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// courseChecker is the narrow course lookup StudentService needs; the
// concrete CourseService is assigned after construction to avoid the
// course<->student wiring cycle.
type courseChecker interface {
	ExistsByID(id uint) error
}

type StudentService struct {
	DB       *gorm.DB
	Majors   *MajorService
	Statuses *StatusService
	Accounts *AccountService
	Courses  courseChecker
}

func NewStudentService(db *gorm.DB, majors *MajorService, statuses *StatusService, accounts *AccountService) *StudentService {
	return &StudentService{DB: db, Majors: majors, Statuses: statuses, Accounts: accounts}
}

type StudentInput struct {
	Name     string
	Surname  string
	Index    int
	Year     int
	Email    string
	Password string
	MajorID  uint
	StatusID uint
}

func (s *StudentService) CreateStudent(in StudentInput) (*models.Student, error) {
	major, err := s.Majors.GetByID(in.MajorID)
	if err != nil {
		return nil, err
	}
	status, err := s.Statuses.GetStatusByID(in.StatusID)
	if err != nil {
		return nil, err
	}
	if err := s.Accounts.ExistsByEmail(in.Email); err != nil {
		return nil, err
	}
	if err := s.validateIndex(in.Index); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	student := models.Student{
		Name:    in.Name,
		Surname: in.Surname,
		Index:   in.Index,
		Year:    in.Year,
		Account: models.Account{
			Email:    in.Email,
			Password: string(hashedPassword),
			Role:     "student",
		},
		MajorID:  major.ID,
		Major:    *major,
		StatusID: status.ID,
		Status:   *status,
	}
	if err := s.DB.Create(&student).Error; err != nil {
		return nil, err
	}

	return &student, nil
}

func (s *StudentService) validateIndex(index int) error {
	var count int64
	if err := s.DB.Model(&models.Student{}).Where("index_number = ?", index).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return Conflictf("Student with index %d already exists", index)
	}
	return nil
}

func (s *StudentService) GetAllStudents(page, pageSize int) ([]models.Student, int64, error) {
	var students []models.Student
	var total int64

	if err := s.DB.Model(&models.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.DB.Preload("Account").Preload("Major").Preload("Status").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&students).Error
	if err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (s *StudentService) GetByID(id uint) (*models.Student, error) {
	var student models.Student
	err := s.DB.Preload("Account").Preload("Major").Preload("Status").First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Student with id %d doesn't exist", id)
		}
		return nil, err
	}
	return &student, nil
}

func (s *StudentService) GetStudentByEmail(email string) (*models.Student, error) {
	var student models.Student
	err := s.DB.Preload("Account").Preload("Major").Preload("Status").
		Joins("JOIN accounts ON accounts.id = students.account_id").
		Where("accounts.email = ? AND accounts.deleted_at IS NULL", email).
		First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Student with email %s doesn't exist", email)
		}
		return nil, err
	}
	return &student, nil
}

func (s *StudentService) ExistsByID(id uint) error {
	var count int64
	if err := s.DB.Model(&models.Student{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NotFoundf("Student with id %d doesn't exist", id)
	}
	return nil
}

// GetAverageGradeOfStudent averages the grades over the student's recorded
// exams; nil when the student has no exams.
func (s *StudentService) GetAverageGradeOfStudent(id uint) (*float64, error) {
	if err := s.ExistsByID(id); err != nil {
		return nil, err
	}

	var avg sql.NullFloat64
	err := s.DB.Model(&models.Exam{}).
		Where("student_id = ?", id).
		Select("AVG(grade)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func (s *StudentService) GetStudentsByMajor(majorID uint) ([]models.Student, error) {
	if err := s.Majors.ExistsByID(majorID); err != nil {
		return nil, err
	}

	var students []models.Student
	err := s.DB.Preload("Account").Preload("Major").Preload("Status").
		Where("major_id = ?", majorID).Find(&students).Error
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, NotFoundf("List of students by major is empty")
	}

	return students, nil
}

func (s *StudentService) GetStudentsByStudyStatus(statusID uint) ([]models.Student, error) {
	if err := s.Statuses.ExistsByID(statusID); err != nil {
		return nil, err
	}

	var students []models.Student
	err := s.DB.Preload("Account").Preload("Major").Preload("Status").
		Where("status_id = ?", statusID).Find(&students).Error
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, NotFoundf("List of students by study status is empty")
	}

	return students, nil
}

func (s *StudentService) GetStudentsWhoPassedCourse(courseID uint) ([]models.Student, error) {
	if err := s.Courses.ExistsByID(courseID); err != nil {
		return nil, err
	}

	var students []models.Student
	err := s.DB.
		Distinct("students.*").
		Preload("Account").Preload("Major").Preload("Status").
		Joins("JOIN exams ON exams.student_id = students.id").
		Where("exams.course_id = ? AND exams.grade > ?", courseID, lowestGrade).
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, NotFoundf("There are 0 students that passed course with id %d", courseID)
	}

	return students, nil
}

type StudentUpdateInput struct {
	Name     string
	Surname  string
	Year     int
	MajorID  uint
	StatusID uint
}

func (s *StudentService) UpdateStudent(id uint, in StudentUpdateInput) (*models.Student, error) {
	student, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	major, err := s.Majors.GetByID(in.MajorID)
	if err != nil {
		return nil, err
	}
	status, err := s.Statuses.GetStatusByID(in.StatusID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		student.Name = in.Name
	}
	if in.Surname != "" {
		student.Surname = in.Surname
	}
	if in.Year != 0 {
		student.Year = in.Year
	}
	student.MajorID = major.ID
	student.Major = *major
	student.StatusID = status.ID
	student.Status = *status

	if err := s.DB.Save(student).Error; err != nil {
		return nil, err
	}

	return student, nil
}

// UpdatePassword rehashes and stores the student's account password. The
// caller is responsible for checking that the requester owns the account.
func (s *StudentService) UpdatePassword(id uint, password, confirmedPassword string) (*models.Student, error) {
	student, err := s.GetByID(id)
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

	student.Account.Password = string(hashedPassword)
	if err := s.DB.Save(&student.Account).Error; err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent removes the student along with the account, activities and
// exams bound to them.
func (s *StudentService) DeleteStudent(id uint) error {
	student, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Unscoped().Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Unscoped().Delete(&models.Exam{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&models.Account{}, student.AccountID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Student{}, id).Error
	})
}
