package services

import (
	"errors"

	"smarty/models"

	"gorm.io/gorm"
)

const (
	minStudyYear = 1
	maxStudyYear = 4

	minSemester = 1
	maxSemester = 8
)

// professorChecker and studentChecker are the narrow lookups CourseService
// needs from the professor/student side. Using interfaces here instead of the
// concrete services breaks the wiring cycle (students and professors need
// course lookups too), so the concrete services are assigned after
// construction.
type professorChecker interface {
	ExistsByID(id uint) error
}

type studentChecker interface {
	ExistsByID(id uint) error
}

type CourseService struct {
	DB         *gorm.DB
	Professors professorChecker
	Students   studentChecker
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{DB: db}
}

type CourseInput struct {
	Code        string
	FullName    string
	Points      int
	Year        int
	Semester    int
	Description string
}

func (s *CourseService) CreateCourse(in CourseInput) (*models.Course, error) {
	if err := s.validateCode(in.Code); err != nil {
		return nil, err
	}

	course := models.Course{
		Code:        in.Code,
		FullName:    in.FullName,
		Points:      in.Points,
		Year:        in.Year,
		Semester:    in.Semester,
		Description: in.Description,
	}
	if err := s.DB.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflictf("Course with code %s already exists", in.Code)
		}
		return nil, err
	}

	return &course, nil
}

func (s *CourseService) validateCode(code string) error {
	var count int64
	if err := s.DB.Model(&models.Course{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return Conflictf("Course with code %s already exists", code)
	}
	return nil
}

func (s *CourseService) GetAllCourses(page, pageSize int) ([]models.Course, int64, error) {
	var courses []models.Course
	var total int64

	if err := s.DB.Model(&models.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Offset((page - 1) * pageSize).Limit(pageSize).Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (s *CourseService) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := s.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Course with id %d doesn't exist", id)
		}
		return nil, err
	}
	return &course, nil
}

func (s *CourseService) ExistsByID(id uint) error {
	var count int64
	if err := s.DB.Model(&models.Course{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NotFoundf("Course with id %d doesn't exist", id)
	}
	return nil
}

func (s *CourseService) ExistsByCode(code string) error {
	var count int64
	if err := s.DB.Model(&models.Course{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NotFoundf("Course with code %s doesn't exist", code)
	}
	return nil
}

func (s *CourseService) ExistsByYear(year int) error {
	if year < minStudyYear || year > maxStudyYear {
		return NotFoundf("Year %d doesn't exist during the studies", year)
	}
	return nil
}

func (s *CourseService) GetCoursesByYear(year int) ([]models.Course, error) {
	if err := s.ExistsByYear(year); err != nil {
		return nil, err
	}

	var courses []models.Course
	if err := s.DB.Where("year = ?", year).Find(&courses).Error; err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, NotFoundf("List of courses by year is empty")
	}

	return courses, nil
}

func (s *CourseService) GetCoursesBySemester(semester int) ([]models.Course, error) {
	if semester < minSemester || semester > maxSemester {
		return nil, NotFoundf("Semester %d doesn't exist during the studies", semester)
	}

	var courses []models.Course
	if err := s.DB.Where("semester = ?", semester).Find(&courses).Error; err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, NotFoundf("List of courses by semester is empty")
	}

	return courses, nil
}

// GetCoursesByProfessor resolves courses through the professor's engagements.
func (s *CourseService) GetCoursesByProfessor(professorID uint) ([]models.Course, error) {
	if err := s.Professors.ExistsByID(professorID); err != nil {
		return nil, err
	}

	var courses []models.Course
	err := s.DB.
		Joins("JOIN engagements ON engagements.course_id = courses.id").
		Where("engagements.professor_id = ? AND engagements.deleted_at IS NULL", professorID).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, NotFoundf("List of courses by professor is empty")
	}

	return courses, nil
}

// GetCoursesByStudent resolves courses the student has sat an exam in.
func (s *CourseService) GetCoursesByStudent(studentID uint) ([]models.Course, error) {
	if err := s.Students.ExistsByID(studentID); err != nil {
		return nil, err
	}

	var courses []models.Course
	err := s.DB.
		Distinct("courses.*").
		Joins("JOIN exams ON exams.course_id = courses.id").
		Where("exams.student_id = ? AND exams.deleted_at IS NULL", studentID).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, NotFoundf("List of courses by student is empty")
	}

	return courses, nil
}

func (s *CourseService) UpdateCourse(id uint, in CourseInput) (*models.Course, error) {
	course, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Code != "" && in.Code != course.Code {
		if err := s.validateCode(in.Code); err != nil {
			return nil, err
		}
		course.Code = in.Code
	}
	if in.FullName != "" {
		course.FullName = in.FullName
	}
	if in.Points != 0 {
		course.Points = in.Points
	}
	if in.Year != 0 {
		course.Year = in.Year
	}
	if in.Semester != 0 {
		course.Semester = in.Semester
	}
	if in.Description != "" {
		course.Description = in.Description
	}

	if err := s.DB.Save(course).Error; err != nil {
		return nil, err
	}

	return course, nil
}

// DeleteCourse removes the course with its tasks, the activities recorded
// against those tasks, and its engagements.
func (s *CourseService) DeleteCourse(id uint) error {
	if err := s.ExistsByID(id); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&models.Task{}).Where("course_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Unscoped().Delete(&models.Activity{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", id).Unscoped().Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", id).Unscoped().Delete(&models.Engagement{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Course{}, id).Error
	})
}
