package services

import (
	"errors"
	"math"
	"time"

	"smarty/models"

	"gorm.io/gorm"
)

const (
	// minActivityPointsRequired is the accumulated activity score a student
	// needs in a course before sitting its exam.
	minActivityPointsRequired = 35

	// minExamPointsForPassingGrade: below this raw score the grade drops to 5
	// no matter the total.
	minExamPointsForPassingGrade = 15

	lowestGrade = 5
)

type ExamService struct {
	DB         *gorm.DB
	Students   *StudentService
	Courses    *CourseService
	Activities *ActivityService
}

func NewExamService(db *gorm.DB, students *StudentService, courses *CourseService, activities *ActivityService) *ExamService {
	return &ExamService{DB: db, Students: students, Courses: courses, Activities: activities}
}

type ExamInput struct {
	Name              string
	Points            float64
	DateOfExamination time.Time
	Comment           string
	StudentID         uint
	CourseID          uint
}

func (s *ExamService) CreateExam(in ExamInput) (*models.Exam, error) {
	student, err := s.Students.GetByID(in.StudentID)
	if err != nil {
		return nil, err
	}
	course, err := s.Courses.GetByID(in.CourseID)
	if err != nil {
		return nil, err
	}

	totalPoints, err := s.totalPoints(student.ID, course.ID, in.Points)
	if err != nil {
		return nil, err
	}
	grade := CalculateGrade(totalPoints)
	if in.Points < minExamPointsForPassingGrade {
		grade = lowestGrade
	}

	if err := s.checkCourseAndStudentYear(student, course); err != nil {
		return nil, err
	}
	if err := s.checkExamAlreadyPassed(student, course); err != nil {
		return nil, err
	}
	if err := s.validateTotalActivityPoints(student.ID, course.ID); err != nil {
		return nil, err
	}

	exam := models.Exam{
		Name:              in.Name,
		Points:            in.Points,
		DateOfExamination: in.DateOfExamination,
		Comment:           in.Comment,
		Grade:             grade,
		TotalPoints:       totalPoints,
		StudentID:         student.ID,
		Student:           *student,
		CourseID:          course.ID,
		Course:            *course,
	}
	if err := s.DB.Create(&exam).Error; err != nil {
		return nil, err
	}

	return &exam, nil
}

func (s *ExamService) totalPoints(studentID, courseID uint, examPoints float64) (float64, error) {
	totalActivityPoints, err := s.Activities.TotalActivityPointsByCourse(studentID, courseID)
	if err != nil {
		return 0, err
	}
	if totalActivityPoints == nil {
		zero := 0.0
		totalActivityPoints = &zero
	}
	return *totalActivityPoints + examPoints, nil
}

// CalculateGrade maps total points to the 5..10 grade scale by decades.
func CalculateGrade(totalPoints float64) int {
	switch int(math.Floor(totalPoints / 10)) {
	case 10, 9:
		return 10
	case 8:
		return 9
	case 7:
		return 8
	case 6:
		return 7
	case 5:
		return 6
	default:
		return lowestGrade
	}
}

func (s *ExamService) checkCourseAndStudentYear(student *models.Student, course *models.Course) error {
	if student.Year < course.Year {
		return Forbiddenf("Student %s can't take the exam because course %s is in a year higher than the student's year of study",
			student.Name, course.Code)
	}
	return nil
}

// A recorded exam with a grade above 5 counts as passed; a failed attempt
// does not block a retake.
func (s *ExamService) checkExamAlreadyPassed(student *models.Student, course *models.Course) error {
	var count int64
	err := s.DB.Model(&models.Exam{}).
		Where("student_id = ? AND course_id = ? AND grade > ?", student.ID, course.ID, lowestGrade).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return Conflictf("Student %s has already passed the %s exam", student.Name, course.Code)
	}
	return nil
}

func (s *ExamService) validateTotalActivityPoints(studentID, courseID uint) error {
	totalActivityPoints, err := s.Activities.TotalActivityPointsByCourse(studentID, courseID)
	if err != nil {
		return err
	}
	if totalActivityPoints == nil {
		zero := 0.0
		totalActivityPoints = &zero
	}

	if *totalActivityPoints < minActivityPointsRequired {
		return Forbiddenf("Student can't take the exam because he needs at least 35 points for activities. Right now he has %.2f points",
			*totalActivityPoints)
	}
	return nil
}

func (s *ExamService) GetAllExams(page, pageSize int) ([]models.Exam, int64, error) {
	var exams []models.Exam
	var total int64

	if err := s.DB.Model(&models.Exam{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.DB.Preload("Student").Preload("Course").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&exams).Error
	if err != nil {
		return nil, 0, err
	}

	return exams, total, nil
}

func (s *ExamService) GetByID(id uint) (*models.Exam, error) {
	var exam models.Exam
	if err := s.DB.Preload("Student").Preload("Course").First(&exam, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Exam with id %d doesn't exist", id)
		}
		return nil, err
	}
	return &exam, nil
}

func (s *ExamService) GetExamHistoryByStudent(studentID uint) ([]models.Exam, error) {
	if err := s.Students.ExistsByID(studentID); err != nil {
		return nil, err
	}

	var exams []models.Exam
	err := s.DB.Preload("Course").
		Where("student_id = ?", studentID).
		Order("date_of_examination").
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	if len(exams) == 0 {
		return nil, NotFoundf("Exam history by student is empty")
	}

	return exams, nil
}

func (s *ExamService) GetPassedExamsByStudent(studentID uint, year int) ([]models.Exam, error) {
	if err := s.Students.ExistsByID(studentID); err != nil {
		return nil, err
	}
	if err := s.Courses.ExistsByYear(year); err != nil {
		return nil, err
	}

	var exams []models.Exam
	err := s.DB.Preload("Course").
		Joins("JOIN courses ON courses.id = exams.course_id").
		Where("exams.student_id = ? AND exams.grade > ? AND courses.year = ? AND courses.deleted_at IS NULL",
			studentID, lowestGrade, year).
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	if len(exams) == 0 {
		return nil, NotFoundf("List of passed exams is empty")
	}

	return exams, nil
}

// UpdateExam changes points/comment and re-checks only the activity
// threshold. Grade and total points stay as computed at creation.
func (s *ExamService) UpdateExam(id uint, points float64, comment string) (*models.Exam, error) {
	exam, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.validateTotalActivityPoints(exam.StudentID, exam.CourseID); err != nil {
		return nil, err
	}

	exam.Points = points
	exam.Comment = comment
	if err := s.DB.Save(exam).Error; err != nil {
		return nil, err
	}

	return exam, nil
}

func (s *ExamService) DeleteExam(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.DB.Unscoped().Delete(&models.Exam{}, id).Error
}
