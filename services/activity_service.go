package services

import (
	"database/sql"
	"errors"

	"smarty/models"

	"gorm.io/gorm"
)

type ActivityService struct {
	DB       *gorm.DB
	Tasks    *TaskService
	Students *StudentService
	Courses  *CourseService
}

func NewActivityService(db *gorm.DB, tasks *TaskService, students *StudentService, courses *CourseService) *ActivityService {
	return &ActivityService{DB: db, Tasks: tasks, Students: students, Courses: courses}
}

type ActivityInput struct {
	ActivityName string
	Points       float64
	Comment      string
	TaskID       uint
	StudentID    uint
}

func (s *ActivityService) CreateActivity(in ActivityInput) (*models.Activity, error) {
	task, err := s.Tasks.GetByID(in.TaskID)
	if err != nil {
		return nil, err
	}
	student, err := s.Students.GetByID(in.StudentID)
	if err != nil {
		return nil, err
	}

	if err := s.validateActivityNameForStudent(in.ActivityName, student.ID); err != nil {
		return nil, err
	}
	if err := validateActivityPoints(in.Points, task.MaxPoints); err != nil {
		return nil, err
	}
	if err := s.validateNumberOfActivitiesByTaskType(task.Type, student.ID, task.CourseID, task.NumberOfTasks); err != nil {
		return nil, err
	}

	activity := models.Activity{
		ActivityName: in.ActivityName,
		Points:       in.Points,
		Comment:      in.Comment,
		TaskID:       task.ID,
		Task:         *task,
		StudentID:    student.ID,
		Student:      *student,
	}
	if err := s.DB.Create(&activity).Error; err != nil {
		// losing concurrent writer, rejected by the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflictf("Activity named %s already exists for student with id %d", in.ActivityName, student.ID)
		}
		return nil, err
	}

	return &activity, nil
}

func (s *ActivityService) validateActivityNameForStudent(activityName string, studentID uint) error {
	var count int64
	err := s.DB.Model(&models.Activity{}).
		Where("activity_name = ? AND student_id = ?", activityName, studentID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return Conflictf("Activity named %s already exists for student with id %d", activityName, studentID)
	}
	return nil
}

func validateActivityPoints(activityPoints, maxPoints float64) error {
	if activityPoints > maxPoints {
		return Forbiddenf("It is not allowed to enter %.2f points for this activity", activityPoints)
	}
	return nil
}

// The quota check is a strict equality test against the current count: once a
// student holds numberOfTasks activities of this task's type in the course,
// the next one is rejected.
func (s *ActivityService) validateNumberOfActivitiesByTaskType(taskType models.TaskType, studentID, courseID uint, numberOfTasks int) error {
	var count int64
	err := s.DB.Model(&models.Activity{}).
		Joins("JOIN tasks ON tasks.id = activities.task_id").
		Where("tasks.type = ? AND tasks.course_id = ? AND activities.student_id = ? AND tasks.deleted_at IS NULL",
			taskType, courseID, studentID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if int(count) == numberOfTasks {
		return Forbiddenf("Limit for storing activities by type %s is reached", taskType)
	}
	return nil
}

// TotalActivityPointsByCourse sums a student's activity points over a course.
// It returns nil when the student has no activities there; callers treat nil
// as 0.
func (s *ActivityService) TotalActivityPointsByCourse(studentID, courseID uint) (*float64, error) {
	var total sql.NullFloat64
	err := s.DB.Model(&models.Activity{}).
		Joins("JOIN tasks ON tasks.id = activities.task_id").
		Where("activities.student_id = ? AND tasks.course_id = ? AND tasks.deleted_at IS NULL", studentID, courseID).
		Select("SUM(activities.points)").
		Scan(&total).Error
	if err != nil {
		return nil, err
	}
	if !total.Valid {
		return nil, nil
	}
	return &total.Float64, nil
}

func (s *ActivityService) GetAllActivities(page, pageSize int) ([]models.Activity, int64, error) {
	var activities []models.Activity
	var total int64

	if err := s.DB.Model(&models.Activity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.DB.Preload("Task").Preload("Student").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (s *ActivityService) GetByID(id uint) (*models.Activity, error) {
	var activity models.Activity
	if err := s.DB.Preload("Task").Preload("Student").First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Activity with id %d doesn't exist", id)
		}
		return nil, err
	}
	return &activity, nil
}

func (s *ActivityService) GetStudentActivitiesByCourse(studentID uint, code string) ([]models.Activity, error) {
	if err := s.Students.ExistsByID(studentID); err != nil {
		return nil, err
	}
	if err := s.Courses.ExistsByCode(code); err != nil {
		return nil, err
	}

	var activities []models.Activity
	err := s.DB.Preload("Task").
		Joins("JOIN tasks ON tasks.id = activities.task_id").
		Joins("JOIN courses ON courses.id = tasks.course_id").
		Where("activities.student_id = ? AND courses.code = ? AND tasks.deleted_at IS NULL", studentID, code).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, NotFoundf("There are 0 activities by course %s for student with id %d", code, studentID)
	}

	return activities, nil
}

// UpdateActivity re-applies the points ceiling against the bound task. Name
// uniqueness and the quota were settled at creation.
func (s *ActivityService) UpdateActivity(id uint, points float64, comment string) (*models.Activity, error) {
	activity, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	task, err := s.Tasks.GetByID(activity.TaskID)
	if err != nil {
		return nil, err
	}

	if err := validateActivityPoints(points, task.MaxPoints); err != nil {
		return nil, err
	}

	activity.Points = points
	activity.Comment = comment
	if err := s.DB.Save(activity).Error; err != nil {
		return nil, err
	}

	return activity, nil
}

func (s *ActivityService) DeleteActivity(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.DB.Unscoped().Delete(&models.Activity{}, id).Error
}
