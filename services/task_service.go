package services

import (
	"database/sql"
	"errors"

	"smarty/models"

	"gorm.io/gorm"
)

// maxTaskPointsByCourse caps the sum of maxPoints*numberOfTasks over all
// tasks of a course.
const maxTaskPointsByCourse = 70

type TaskService struct {
	DB      *gorm.DB
	Courses *CourseService
}

func NewTaskService(db *gorm.DB, courses *CourseService) *TaskService {
	return &TaskService{DB: db, Courses: courses}
}

type TaskInput struct {
	Type          models.TaskType
	MaxPoints     float64
	NumberOfTasks int
	CourseID      uint
}

func (s *TaskService) CreateTask(in TaskInput) (*models.Task, error) {
	course, err := s.Courses.GetByID(in.CourseID)
	if err != nil {
		return nil, err
	}

	if err := s.validateTypeByCourse(in.Type, course.ID); err != nil {
		return nil, err
	}
	if err := s.validateTotalTaskPointsByCourse(in.MaxPoints, in.NumberOfTasks, course.ID); err != nil {
		return nil, err
	}

	task := models.Task{
		Type:          in.Type,
		MaxPoints:     in.MaxPoints,
		NumberOfTasks: in.NumberOfTasks,
		CourseID:      course.ID,
		Course:        *course,
	}
	if err := s.DB.Create(&task).Error; err != nil {
		// a concurrent writer can slip past the read check; the unique
		// index catches it at commit
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflictf("Course with id %d already has type %s", course.ID, in.Type)
		}
		return nil, err
	}

	return &task, nil
}

func (s *TaskService) validateTypeByCourse(taskType models.TaskType, courseID uint) error {
	var count int64
	err := s.DB.Model(&models.Task{}).
		Where("type = ? AND course_id = ?", taskType, courseID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return Conflictf("Course with id %d already has type %s", courseID, taskType)
	}
	return nil
}

func (s *TaskService) validateTotalTaskPointsByCourse(maxPoints float64, numberOfTasks int, courseID uint) error {
	var total sql.NullFloat64
	err := s.DB.Model(&models.Task{}).
		Where("course_id = ?", courseID).
		Select("SUM(max_points * number_of_tasks)").
		Scan(&total).Error
	if err != nil {
		return err
	}

	// total is 0 for a course without tasks
	if total.Float64+maxPoints*float64(numberOfTasks) > maxTaskPointsByCourse {
		return Forbiddenf("The limit of %d points for saving tasks has been reached", maxTaskPointsByCourse)
	}
	return nil
}

func (s *TaskService) GetAllTasks(page, pageSize int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	if err := s.DB.Model(&models.Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.DB.Preload("Course").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (s *TaskService) GetByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := s.DB.Preload("Course").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Task with id %d doesn't exist", id)
		}
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) GetTasksByCourse(courseID uint) ([]models.Task, error) {
	if err := s.Courses.ExistsByID(courseID); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.DB.Where("course_id = ?", courseID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, NotFoundf("There are 0 tasks for course with id %d", courseID)
	}

	return tasks, nil
}

// UpdateTask mutates the non-key fields only. The type-uniqueness and course
// budget checks run on creation, not here.
func (s *TaskService) UpdateTask(id uint, maxPoints float64, numberOfTasks int) (*models.Task, error) {
	task, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	task.MaxPoints = maxPoints
	task.NumberOfTasks = numberOfTasks
	if err := s.DB.Save(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask removes the task together with the activities recorded against
// it. Removal is permanent so the (course, type) slot opens up again; a
// soft-deleted row would keep holding the unique index.
func (s *TaskService) DeleteTask(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Unscoped().Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Task{}, id).Error
	})
}
