package services

import (
	"testing"

	"smarty/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTask(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)

	task, err := ts.Tasks.CreateTask(TaskInput{
		Type:          models.TaskTypeHomework,
		MaxPoints:     5,
		NumberOfTasks: 4,
		CourseID:      course.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskTypeHomework, task.Type)
	assert.Equal(t, course.ID, task.CourseID)
}

func TestCreateTaskUnknownCourse(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.Tasks.CreateTask(TaskInput{
		Type:          models.TaskTypeHomework,
		MaxPoints:     5,
		NumberOfTasks: 4,
		CourseID:      42,
	})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.EqualError(t, err, "Course with id 42 doesn't exist")
}

func TestCreateTaskDuplicateType(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)
	ts.seedTask(t, course.ID, models.TaskTypeHomework, 5, 4)

	_, err := ts.Tasks.CreateTask(TaskInput{
		Type:          models.TaskTypeHomework,
		MaxPoints:     2,
		NumberOfTasks: 1,
		CourseID:      course.ID,
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))

	// the same type bound to another course is fine
	other := ts.seedCourse(t, "SE102", 1, 2)
	_, err = ts.Tasks.CreateTask(TaskInput{
		Type:          models.TaskTypeHomework,
		MaxPoints:     2,
		NumberOfTasks: 1,
		CourseID:      other.ID,
	})
	assert.NoError(t, err)
}

func TestCreateTaskPointsBudget(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)

	// 10*4 + 10*3 = 70, exactly at the cap
	ts.seedTask(t, course.ID, models.TaskTypeHomework, 10, 4)
	ts.seedTask(t, course.ID, models.TaskTypeProject, 10, 3)

	_, err := ts.Tasks.CreateTask(TaskInput{
		Type:          models.TaskTypePresentation,
		MaxPoints:     1,
		NumberOfTasks: 1,
		CourseID:      course.ID,
	})
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.EqualError(t, err, "The limit of 70 points for saving tasks has been reached")
}

func TestCreateTaskPointsBudgetBoundary(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)
	ts.seedTask(t, course.ID, models.TaskTypeHomework, 10, 4)

	// 40 + 30 = 70 is allowed; the check rejects only sums above the cap
	_, err := ts.Tasks.CreateTask(TaskInput{
		Type:          models.TaskTypeProject,
		MaxPoints:     15,
		NumberOfTasks: 2,
		CourseID:      course.ID,
	})
	assert.NoError(t, err)
}

func TestCreateTaskFailureIsRepeatable(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)
	ts.seedTask(t, course.ID, models.TaskTypeHomework, 10, 4)

	in := TaskInput{
		Type:          models.TaskTypeProject,
		MaxPoints:     20,
		NumberOfTasks: 2,
		CourseID:      course.ID,
	}
	_, firstErr := ts.Tasks.CreateTask(in)
	_, secondErr := ts.Tasks.CreateTask(in)
	require.Error(t, firstErr)
	require.Error(t, secondErr)
	assert.Equal(t, KindOf(firstErr), KindOf(secondErr))
	assert.Equal(t, firstErr.Error(), secondErr.Error())
}

func TestUpdateTaskSkipsCreationChecks(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)
	task := ts.seedTask(t, course.ID, models.TaskTypeHomework, 10, 4)

	// 25*4 = 100 would never pass creation, but updates leave the course
	// budget alone
	updated, err := ts.Tasks.UpdateTask(task.ID, 25, 4)
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.MaxPoints)
}

func TestGetTasksByCourse(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)

	_, err := ts.Tasks.GetTasksByCourse(course.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	ts.seedTask(t, course.ID, models.TaskTypeHomework, 10, 4)
	ts.seedTask(t, course.ID, models.TaskTypeTest, 10, 3)

	tasks, err := ts.Tasks.GetTasksByCourse(course.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestDeleteTask(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)
	task := ts.seedTask(t, course.ID, models.TaskTypeHomework, 10, 4)

	require.NoError(t, ts.Tasks.DeleteTask(task.ID))

	_, err := ts.Tasks.GetByID(task.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = ts.Tasks.DeleteTask(task.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestDeleteTaskRemovesActivities(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)
	task := ts.seedTask(t, course.ID, models.TaskTypeHomework, 10, 4)
	student := ts.seedStudent(t, "Ana", "ana@smarty.edu", 2021001, 2)
	activity := ts.seedActivity(t, "Homework 1", 8, task.ID, student.ID)

	require.NoError(t, ts.Tasks.DeleteTask(task.ID))

	_, err := ts.Activities.GetByID(activity.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestDeleteTaskFreesTypeForCourse(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)
	task := ts.seedTask(t, course.ID, models.TaskTypeHomework, 5, 4)

	require.NoError(t, ts.Tasks.DeleteTask(task.ID))

	// the (course, type) slot is free again after removal
	recreated, err := ts.Tasks.CreateTask(TaskInput{
		Type:          models.TaskTypeHomework,
		MaxPoints:     10,
		NumberOfTasks: 2,
		CourseID:      course.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskTypeHomework, recreated.Type)
	assert.NotEqual(t, task.ID, recreated.ID)
}
