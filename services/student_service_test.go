package services

import (
	"testing"

	"smarty/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateStudent(t *testing.T) {
	ts := newTestServices(t)
	student := ts.seedStudent(t, "Ana", "ana@smarty.edu", 2021001, 2)

	assert.Equal(t, "student", student.Account.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(student.Account.Password), []byte("password123")))
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	ts := newTestServices(t)
	ts.seedStudent(t, "Ana", "ana@smarty.edu", 2021001, 2)
	major, status := ts.seedMajorAndStatus(t)

	_, err := ts.Students.CreateStudent(StudentInput{
		Name:     "Marko",
		Surname:  "Markovic",
		Index:    2021002,
		Year:     1,
		Email:    "ana@smarty.edu",
		Password: "password123",
		MajorID:  major.ID,
		StatusID: status.ID,
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCreateStudentDuplicateIndex(t *testing.T) {
	ts := newTestServices(t)
	ts.seedStudent(t, "Ana", "ana@smarty.edu", 2021001, 2)
	major, status := ts.seedMajorAndStatus(t)

	_, err := ts.Students.CreateStudent(StudentInput{
		Name:     "Marko",
		Surname:  "Markovic",
		Index:    2021001,
		Year:     1,
		Email:    "marko@smarty.edu",
		Password: "password123",
		MajorID:  major.ID,
		StatusID: status.ID,
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.EqualError(t, err, "Student with index 2021001 already exists")
}

func TestGetStudentByEmail(t *testing.T) {
	ts := newTestServices(t)
	ts.seedStudent(t, "Ana", "ana@smarty.edu", 2021001, 2)

	student, err := ts.Students.GetStudentByEmail("ana@smarty.edu")
	require.NoError(t, err)
	assert.Equal(t, "Ana", student.Name)

	_, err = ts.Students.GetStudentByEmail("ghost@smarty.edu")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestGetAverageGradeOfStudent(t *testing.T) {
	ts := newTestServices(t)
	course1 := ts.seedCourse(t, "SE101", 1, 1)
	course2 := ts.seedCourse(t, "SE102", 1, 2)
	task1 := ts.seedTask(t, course1.ID, models.TaskTypeHomework, 35, 2)
	task2 := ts.seedTask(t, course2.ID, models.TaskTypeHomework, 35, 2)
	student := ts.seedStudent(t, "Ana", "ana@smarty.edu", 2021001, 2)

	avg, err := ts.Students.GetAverageGradeOfStudent(student.ID)
	require.NoError(t, err)
	assert.Nil(t, avg)

	ts.seedActivity(t, "HW 1-1", 30, task1.ID, student.ID)
	ts.seedActivity(t, "HW 1-2", 30, task1.ID, student.ID)
	_, err = ts.Exams.CreateExam(ExamInput{Name: "Final 1", Points: 25, StudentID: student.ID, CourseID: course1.ID})
	require.NoError(t, err) // total 85 -> grade 9

	ts.seedActivity(t, "HW 2-1", 25, task2.ID, student.ID)
	ts.seedActivity(t, "HW 2-2", 25, task2.ID, student.ID)
	_, err = ts.Exams.CreateExam(ExamInput{Name: "Final 2", Points: 15, StudentID: student.ID, CourseID: course2.ID})
	require.NoError(t, err) // total 65 -> grade 7

	avg, err = ts.Students.GetAverageGradeOfStudent(student.ID)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 8.0, *avg)
}

func TestGetStudentsWhoPassedCourse(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)
	task := ts.seedTask(t, course.ID, models.TaskTypeHomework, 35, 2)
	passed := ts.seedStudent(t, "Ana", "ana@smarty.edu", 2021001, 2)
	failed := ts.seedStudent(t, "Marko", "marko@smarty.edu", 2021002, 2)

	ts.seedActivity(t, "HW 1", 30, task.ID, passed.ID)
	ts.seedActivity(t, "HW 2", 30, task.ID, passed.ID)
	_, err := ts.Exams.CreateExam(ExamInput{Name: "Final", Points: 25, StudentID: passed.ID, CourseID: course.ID})
	require.NoError(t, err)

	ts.seedActivity(t, "HW 1", 20, task.ID, failed.ID)
	ts.seedActivity(t, "HW 2", 20, task.ID, failed.ID)
	_, err = ts.Exams.CreateExam(ExamInput{Name: "Final", Points: 5, StudentID: failed.ID, CourseID: course.ID})
	require.NoError(t, err)

	students, err := ts.Students.GetStudentsWhoPassedCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, passed.ID, students[0].ID)
}

func TestUpdatePassword(t *testing.T) {
	ts := newTestServices(t)
	student := ts.seedStudent(t, "Ana", "ana@smarty.edu", 2021001, 2)

	_, err := ts.Students.UpdatePassword(student.ID, "newpassword1", "newpassword2")
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.EqualError(t, err, "Passwords aren't matching")

	updated, err := ts.Students.UpdatePassword(student.ID, "newpassword1", "newpassword1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Account.Password), []byte("newpassword1")))
}

func TestDeleteStudentRemovesOwnedRecords(t *testing.T) {
	ts := newTestServices(t)
	course := ts.seedCourse(t, "SE101", 1, 1)
	task := ts.seedTask(t, course.ID, models.TaskTypeHomework, 35, 2)
	student := ts.seedStudent(t, "Ana", "ana@smarty.edu", 2021001, 2)

	activity := ts.seedActivity(t, "Homework 1", 20, task.ID, student.ID)
	ts.seedActivity(t, "Homework 2", 20, task.ID, student.ID)
	exam, err := ts.Exams.CreateExam(ExamInput{Name: "Final", Points: 25, StudentID: student.ID, CourseID: course.ID})
	require.NoError(t, err)

	require.NoError(t, ts.Students.DeleteStudent(student.ID))

	_, err = ts.Students.GetByID(student.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
	_, err = ts.Activities.GetByID(activity.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
	_, err = ts.Exams.GetByID(exam.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
	_, err = ts.Auth.Authenticate("ana@smarty.edu", "password123")
	assert.Equal(t, KindNotFound, KindOf(err))

	// the freed email and index number can be registered again
	major, status := ts.seedMajorAndStatus(t)
	recreated, err := ts.Students.CreateStudent(StudentInput{
		Name:     "Ana",
		Surname:  "Ivic",
		Index:    2021001,
		Year:     2,
		Email:    "ana@smarty.edu",
		Password: "password123",
		MajorID:  major.ID,
		StatusID: status.ID,
	})
	require.NoError(t, err)
	assert.NotEqual(t, student.ID, recreated.ID)
}
