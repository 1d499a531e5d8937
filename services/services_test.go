package services

import (
	"testing"

	"smarty/models"
	"smarty/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testServices wires the full service graph against an in-memory database.
type testServices struct {
	DB          *gorm.DB
	Accounts    *AccountService
	Auth        *AuthService
	Majors      *MajorService
	Statuses    *StatusService
	Courses     *CourseService
	Students    *StudentService
	Professors  *ProfessorService
	Tasks       *TaskService
	Activities  *ActivityService
	Exams       *ExamService
	Engagements *EngagementService
	Posts       *PostService
	Reports     *ReportService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	accounts := NewAccountService(db)
	auth := NewAuthService(db, accounts)
	majors := NewMajorService(db)
	statuses := NewStatusService(db)
	courses := NewCourseService(db)
	students := NewStudentService(db, majors, statuses, accounts)
	professors := NewProfessorService(db, accounts)
	tasks := NewTaskService(db, courses)
	activities := NewActivityService(db, tasks, students, courses)
	exams := NewExamService(db, students, courses, activities)
	engagements := NewEngagementService(db, professors, courses)
	posts := NewPostService(db, professors)
	reports := NewReportService(db, posts, students)

	courses.Professors = professors
	courses.Students = students
	students.Courses = courses
	professors.Courses = courses

	return &testServices{
		DB:          db,
		Accounts:    accounts,
		Auth:        auth,
		Majors:      majors,
		Statuses:    statuses,
		Courses:     courses,
		Students:    students,
		Professors:  professors,
		Tasks:       tasks,
		Activities:  activities,
		Exams:       exams,
		Engagements: engagements,
		Posts:       posts,
		Reports:     reports,
	}
}

func (ts *testServices) seedMajorAndStatus(t *testing.T) (*models.Major, *models.StudyStatus) {
	t.Helper()

	var major models.Major
	err := ts.DB.Where(models.Major{Name: "Software Engineering"}).
		Attrs(models.Major{Description: "SE program"}).
		FirstOrCreate(&major).Error
	require.NoError(t, err)

	var status models.StudyStatus
	err = ts.DB.Where(models.StudyStatus{Name: "Active"}).FirstOrCreate(&status).Error
	require.NoError(t, err)

	return &major, &status
}

func (ts *testServices) seedStudent(t *testing.T, name, email string, index, year int) *models.Student {
	t.Helper()

	major, status := ts.seedMajorAndStatus(t)
	student, err := ts.Students.CreateStudent(StudentInput{
		Name:     name,
		Surname:  "Tester",
		Index:    index,
		Year:     year,
		Email:    email,
		Password: "password123",
		MajorID:  major.ID,
		StatusID: status.ID,
	})
	require.NoError(t, err)
	return student
}

func (ts *testServices) seedCourse(t *testing.T, code string, year, semester int) *models.Course {
	t.Helper()

	course, err := ts.Courses.CreateCourse(CourseInput{
		Code:        code,
		FullName:    "Course " + code,
		Points:      6,
		Year:        year,
		Semester:    semester,
		Description: "test course",
	})
	require.NoError(t, err)
	return course
}

func (ts *testServices) seedTask(t *testing.T, courseID uint, taskType models.TaskType, maxPoints float64, numberOfTasks int) *models.Task {
	t.Helper()

	task, err := ts.Tasks.CreateTask(TaskInput{
		Type:          taskType,
		MaxPoints:     maxPoints,
		NumberOfTasks: numberOfTasks,
		CourseID:      courseID,
	})
	require.NoError(t, err)
	return task
}

func (ts *testServices) seedActivity(t *testing.T, name string, points float64, taskID, studentID uint) *models.Activity {
	t.Helper()

	activity, err := ts.Activities.CreateActivity(ActivityInput{
		ActivityName: name,
		Points:       points,
		Comment:      "test activity",
		TaskID:       taskID,
		StudentID:    studentID,
	})
	require.NoError(t, err)
	return activity
}
