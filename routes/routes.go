package routes

import (
	"smarty/config"
	"smarty/controllers"
	"smarty/middleware"
	"smarty/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Services
	accountService := services.NewAccountService(db)
	authService := services.NewAuthService(db, accountService)
	majorService := services.NewMajorService(db)
	statusService := services.NewStatusService(db)
	courseService := services.NewCourseService(db)
	studentService := services.NewStudentService(db, majorService, statusService, accountService)
	professorService := services.NewProfessorService(db, accountService)
	taskService := services.NewTaskService(db, courseService)
	activityService := services.NewActivityService(db, taskService, studentService, courseService)
	examService := services.NewExamService(db, studentService, courseService, activityService)
	engagementService := services.NewEngagementService(db, professorService, courseService)
	postService := services.NewPostService(db, professorService)
	reportService := services.NewReportService(db, postService, studentService)

	// Course, student and professor lookups reference each other, so the
	// cross links are assigned after construction.
	courseService.Professors = professorService
	courseService.Students = studentService
	studentService.Courses = courseService
	professorService.Courses = courseService

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	professorMiddleware := middleware.RoleMiddleware(cfg, "professor")

	// Auth routes
	authController := controllers.NewAuthController(authService, cfg)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authMiddleware, authController.Me)

	// Course routes
	courseController := controllers.NewCourseController(courseService, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", courseController.GetAllCourses)
	courses.Get("/year/:year", courseController.GetCoursesByYear)
	courses.Get("/semester/:semester", courseController.GetCoursesBySemester)
	courses.Get("/professor/:professorId", courseController.GetCoursesByProfessor)
	courses.Get("/student/:studentId", courseController.GetCoursesByStudent)
	courses.Get("/:id", courseController.GetCourseByID)
	courses.Post("/", professorMiddleware, courseController.CreateCourse)
	courses.Put("/:id", professorMiddleware, courseController.UpdateCourse)
	courses.Delete("/:id", professorMiddleware, courseController.DeleteCourse)

	// Task routes
	taskController := controllers.NewTaskController(taskService, cfg)
	tasks := app.Group("/api/tasks", authMiddleware)
	tasks.Get("/", taskController.GetAllTasks)
	tasks.Get("/course/:courseId", taskController.GetTasksByCourse)
	tasks.Get("/:id", taskController.GetTaskByID)
	tasks.Post("/", professorMiddleware, taskController.CreateTask)
	tasks.Put("/:id", professorMiddleware, taskController.UpdateTask)
	tasks.Delete("/:id", professorMiddleware, taskController.DeleteTask)

	// Activity routes
	activityController := controllers.NewActivityController(activityService, cfg)
	activities := app.Group("/api/activities", authMiddleware)
	activities.Get("/", activityController.GetAllActivities)
	activities.Get("/student/:studentId", activityController.GetStudentActivitiesByCourse)
	activities.Get("/student/:studentId/course/:courseId/points", activityController.GetTotalActivityPointsByCourse)
	activities.Get("/:id", activityController.GetActivityByID)
	activities.Post("/", professorMiddleware, activityController.CreateActivity)
	activities.Put("/:id", professorMiddleware, activityController.UpdateActivity)
	activities.Delete("/:id", professorMiddleware, activityController.DeleteActivity)

	// Exam routes
	examController := controllers.NewExamController(examService, cfg)
	exams := app.Group("/api/exams", authMiddleware)
	exams.Get("/", examController.GetAllExams)
	exams.Get("/student/:studentId/history", examController.GetExamHistoryByStudent)
	exams.Get("/student/:studentId/passed", examController.GetPassedExamsByStudent)
	exams.Get("/:id", examController.GetExamByID)
	exams.Post("/", professorMiddleware, examController.CreateExam)
	exams.Put("/:id", professorMiddleware, examController.UpdateExam)
	exams.Delete("/:id", professorMiddleware, examController.DeleteExam)

	// Student routes
	studentController := controllers.NewStudentController(studentService, authService, cfg)
	students := app.Group("/api/students", authMiddleware)
	students.Get("/", studentController.GetAllStudents)
	students.Get("/email", studentController.GetStudentByEmail)
	students.Get("/major/:majorId", studentController.GetStudentsByMajor)
	students.Get("/status/:statusId", studentController.GetStudentsByStudyStatus)
	students.Get("/passed/:courseId", studentController.GetStudentsWhoPassedCourse)
	students.Get("/:id/average", studentController.GetAverageGradeOfStudent)
	students.Get("/:id", studentController.GetStudentByID)
	students.Post("/", professorMiddleware, studentController.CreateStudent)
	students.Put("/:id/password", studentController.UpdatePassword)
	students.Put("/:id", professorMiddleware, studentController.UpdateStudent)
	students.Delete("/:id", professorMiddleware, studentController.DeleteStudent)

	// Professor routes
	professorController := controllers.NewProfessorController(professorService, authService, cfg)
	professors := app.Group("/api/professors", authMiddleware)
	professors.Get("/", professorController.GetAllProfessors)
	professors.Get("/email", professorController.GetProfessorByEmail)
	professors.Get("/course/:courseId", professorController.GetProfessorsByCourse)
	professors.Get("/:id", professorController.GetProfessorByID)
	professors.Post("/", professorMiddleware, professorController.CreateProfessor)
	professors.Put("/:id/password", professorController.UpdatePassword)
	professors.Put("/:id", professorMiddleware, professorController.UpdateProfessor)
	professors.Delete("/:id", professorMiddleware, professorController.DeleteProfessor)

	// Engagement routes
	engagementController := controllers.NewEngagementController(engagementService, cfg)
	engagements := app.Group("/api/engagements", authMiddleware)
	engagements.Get("/", engagementController.GetAllEngagements)
	engagements.Get("/:id", engagementController.GetEngagementByID)
	engagements.Post("/", professorMiddleware, engagementController.CreateEngagement)
	engagements.Put("/:id", professorMiddleware, engagementController.UpdateEngagement)
	engagements.Delete("/:id", professorMiddleware, engagementController.DeleteEngagement)

	// Major routes
	majorController := controllers.NewMajorController(majorService, cfg)
	majors := app.Group("/api/majors", authMiddleware)
	majors.Get("/", majorController.GetAllMajors)
	majors.Get("/:id", majorController.GetMajorByID)
	majors.Post("/", professorMiddleware, majorController.CreateMajor)

	// Study status routes
	statusController := controllers.NewStatusController(statusService, cfg)
	statuses := app.Group("/api/statuses", authMiddleware)
	statuses.Get("/", statusController.GetAllStatuses)
	statuses.Get("/:id", statusController.GetStatusByID)

	// Post routes
	postController := controllers.NewPostController(postService, cfg)
	posts := app.Group("/api/posts", authMiddleware)
	posts.Get("/", postController.GetAllPosts)
	posts.Get("/:id", postController.GetPostByID)
	posts.Post("/", professorMiddleware, postController.CreatePost)
	posts.Delete("/:id", professorMiddleware, postController.DeletePost)

	// Report routes
	reportController := controllers.NewReportController(reportService, cfg)
	reports := app.Group("/api/reports", authMiddleware)
	reports.Get("/", reportController.GetAllReports)
	reports.Get("/:id", reportController.GetReportByID)
	reports.Post("/", reportController.CreateReport)
	reports.Delete("/:id", professorMiddleware, reportController.DeleteReport)
}
