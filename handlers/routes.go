package handlers

import (
	"attendance/auth"

	"github.com/gin-gonic/gin"
)

// Register wires all API end-points into the router
func Register(router gin.IRouter, s *Services) {
	router.GET("/health", s.Health)

	// Lecturer accounts
	router.POST("/auth/register", LecturerRegister)
	router.POST("/auth/login", LecturerLogin)
	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	authRouter.POST("/auth/logout", LecturerLogout)
	authRouter.GET("/auth/me", LecturerMe)
	// Students
	authRouter.GET("/students", StudentList)
	authRouter.POST("/students", StudentCreate)
	authRouter.GET("/students/:id", StudentGet)
	authRouter.PUT("/students/:id", StudentUpdate)
	authRouter.DELETE("/students/:id", StudentDelete)
	// Courses, owner only
	authRouter.GET("/courses", CourseList)
	authRouter.POST("/courses", CourseCreate)
	authRouter.GET("/courses/:id", CourseGet)
	authRouter.PUT("/courses/:id", CourseUpdate)
	authRouter.DELETE("/courses/:id", CourseDelete)
	authRouter.POST("/enrollments", EnrollmentCreate)
	authRouter.GET("/enrollments/:course_id", EnrollmentList)
	// Sessions (meetings)
	authRouter.GET("/sessions", SessionList)
	authRouter.POST("/sessions", SessionStart)
	authRouter.POST("/sessions/:id/finish", SessionFinish)
	authRouter.GET("/sessions/:id/feed", s.SessionFeed)
	// Attendance
	authRouter.POST("/attendance/mark/face", s.MarkFace)
	authRouter.POST("/attendance/mark/manual", s.MarkManual)
	authRouter.GET("/attendance/:id/snapshot", s.AttendanceSnapshot)
	// Reports
	authRouter.GET("/report/:course_id/:meeting_no", ReportGet)
	authRouter.GET("/report/:course_id/:meeting_no/pdf", ReportPDF)
}
