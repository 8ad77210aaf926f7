package handlers

import (
	"attendance/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

type EnrollmentRequest struct {
	CourseID  uint64 `json:"course_id" binding:"required"`
	StudentID uint64 `json:"student_id" binding:"required"`
}

func EnrollmentCreate(c *gin.Context, lecturer *models.Lecturer) {
	req := EnrollmentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, ok := loadOwnedCourse(c, req.CourseID, lecturer); !ok {
		return
	}
	if _, ok := loadStudent(c, req.StudentID); !ok {
		return
	}
	enrollment, err := models.Enroll(req.CourseID, req.StudentID)
	if err != nil {
		internalError(c, "enrollment_create", err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

// EnrollmentList returns the students enrolled in the course
func EnrollmentList(c *gin.Context, lecturer *models.Lecturer) {
	courseID, ok := paramID(c, "course_id")
	if !ok {
		return
	}
	if _, ok = loadOwnedCourse(c, courseID, lecturer); !ok {
		return
	}
	students, err := models.EnrolledStudents(courseID)
	if err != nil {
		internalError(c, "enrollment_list", err)
		return
	}
	c.JSON(http.StatusOK, students)
}
