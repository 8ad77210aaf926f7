package handlers

import (
	"attendance/models"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type StudentRequest struct {
	Name   string  `json:"name" binding:"required"`
	NIM    string  `json:"nim" binding:"required"`
	FaceID *string `json:"face_id"`
	Email  *string `json:"email" binding:"omitempty,email"`
}

func (r *StudentRequest) apply(s *models.Student) {
	s.Name = strings.TrimSpace(r.Name)
	s.NIM = strings.TrimSpace(r.NIM)
	s.FaceID = nil
	if r.FaceID != nil && strings.TrimSpace(*r.FaceID) != "" {
		faceID := strings.TrimSpace(*r.FaceID)
		s.FaceID = &faceID
	}
	s.Email = r.Email
}

// loadStudent answers 404 itself when the student doesn't exist
func loadStudent(c *gin.Context, id uint64) (models.Student, bool) {
	student, err := models.StudentByID(id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, StudentNotFoundResponse)
		return student, false
	} else if err != nil {
		internalError(c, "student_load", err)
		return student, false
	}
	return student, true
}

func StudentList(c *gin.Context, lecturer *models.Lecturer) {
	students, err := models.StudentList()
	if err != nil {
		internalError(c, "student_list", err)
		return
	}
	c.JSON(http.StatusOK, students)
}

func StudentCreate(c *gin.Context, lecturer *models.Lecturer) {
	req := StudentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	student := models.Student{}
	req.apply(&student)
	err := models.StudentCreate(&student)
	if errors.Is(err, models.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, Response{"NIM or face ID already registered"})
		return
	} else if err != nil {
		internalError(c, "student_create", err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

func StudentGet(c *gin.Context, lecturer *models.Lecturer) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if student, ok := loadStudent(c, id); ok {
		c.JSON(http.StatusOK, student)
	}
}

func StudentUpdate(c *gin.Context, lecturer *models.Lecturer) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	req := StudentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	student, ok := loadStudent(c, id)
	if !ok {
		return
	}
	req.apply(&student)
	err := models.StudentUpdate(&student)
	if errors.Is(err, models.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, Response{"NIM or face ID already registered"})
		return
	} else if err != nil {
		internalError(c, "student_update", err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func StudentDelete(c *gin.Context, lecturer *models.Lecturer) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	err := models.StudentDelete(id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, StudentNotFoundResponse)
		return
	} else if err != nil {
		internalError(c, "student_delete", err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
