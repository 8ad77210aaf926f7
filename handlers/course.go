package handlers

import (
	"attendance/models"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type CourseRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// loadOwnedCourse answers 404 itself when the course is missing or belongs to someone else
func loadOwnedCourse(c *gin.Context, courseID uint64, lecturer *models.Lecturer) (models.Course, bool) {
	course, err := models.CourseOwned(courseID, lecturer.ID)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, CourseNotFoundResponse)
		return course, false
	} else if err != nil {
		internalError(c, "course_load", err)
		return course, false
	}
	return course, true
}

func CourseList(c *gin.Context, lecturer *models.Lecturer) {
	courses, err := models.CourseList(lecturer.ID)
	if err != nil {
		internalError(c, "course_list", err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func CourseCreate(c *gin.Context, lecturer *models.Lecturer) {
	req := CourseRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	course := models.Course{
		Name:       strings.TrimSpace(req.Name),
		Code:       strings.TrimSpace(req.Code),
		LecturerID: lecturer.ID,
	}
	err := models.CourseCreate(&course)
	if errors.Is(err, models.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, Response{"Course code already registered"})
		return
	} else if err != nil {
		internalError(c, "course_create", err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func CourseGet(c *gin.Context, lecturer *models.Lecturer) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if course, ok := loadOwnedCourse(c, id, lecturer); ok {
		c.JSON(http.StatusOK, course)
	}
}

func CourseUpdate(c *gin.Context, lecturer *models.Lecturer) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	req := CourseRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	course, ok := loadOwnedCourse(c, id, lecturer)
	if !ok {
		return
	}
	course.Name = strings.TrimSpace(req.Name)
	course.Code = strings.TrimSpace(req.Code)
	err := models.CourseUpdate(&course)
	if errors.Is(err, models.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, Response{"Course code already registered"})
		return
	} else if err != nil {
		internalError(c, "course_update", err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func CourseDelete(c *gin.Context, lecturer *models.Lecturer) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok = loadOwnedCourse(c, id, lecturer); !ok {
		return
	}
	if err := models.CourseDelete(id); err != nil {
		internalError(c, "course_delete", err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
