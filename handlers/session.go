package handlers

import (
	"attendance/models"
	"attendance/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SessionRequest struct {
	CourseID  uint64 `json:"course_id" binding:"required"`
	MeetingNo int    `json:"meeting_no" binding:"required,min=1"`
}

// SessionStart opens the meeting (or returns it when already started) and prepares its report
func SessionStart(c *gin.Context, lecturer *models.Lecturer) {
	req := SessionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, ok := loadOwnedCourse(c, req.CourseID, lecturer); !ok {
		return
	}
	session, err := models.SessionFor(req.CourseID, req.MeetingNo)
	if err != nil {
		internalError(c, "session_start", err)
		return
	}
	if _, err = models.RecountReport(session); err != nil {
		internalError(c, "session_start", err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// loadOwnedSession answers 404 itself for missing sessions and sessions of foreign courses
func loadOwnedSession(c *gin.Context, lecturer *models.Lecturer) (models.Session, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return models.Session{}, false
	}
	session, err := models.SessionByID(id)
	if errors.Is(err, models.ErrNotFound) || (err == nil && session.Course.LecturerID != lecturer.ID) {
		c.JSON(http.StatusNotFound, SessionNotFoundResponse)
		return models.Session{}, false
	} else if err != nil {
		internalError(c, "session_load", err)
		return models.Session{}, false
	}
	return session, true
}

func SessionFinish(c *gin.Context, lecturer *models.Lecturer) {
	session, ok := loadOwnedSession(c, lecturer)
	if !ok {
		return
	}
	if err := session.Finish(); err != nil {
		internalError(c, "session_finish", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "message": "Session finished", "session": session})
}

func SessionList(c *gin.Context, lecturer *models.Lecturer) {
	courseID := utils.StringToUInt64(c.Query("course_id"))
	sessions, err := models.SessionList(lecturer.ID, courseID)
	if err != nil {
		internalError(c, "session_list", err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}
