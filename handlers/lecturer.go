package handlers

import (
	"attendance/auth"
	"attendance/models"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LecturerRegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

type LecturerLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LecturerInfo struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func lecturerInfo(l *models.Lecturer) LecturerInfo {
	return LecturerInfo{ID: l.ID, Name: l.Name, Email: l.Email}
}

func LecturerRegister(c *gin.Context) {
	req := LecturerRegisterRequest{}
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	lecturer, err := models.LecturerRegister(req.Name, req.Email, req.Password)
	if errors.Is(err, models.ErrEmailTaken) {
		c.JSON(http.StatusBadRequest, Response{"Email already registered"})
		return
	} else if err != nil {
		internalError(c, "lecturer_register", err)
		return
	}
	c.JSON(http.StatusCreated, lecturerInfo(&lecturer))
}

func LecturerLogin(c *gin.Context) {
	req := LecturerLoginRequest{}
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	lecturer, err := models.LecturerLogin(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, Response{"Incorrect email or password"})
		return
	}
	token, err := auth.IssueToken(lecturer.ID)
	if err != nil {
		internalError(c, "lecturer_login", err)
		return
	}
	if auth.HasSession(c) {
		if err = auth.LoadSession(c).LoginLecturer(lecturer.ID); err != nil {
			internalError(c, "lecturer_login", err)
			return
		}
	}
	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: auth.TokenType})
}

func LecturerLogout(c *gin.Context, lecturer *models.Lecturer) {
	if auth.HasSession(c) {
		auth.LoadSession(c).LogoutLecturer()
	}
	c.JSON(http.StatusOK, OKResponse)
}

func LecturerMe(c *gin.Context, lecturer *models.Lecturer) {
	c.JSON(http.StatusOK, lecturerInfo(lecturer))
}
