package auth

import (
	"attendance/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandlerFunc is called with an authenticated lecturer
type HandlerFunc func(c *gin.Context, lecturer *models.Lecturer)

// Router is a wrapper class that adds auth checks + Lecturer pre-loading
type Router struct {
	Base gin.IRoutes
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	lecturer := Lecturer(c)
	if lecturer.ID == 0 {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	handler(c, &lecturer)
}

func (cr *Router) handle(method, path string, handler HandlerFunc) {
	cr.Base.Handle(method, path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.handle(http.MethodPost, path, handler)
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.handle(http.MethodGet, path, handler)
}

func (cr *Router) PUT(path string, handler HandlerFunc) {
	cr.handle(http.MethodPut, path, handler)
}

func (cr *Router) DELETE(path string, handler HandlerFunc) {
	cr.handle(http.MethodDelete, path, handler)
}
