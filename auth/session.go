package auth

import (
	"attendance/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const lecturerIdKey = "id"

// Session is the cookie session used by the browser frontend
type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginLecturer(id uint64) error {
	s.Set(lecturerIdKey, id)
	return s.Save()
}

// HasSession is false when the sessions middleware isn't installed
func HasSession(c *gin.Context) bool {
	_, exists := c.Get(sessions.DefaultKey)
	return exists
}

func (s *Session) LogoutLecturer() {
	s.Delete(lecturerIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = s.Save()
}

func (s *Session) LecturerID() uint64 {
	id, _ := s.Get(lecturerIdKey).(uint64)
	return id
}

// Lecturer resolves the authenticated lecturer from a bearer token (header, or the
// access_token query parameter used by websocket clients) or, failing that, from the
// session cookie. The zero value means anonymous.
func Lecturer(c *gin.Context) (lecturer models.Lecturer) {
	var id uint64
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		token = c.Query("access_token")
	}
	if token != "" {
		id, _ = ParseToken(token)
	} else if HasSession(c) {
		id = LoadSession(c).LecturerID()
	}
	if id == 0 {
		return
	}
	lecturer, err := models.LecturerByID(id)
	if err != nil {
		return models.Lecturer{}
	}
	return
}
