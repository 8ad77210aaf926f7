package handlers

import (
	"attendance/config"
	"attendance/logging"
	"attendance/models"
	"attendance/utils"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const feedWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	origins := config.CorsOrigins()
	return slices.Contains(origins, "*") || slices.Contains(origins, origin)
}

// SessionFeed streams the attendance events of a session over a websocket
func (s *Services) SessionFeed(c *gin.Context, lecturer *models.Lecturer) {
	session, ok := loadOwnedSession(c, lecturer)
	if !ok {
		return
	}
	log := logging.WithOperation(logging.L(), "session_feed", utils.RequestID(c)).
		With(zap.Uint64("session_id", session.ID))
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Setup client
	var writeMutex sync.Mutex
	isConnected := true
	write := func(mt int, data []byte) bool {
		writeMutex.Lock()
		defer writeMutex.Unlock()
		if !isConnected {
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := conn.WriteMessage(mt, data); err != nil {
			log.Debug("websocket write failed", zap.Error(err))
			isConnected = false
			return false
		}
		return true
	}
	unsubscribe := s.Hub.Subscribe(session.ID, func(data []byte) bool {
		return write(websocket.TextMessage, data)
	})
	defer unsubscribe()
	// Main read cycle
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			writeMutex.Lock()
			isConnected = false
			writeMutex.Unlock()
			break
		}
		if string(message) == "ping" {
			write(mt, []byte("pong"))
		}
	}
}
