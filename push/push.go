package push

import (
	"attendance/logging"
	"sync"
	"time"

	"go.uber.org/zap"
)

const EventTypeAttendance = "attendance"

// Event is emitted every time a student is marked in a session
type Event struct {
	Type        string   `json:"type"`
	SessionID   uint64   `json:"session_id"`
	CourseID    uint64   `json:"course_id"`
	MeetingNo   int      `json:"meeting_no"`
	StudentID   uint64   `json:"student_id"`
	StudentName string   `json:"student_name"`
	NIM         string   `json:"nim"`
	Status      string   `json:"status"`
	Confidence  *float64 `json:"confidence"`
	Timestamp   int64    `json:"timestamp"`
}

func NewAttendanceEvent(sessionID, courseID uint64, meetingNo int, studentID uint64) Event {
	return Event{
		Type:      EventTypeAttendance,
		SessionID: sessionID,
		CourseID:  courseID,
		MeetingNo: meetingNo,
		StudentID: studentID,
		Timestamp: time.Now().Unix(),
	}
}

// Sink delivers events somewhere (MQTT, websocket clients)
type Sink interface {
	Send(ev *Event) error
}

// Dispatcher fans events out to all sinks. Failing sinks are logged, never fatal.
type Dispatcher struct {
	mu    sync.RWMutex
	sinks []Sink
}

func (d *Dispatcher) Add(s Sink) {
	if s == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sinks = append(d.sinks, s)
}

func (d *Dispatcher) Send(ev *Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, s := range d.sinks {
		if err := s.Send(ev); err != nil {
			logging.L().Warn("event delivery failed",
				zap.String("type", ev.Type),
				zap.Uint64("session_id", ev.SessionID),
				zap.Error(err))
		}
	}
}
