package models

import (
	"attendance/db"
	"time"
)

// Session is one meeting of a course
type Session struct {
	ID         uint64     `gorm:"primaryKey" json:"id"`
	CourseID   uint64     `gorm:"uniqueIndex:uniq_course_meeting;priority:1" json:"course_id"`
	Course     Course     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	MeetingNo  int        `gorm:"uniqueIndex:uniq_course_meeting;priority:2" json:"meeting_no"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

// TableName keeps "sessions" free for the cookie session store
func (Session) TableName() string {
	return "class_sessions"
}

// SessionFor returns the session of the given meeting, starting it when needed
func SessionFor(courseID uint64, meetingNo int) (s Session, err error) {
	err = db.Instance.
		Where(map[string]interface{}{"course_id": courseID, "meeting_no": meetingNo}).
		Attrs(Session{StartedAt: time.Now().UTC()}).
		FirstOrCreate(&s).Error
	return
}

func SessionByID(id uint64) (s Session, err error) {
	err = db.Instance.Preload("Course").First(&s, id).Error
	return s, notFound(err)
}

func SessionFind(courseID uint64, meetingNo int) (s Session, err error) {
	err = db.Instance.Where("course_id = ? AND meeting_no = ?", courseID, meetingNo).First(&s).Error
	return s, notFound(err)
}

func (s *Session) Finish() error {
	now := time.Now().UTC()
	s.FinishedAt = &now
	if err := db.Instance.Model(s).Update("finished_at", now).Error; err != nil {
		return err
	}
	return db.Instance.Model(&Report{}).Where("session_id = ?", s.ID).Update("finished_at", now).Error
}

// SessionList returns the sessions of all courses owned by the lecturer,
// optionally narrowed to one course
func SessionList(lecturerID, courseID uint64) (result []Session, err error) {
	tx := db.Instance.
		Joins("JOIN courses ON courses.id = class_sessions.course_id").
		Where("courses.lecturer_id = ?", lecturerID)
	if courseID != 0 {
		tx = tx.Where("class_sessions.course_id = ?", courseID)
	}
	err = tx.Order("class_sessions.course_id ASC, class_sessions.meeting_no ASC").Find(&result).Error
	return
}
