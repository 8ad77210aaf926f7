package handlers

import (
	"attendance/config"
	"attendance/logging"
	"attendance/models"
	"attendance/processing"
	"attendance/push"
	"attendance/storage"
	"attendance/utils"
	"bytes"
	"context"
	"errors"
	"image"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const snapshotSize = 640

type MarkFaceResponse struct {
	AttendanceID uint64                  `json:"attendance_id"`
	Status       models.AttendanceStatus `json:"status"`
	StudentID    uint64                  `json:"student_id"`
	StudentName  string                  `json:"student_name"`
	Confidence   float64                 `json:"confidence"`
	SnapshotKey  string                  `json:"snapshot_key,omitempty"`
}

type MarkManualRequest struct {
	StudentID uint64                  `json:"student_id" binding:"required"`
	CourseID  uint64                  `json:"course_id" binding:"required"`
	MeetingNo int                     `json:"meeting_no" binding:"required,min=1"`
	Status    models.AttendanceStatus `json:"status" binding:"required"`
}

type AttendanceRecord struct {
	AttendanceID uint64                  `json:"attendance_id"`
	StudentID    uint64                  `json:"student_id"`
	StudentName  string                  `json:"student_name"`
	Status       models.AttendanceStatus `json:"status"`
	Timestamp    time.Time               `json:"timestamp"`
}

// MarkFace recognizes the student in an uploaded frame and marks them present
func (s *Services) MarkFace(c *gin.Context, lecturer *models.Lecturer) {
	courseID := utils.StringToUInt64(c.Query("course_id"))
	meetingNo, ok := utils.StringToInt(c.Query("meeting_no"))
	if courseID == 0 || !ok || meetingNo < 1 {
		c.JSON(http.StatusBadRequest, Response{"course_id and meeting_no are required"})
		return
	}
	course, ok := loadOwnedCourse(c, courseID, lecturer)
	if !ok {
		return
	}
	img, ok := readUploadedImage(c)
	if !ok {
		return
	}

	log := logging.WithOperation(logging.L(), "mark_face", utils.RequestID(c))
	match, recognized, err := s.Recognition.Recognize(c.Request.Context(), img)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, processing.ErrBusy):
		log.Warn("recognition unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, TimeoutResponse)
		return
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		internalError(c, "mark_face", err)
		return
	}
	if !recognized || match.Confidence < config.ATTENDANCE_MIN_CONFIDENCE {
		log.Info("face not recognized", zap.Bool("detected", recognized), zap.Float64("confidence", match.Confidence))
		c.JSON(http.StatusUnprocessableEntity, NotRecognizedResponse)
		return
	}

	student, err := models.StudentByIdentity(match.Identity)
	if errors.Is(err, models.ErrNotFound) {
		log.Warn("recognized identity has no student", zap.String("identity", match.Identity))
		c.JSON(http.StatusNotFound, StudentNotFoundResponse)
		return
	} else if err != nil {
		internalError(c, "mark_face", err)
		return
	}
	if !checkEnrolled(c, course.ID, student.ID) {
		return
	}
	session, err := models.SessionFor(course.ID, meetingNo)
	if err != nil {
		internalError(c, "mark_face", err)
		return
	}

	previous, _ := models.AttendanceFind(session.ID, student.ID)
	confidence := match.Confidence
	record := models.Attendance{
		SessionID:   session.ID,
		StudentID:   student.ID,
		Status:      models.StatusPresent,
		Confidence:  &confidence,
		SnapshotKey: s.saveSnapshot(c.Request.Context(), log, session.ID, student.ID, img),
	}
	if !markAttendance(c, "mark_face", &record, session) {
		return
	}
	s.dropSnapshot(c.Request.Context(), log, previous.SnapshotKey, record.SnapshotKey)
	log.Info("attendance marked",
		zap.Uint64("student_id", student.ID),
		zap.String("identity", match.Identity),
		zap.Float64("confidence", confidence))
	s.emitAttendance(session, &student, &record)

	c.JSON(http.StatusOK, MarkFaceResponse{
		AttendanceID: record.ID,
		Status:       record.Status,
		StudentID:    student.ID,
		StudentName:  student.Name,
		Confidence:   confidence,
		SnapshotKey:  record.SnapshotKey,
	})
}

// MarkManual sets the status of a student, e.g. sick or absent without notice, or corrects a mark
func (s *Services) MarkManual(c *gin.Context, lecturer *models.Lecturer) {
	req := MarkManualRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !req.Status.Valid() {
		badRequest(c, models.ErrInvalidStatus)
		return
	}
	if _, ok := loadOwnedCourse(c, req.CourseID, lecturer); !ok {
		return
	}
	student, ok := loadStudent(c, req.StudentID)
	if !ok {
		return
	}
	if !checkEnrolled(c, req.CourseID, student.ID) {
		return
	}
	session, err := models.SessionFor(req.CourseID, req.MeetingNo)
	if err != nil {
		internalError(c, "mark_manual", err)
		return
	}
	previous, _ := models.AttendanceFind(session.ID, student.ID)
	record := models.Attendance{
		SessionID: session.ID,
		StudentID: student.ID,
		Status:    req.Status,
	}
	if !markAttendance(c, "mark_manual", &record, session) {
		return
	}
	log := logging.WithOperation(logging.L(), "mark_manual", utils.RequestID(c))
	s.dropSnapshot(c.Request.Context(), log, previous.SnapshotKey, record.SnapshotKey)
	s.emitAttendance(session, &student, &record)

	c.JSON(http.StatusOK, AttendanceRecord{
		AttendanceID: record.ID,
		StudentID:    student.ID,
		StudentName:  student.Name,
		Status:       record.Status,
		Timestamp:    record.Timestamp,
	})
}

func readUploadedImage(c *gin.Context) (image.Image, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"file is required"})
		return nil, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	defer file.Close()
	img, _, err := utils.DecodeImage(file, int64(config.MAX_UPLOAD_MB)<<20)
	if errors.Is(err, utils.ErrTooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, Response{err.Error()})
		return nil, false
	} else if err != nil {
		c.JSON(http.StatusBadRequest, InvalidImageResponse)
		return nil, false
	}
	return img, true
}

func checkEnrolled(c *gin.Context, courseID, studentID uint64) bool {
	enrolled, err := models.IsEnrolled(courseID, studentID)
	if err != nil {
		internalError(c, "enrollment_check", err)
		return false
	}
	if !enrolled {
		c.JSON(http.StatusBadRequest, NotEnrolledResponse)
		return false
	}
	return true
}

// markAttendance upserts the record and refreshes the session report
func markAttendance(c *gin.Context, operation string, record *models.Attendance, session models.Session) bool {
	if err := models.UpsertAttendance(record); err != nil {
		internalError(c, operation, err)
		return false
	}
	if _, err := models.RecountReport(session); err != nil {
		internalError(c, operation, err)
		return false
	}
	return true
}

// saveSnapshot stores a downscaled copy of the frame, failures only cost the snapshot
func (s *Services) saveSnapshot(ctx context.Context, log *zap.Logger, sessionID, studentID uint64, img image.Image) string {
	if s.Snapshots == nil {
		return ""
	}
	buf := bytes.Buffer{}
	if _, err := utils.CreateThumb(snapshotSize, img, &buf); err != nil {
		log.Warn("snapshot encoding failed", zap.Error(err))
		return ""
	}
	key := storage.NewKey(sessionID, studentID)
	if err := s.Snapshots.Save(ctx, key, &buf, int64(buf.Len()), "image/jpeg"); err != nil {
		log.Warn("snapshot upload failed", zap.String("storage", s.Snapshots.String()), zap.Error(err))
		return ""
	}
	return key
}

// dropSnapshot removes a snapshot that a new mark replaced
func (s *Services) dropSnapshot(ctx context.Context, log *zap.Logger, old, current string) {
	if s.Snapshots == nil || old == "" || old == current {
		return
	}
	if err := s.Snapshots.Delete(ctx, old); err != nil {
		log.Warn("snapshot delete failed", zap.String("key", old), zap.Error(err))
	}
}

// AttendanceSnapshot streams the frame stored with a face mark
func (s *Services) AttendanceSnapshot(c *gin.Context, lecturer *models.Lecturer) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	record, err := models.AttendanceByID(id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, AttendanceNotFoundResponse)
		return
	} else if err != nil {
		internalError(c, "attendance_snapshot", err)
		return
	}
	if _, ok = loadOwnedCourse(c, record.Session.CourseID, lecturer); !ok {
		return
	}
	if s.Snapshots == nil || record.SnapshotKey == "" {
		c.JSON(http.StatusNotFound, SnapshotNotFoundResponse)
		return
	}
	buf := bytes.Buffer{}
	if _, err = s.Snapshots.Load(c.Request.Context(), record.SnapshotKey, &buf); err != nil {
		internalError(c, "attendance_snapshot", err)
		return
	}
	c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
}

func (s *Services) emitAttendance(session models.Session, student *models.Student, record *models.Attendance) {
	ev := push.NewAttendanceEvent(session.ID, session.CourseID, session.MeetingNo, student.ID)
	ev.StudentName = student.Name
	ev.NIM = student.NIM
	ev.Status = string(record.Status)
	ev.Confidence = record.Confidence
	ev.Timestamp = record.Timestamp.Unix()
	s.emit(ev)
}
