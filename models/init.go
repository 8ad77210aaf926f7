package models

import (
	"attendance/db"
	"errors"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNotEnrolled    = errors.New("student is not enrolled in this course")
	ErrEmailTaken     = errors.New("email already registered")
	ErrInvalidStatus  = errors.New("invalid attendance status")
	ErrBadCredentials = errors.New("invalid credentials")
	ErrDuplicate      = errors.New("already exists")
)

func Init() error {
	return db.Instance.AutoMigrate(
		&Lecturer{},
		&Student{},
		&Course{},
		&Enrollment{},
		&Session{},
		&Attendance{},
		&Report{},
	)
}
