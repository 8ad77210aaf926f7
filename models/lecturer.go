package models

import (
	"attendance/db"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Lecturer struct {
	ID           uint64 `gorm:"primaryKey"`
	CreatedAt    int64
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
}

func LecturerRegister(name, email, plainTextPassword string) (l Lecturer, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var count int64
	if err = db.Instance.Model(&Lecturer{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return
	}
	if count > 0 {
		return l, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return
	}
	l = Lecturer{
		CreatedAt:    time.Now().Unix(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	return l, db.Instance.Create(&l).Error
}

func LecturerLogin(email, plainTextPassword string) (l Lecturer, err error) {
	err = db.Instance.First(&l, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return Lecturer{}, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(plainTextPassword)) != nil {
		return Lecturer{}, ErrBadCredentials
	}
	return l, nil
}

func LecturerByID(id uint64) (l Lecturer, err error) {
	err = db.Instance.First(&l, id).Error
	return l, notFound(err)
}

// notFound maps gorm's record-not-found to ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
