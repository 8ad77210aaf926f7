package handlers

import (
	"attendance/faces"
	"attendance/push"
	"attendance/storage"
	"context"
	"image"
)

// FaceRecognizer runs the recognition pipeline under the caller's deadline
type FaceRecognizer interface {
	Recognize(ctx context.Context, img image.Image) (faces.Match, bool, error)
}

// Services holds what the attendance handlers need beyond the database
type Services struct {
	Recognition FaceRecognizer
	Snapshots   storage.StorageAPI // nil disables snapshots
	Events      *push.Dispatcher
	Hub         *push.Hub
}

func (s *Services) emit(ev push.Event) {
	if s.Events != nil {
		s.Events.Send(&ev)
	}
}
