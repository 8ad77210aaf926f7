package processing

import (
	"attendance/faces"
	"attendance/logging"
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrBusy = errors.New("recognition pool is shutting down")

// Recognizer runs the face pipeline on a decoded image
type Recognizer interface {
	Recognize(img image.Image) (faces.Match, bool, error)
}

type result struct {
	match faces.Match
	ok    bool
	err   error
}

// Pool bounds the number of concurrent recognitions. The pipeline itself can't be
// interrupted: a request that times out stops waiting, but its slot is only released
// once the recognition finishes.
type Pool struct {
	recognizer Recognizer
	slots      chan struct{}
	timeout    time.Duration
	done       chan struct{}
	closeOnce  sync.Once
}

func NewPool(recognizer Recognizer, workers int, timeout time.Duration) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		recognizer: recognizer,
		slots:      make(chan struct{}, workers),
		timeout:    timeout,
		done:       make(chan struct{}),
	}
}

// Recognize waits for a free slot and runs the recognizer on img. It returns
// context.DeadlineExceeded when the pool timeout (or ctx) expires first.
func (p *Pool) Recognize(ctx context.Context, img image.Image) (faces.Match, bool, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	select {
	case <-p.done:
		return faces.Match{}, false, ErrBusy
	default:
	}
	select {
	case p.slots <- struct{}{}:
	case <-p.done:
		return faces.Match{}, false, ErrBusy
	case <-ctx.Done():
		return faces.Match{}, false, ctx.Err()
	}

	out := make(chan result, 1)
	go func() {
		defer func() { <-p.slots }()
		start := time.Now()
		m, ok, err := p.recognizer.Recognize(img)
		logging.L().Debug("recognition finished",
			zap.Bool("recognized", ok),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
		out <- result{m, ok, err}
	}()

	select {
	case r := <-out:
		return r.match, r.ok, r.err
	case <-ctx.Done():
		return faces.Match{}, false, ctx.Err()
	}
}

// Busy returns the number of recognitions currently running
func (p *Pool) Busy() int {
	return len(p.slots)
}

func (p *Pool) Workers() int {
	return cap(p.slots)
}

// Close rejects new work. Running recognitions finish in the background.
func (p *Pool) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}
