package loop

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/piresc/fleetmap/internal/pkg/logger"
)

// DefaultFrameInterval approximates one display frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// CancelFunc cancels a scheduled callback. Calling it more than once is a no-op.
type CancelFunc func()

// Scheduler is the cooperative execution surface a map session runs on.
// Callbacks passed to Post, AfterFunc, Every and RequestFrame run on the
// session's single loop goroutine. Functions passed to Go run on their own
// goroutine and must hand results back through Post.
type Scheduler interface {
	Now() time.Time
	Post(fn func())
	Go(fn func())
	AfterFunc(d time.Duration, fn func()) CancelFunc
	Every(d time.Duration, fn func()) CancelFunc
	RequestFrame(fn func()) CancelFunc
}

// Loop is a single goroutine task queue. The queue is unbounded so that
// posting from inside a task never blocks.
type Loop struct {
	name          string
	frameInterval time.Duration

	mu     sync.Mutex
	queue  []func()
	wakeup chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a loop. Run must be called to start processing tasks.
func New(name string, frameInterval time.Duration) *Loop {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	return &Loop{
		name:          name,
		frameInterval: frameInterval,
		wakeup:        make(chan struct{}, 1),
		done:          make(chan struct{}),
	}
}

// Run processes tasks until ctx is cancelled or Close is called.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.Close()
			return
		case <-l.done:
			return
		case <-l.wakeup:
		}

		for {
			task, ok := l.next()
			if !ok {
				break
			}
			l.exec(task)
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	task := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return task, true
}

func (l *Loop) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic in session loop",
				logger.String("loop", l.name),
				logger.String("panic", fmt.Sprintf("%v", r)))
		}
	}()
	task()
}

// Close stops the loop. Pending tasks are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
		l.mu.Lock()
		l.queue = nil
		l.mu.Unlock()
	})
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post enqueues fn to run on the loop goroutine.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}

	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wakeup <- struct{}{}:
	default:
	}
}

func (l *Loop) Go(fn func()) {
	go fn()
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) CancelFunc {
	var cancelled atomic.Bool
	t := time.AfterFunc(d, func() {
		l.Post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}

func (l *Loop) Every(d time.Duration, fn func()) CancelFunc {
	var cancelled atomic.Bool
	stop := make(chan struct{})
	ticker := time.NewTicker(d)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Post(func() {
					if !cancelled.Load() {
						fn()
					}
				})
			case <-stop:
				return
			case <-l.done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancelled.Store(true)
			close(stop)
		})
	}
}

func (l *Loop) RequestFrame(fn func()) CancelFunc {
	return l.AfterFunc(l.frameInterval, fn)
}
