package testutil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Common test errors
var (
	ErrTest     = errors.New("test error")
	ErrFactory  = errors.New("factory error")
	ErrDisposal = errors.New("disposal error")
)

// TestService is a basic test service. Every instance has a distinct ID.
type TestService struct {
	ID        string
	CreatedAt time.Time
	Param     any
}

// NewTestService creates a new test service
func NewTestService() *TestService {
	return &TestService{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
}

// CountingFactory builds a TestService per call and counts the calls.
type CountingFactory struct {
	calls atomic.Int64
	delay time.Duration
}

// NewCountingFactory creates a CountingFactory. delay slows every call down,
// which widens race windows in concurrency tests.
func NewCountingFactory(delay time.Duration) *CountingFactory {
	return &CountingFactory{delay: delay}
}

// Build is a locator.Factory.
func (f *CountingFactory) Build(param any) (any, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	s := NewTestService()
	s.Param = param
	return s, nil
}

// Calls returns how many times Build ran.
func (f *CountingFactory) Calls() int64 {
	return f.calls.Load()
}

// FailingFactory fails with ErrFactory until Succeed is called.
type FailingFactory struct {
	succeed atomic.Bool
	calls   atomic.Int64
}

// Build is a locator.Factory.
func (f *FailingFactory) Build(param any) (any, error) {
	f.calls.Add(1)
	if !f.succeed.Load() {
		return nil, ErrFactory
	}
	return NewTestService(), nil
}

// Succeed makes later calls succeed.
func (f *FailingFactory) Succeed() {
	f.succeed.Store(true)
}

// Calls returns how many times Build ran.
func (f *FailingFactory) Calls() int64 {
	return f.calls.Load()
}

// CloseRecorder records the order in which disposables are closed.
type CloseRecorder struct {
	mu     sync.Mutex
	closed []string
}

// Record appends name to the close order.
func (r *CloseRecorder) Record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, name)
}

// Closed returns the names in close order.
func (r *CloseRecorder) Closed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.closed...)
}

// TestDisposable implements locator.Disposable.
type TestDisposable struct {
	Name     string
	Recorder *CloseRecorder
	Err      error
}

func (d *TestDisposable) Close() error {
	if d.Recorder != nil {
		d.Recorder.Record(d.Name)
	}
	return d.Err
}

// TestContextDisposable implements locator.DisposableWithContext.
type TestContextDisposable struct {
	Name     string
	Recorder *CloseRecorder
	Ctx      context.Context
}

func (d *TestContextDisposable) Close(ctx context.Context) error {
	d.Ctx = ctx
	if d.Recorder != nil {
		d.Recorder.Record(d.Name)
	}
	return nil
}
