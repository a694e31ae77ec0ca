package leaktest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...any) { r.failed = true }

func TestRun_NoLeak(t *testing.T) {
	Run(t, time.Second, func() {
		done := make(chan struct{})
		go func() { close(done) }()
		<-done
	})
}

func TestCheck_ReportsLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	stop := make(chan struct{})
	defer close(stop)

	checker := NewGoroutineChecker(rec)
	go func() { <-stop }()
	checker.Check(0, 50*time.Millisecond)

	assert.True(t, rec.failed)
}

func TestCheck_WaitsForShutdown(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	go func() { time.Sleep(30 * time.Millisecond) }()
	checker.Check(0, time.Second)

	assert.False(t, rec.failed)
}
