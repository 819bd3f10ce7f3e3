package core

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureCrash(t *testing.T) (*bytes.Buffer, chan int) {
	t.Helper()

	var buf bytes.Buffer
	codes := make(chan int, 4)

	crashMu.Lock()
	crashOutput = &buf
	crashExit = func(code int) { codes <- code }
	crashMu.Unlock()

	t.Cleanup(func() {
		crashMu.Lock()
		crashOutput = os.Stderr
		crashExit = os.Exit
		crashCleanup = nil
		crashMu.Unlock()
	})
	return &buf, codes
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	buf, codes := captureCrash(t)

	HandleCrash(nil)

	assert.Empty(t, buf.String())
	assert.Empty(t, codes)
}

func TestHandleCrashRunsCleanupOnce(t *testing.T) {
	buf, codes := captureCrash(t)

	calls := 0
	SetCrashCleanup(func() { calls++ })

	HandleCrash("boom")
	HandleCrash("again")

	assert.Equal(t, 1, calls)
	assert.Contains(t, buf.String(), "CRASH DETECTED: boom")
	assert.Contains(t, buf.String(), "Stack Trace:")
	assert.Equal(t, 1, <-codes)
	assert.Equal(t, 1, <-codes)
}

func TestGoRecoversPanic(t *testing.T) {
	buf, codes := captureCrash(t)

	Go(func() { panic("worker failed") })

	code := <-codes
	require.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "worker failed")
}
