package logging

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"n64view/internal/arch"
)

func TestNewLoggerWithWriterLevel(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("N64VIEW_LOG_LEVEL", tt.env)
			lc := NewLoggerWithWriter(&bytes.Buffer{})
			assert.Equal(t, tt.want, lc.GetLevel())
			assert.NoError(t, lc.Close())
		})
	}
}

func TestDiagnosticsWritesWarning(t *testing.T) {
	t.Setenv("N64VIEW_LOG_PREFIX", "test ")
	var buf bytes.Buffer
	lc := NewLoggerWithWriter(&buf)

	sink := Diagnostics(lc.Logger)
	sink.Warn(arch.UnrecognizedTokenWarning{Text: "%lo", Instruction: "addiu $a0, %lo(x)", Address: 0x80000400})

	out := buf.String()
	assert.Contains(t, out, "Unrecognized token")
	assert.Contains(t, out, "%lo")
	assert.Contains(t, out, "0x80000400")
	assert.Contains(t, out, "test")
}

func TestCollectorConcurrent(t *testing.T) {
	var forwarded int
	var mu sync.Mutex
	c := NewCollector(arch.DiagnosticsFunc(func(arch.UnrecognizedTokenWarning) {
		mu.Lock()
		forwarded++
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Warn(arch.UnrecognizedTokenWarning{Text: "x", Address: uint32(i)})
		}()
	}
	wg.Wait()

	require.Equal(t, 100, c.Len())
	assert.Len(t, c.Warnings(), 100)
	assert.Equal(t, 100, forwarded)
}

func TestLogFileName(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "n64view-20240309-140507-debug.log", LogFileName(ts))
}
