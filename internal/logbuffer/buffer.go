// Package logbuffer implements a bounded ring buffer over the host's log
// stream. The buffer is constructed explicitly at server start, subscribed to
// the host's LogSource, and torn down at server stop; it replaces any notion
// of an ambient process-wide log sink.
// file: internal/logbuffer/buffer.go
package logbuffer

import (
	"sync"

	"github.com/scenebridge/scenebridge/internal/host"
	"github.com/scenebridge/scenebridge/internal/logging"
)

// Buffer retains the most recent entries of a log stream, up to a fixed
// capacity, and serves bounded tail reads. Appends and reads may be
// concurrent; all access is mutex-guarded so a read never observes a torn
// collection.
type Buffer struct {
	mu        sync.Mutex
	entries   []host.LogEntry // ring storage, len == capacity
	start     int             // index of the oldest retained entry
	count     int             // number of retained entries, <= capacity
	capacity  int
	readLimit int

	unsubscribe func()
	logger      logging.Logger
}

// TailSnapshot is the result of a tail read. TotalLogs is the number of
// retained entries at read time; ReturnedLogs is the number actually
// returned, bounded by the buffer's read limit.
type TailSnapshot struct {
	TotalLogs    int             `json:"totalLogs"`
	ReturnedLogs int             `json:"returnedLogs"`
	Logs         []host.LogEntry `json:"logs"`
}

// New creates a buffer retaining up to capacity entries, with tail reads
// returning at most readLimit of the most recent ones.
func New(capacity, readLimit int, logger logging.Logger) *Buffer {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	if capacity < 1 {
		capacity = 1
	}
	if readLimit < 1 || readLimit > capacity {
		readLimit = capacity
	}
	return &Buffer{
		entries:   make([]host.LogEntry, capacity),
		capacity:  capacity,
		readLimit: readLimit,
		logger:    logger.WithField("component", "log_buffer"),
	}
}

// Start subscribes the buffer to the given log source. Calling Start twice
// replaces the previous subscription.
func (b *Buffer) Start(source host.LogSource) {
	b.mu.Lock()
	prev := b.unsubscribe
	b.mu.Unlock()
	if prev != nil {
		prev()
	}

	unsubscribe := source.Subscribe(b.Append)
	b.mu.Lock()
	b.unsubscribe = unsubscribe
	b.mu.Unlock()
	b.logger.Debug("Log buffer subscribed to host log stream.")
}

// Stop removes the subscription. Retained entries stay readable.
func (b *Buffer) Stop() {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
		b.logger.Debug("Log buffer unsubscribed from host log stream.")
	}
}

// Append adds an entry, evicting the oldest when the buffer is full.
func (b *Buffer) Append(entry host.LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count < b.capacity {
		b.entries[(b.start+b.count)%b.capacity] = entry
		b.count++
		return
	}
	b.entries[b.start] = entry
	b.start = (b.start + 1) % b.capacity
}

// Len returns the number of retained entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Tail returns the most recent entries, oldest first, bounded by the read
// limit. The returned slice is a copy.
func (b *Buffer) Tail() TailSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	returned := b.count
	if returned > b.readLimit {
		returned = b.readLimit
	}

	logs := make([]host.LogEntry, returned)
	for i := 0; i < returned; i++ {
		idx := (b.start + b.count - returned + i) % b.capacity
		logs[i] = b.entries[idx]
	}

	return TailSnapshot{
		TotalLogs:    b.count,
		ReturnedLogs: returned,
		Logs:         logs,
	}
}
