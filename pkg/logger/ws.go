package logger

import (
	"os"
	"path/filepath"
	"sync/atomic"
)

// ReopenableWriteSyncer is a zapcore.WriteSyncer whose underlying file can be reopened
// after logrotate has moved it away.
type ReopenableWriteSyncer struct {
	file string
	cur  atomic.Pointer[os.File]
}

func NewReopenableWriteSyncer(file string) (*ReopenableWriteSyncer, error) {
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	ws := &ReopenableWriteSyncer{
		file: file,
	}
	if err := ws.Reload(); err != nil {
		return nil, err
	}
	return ws, nil
}

func (ws *ReopenableWriteSyncer) Reload() error {
	file, err := os.OpenFile(ws.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if old := ws.cur.Swap(file); old != nil {
		return old.Close()
	}
	return nil
}

func (ws *ReopenableWriteSyncer) Sync() error {
	return ws.cur.Load().Sync()
}

func (ws *ReopenableWriteSyncer) Close() error {
	return ws.cur.Load().Close()
}

func (ws *ReopenableWriteSyncer) Write(p []byte) (n int, err error) {
	return ws.cur.Load().Write(p)
}
