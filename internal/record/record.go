// Package record keeps a copy of every frame received from the server so a session can be
// played back later with --replay.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// How long until a recording is considered stale.
	maxRecordingAge = time.Hour * 24 * 7
	fileExt         = ".jsonl"
	fileTimeFormat  = "20060102-150405"
)

var (
	errRecordDir    = errors.New("recording dir error")
	errRecordCreate = errors.New("recording create error")
	errRecordPrune  = errors.New("recording prune error")
)

// Filesystem stores recordings as newline delimited json files in a single directory.
type Filesystem struct {
	recordDir string
}

func New(recordDir string) (Filesystem, error) {
	if err := os.MkdirAll(recordDir, 0o700); err != nil {
		slog.Error("Failed to make recording root", slog.String("error", err.Error()),
			slog.String("path", recordDir))

		return Filesystem{}, errors.Join(err, errRecordDir)
	}

	return Filesystem{recordDir: recordDir}, nil
}

// Create opens a new, empty recording named after the time it was started.
func (f Filesystem) Create(now time.Time) (*Session, error) {
	filePath := filepath.Join(f.recordDir, now.Format(fileTimeFormat)+fileExt)

	file, errFile := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if errFile != nil {
		return nil, errors.Join(errFile, errRecordCreate)
	}

	return &Session{file: file, mu: &sync.Mutex{}}, nil
}

// Prune removes recordings older than maxRecordingAge and returns how many were removed.
func (f Filesystem) Prune(now time.Time) (int, error) {
	entries, errRead := os.ReadDir(f.recordDir)
	if errRead != nil {
		return 0, errors.Join(errRead, errRecordPrune)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}

		info, errInfo := entry.Info()
		if errInfo != nil {
			return removed, errors.Join(errInfo, errRecordPrune)
		}

		if now.Sub(info.ModTime()) <= maxRecordingAge {
			continue
		}

		if err := os.Remove(filepath.Join(f.recordDir, entry.Name())); err != nil {
			return removed, errors.Join(err, errRecordPrune)
		}

		removed++
	}

	return removed, nil
}

// Session is a single open recording. It is safe to use from multiple goroutines.
type Session struct {
	file io.WriteCloser
	mu   *sync.Mutex
}

// Record appends one frame as a single line. Frames that are not valid json are skipped since
// they could never be replayed.
func (s *Session) Record(frame []byte) {
	var line bytes.Buffer
	if err := json.Compact(&line, frame); err != nil {
		slog.Debug("Not recording invalid frame", slog.String("error", err.Error()))

		return
	}

	line.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Write(line.Bytes()); err != nil {
		slog.Error("Failed to write recording", slog.String("error", err.Error()))
	}
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.file.Close()
}
