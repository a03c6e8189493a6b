package lock

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"mtbot/internal/logger"
)

// ErrAlreadyLocked means another live instance holds the marker; the
// caller must abort the run entirely.
var ErrAlreadyLocked = errors.New("другой экземпляр уже запущен")

// Blocker guards system-wide execution exclusivity with a marker file
// containing "pid,timestamp". Single-host semantics only.
type Blocker struct {
	path    string
	timeout time.Duration
	log     *logger.Logger
}

func New(path string, timeout time.Duration, log *logger.Logger) *Blocker {
	return &Blocker{
		path:    path,
		timeout: timeout,
		log:     log,
	}
}

// IsStale reports whether an existing marker may be reclaimed: its
// content is malformed, or its owner is dead and the marker outlived
// the timeout. A live owner is never stale, whatever the marker age.
func (b *Blocker) IsStale() bool {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false
		}
		return true
	}

	pid, createdAt, err := parseMarker(string(raw))
	if err != nil {
		return true
	}

	if pidAlive(pid) {
		return false
	}
	return time.Since(createdAt) > b.timeout
}

func (b *Blocker) Acquire() error {
	if _, err := os.Stat(b.path); err == nil {
		if !b.IsStale() {
			return ErrAlreadyLocked
		}
		b.logEntry().Warn("Найден устаревший lock-файл, удаляем.")
		if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("не удалось удалить устаревший lock-файл: %w", err)
		}
	}

	content := fmt.Sprintf("%d,%d", os.Getpid(), time.Now().Unix())
	if err := os.WriteFile(b.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("не удалось создать lock-файл: %w", err)
	}
	return nil
}

// Release removes the marker unconditionally.
func (b *Blocker) Release() {
	if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
		b.logEntry().WithError(err).Warn("Не удалось удалить lock-файл.")
	}
}

func (b *Blocker) logEntry() *logrus.Entry {
	return b.log.WithComponent("lock").WithField("lock_file", b.path)
}

func parseMarker(content string) (int, time.Time, error) {
	parts := strings.Split(strings.TrimSpace(content), ",")
	if len(parts) != 2 {
		return 0, time.Time{}, fmt.Errorf("неверный формат lock-файла")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, time.Time{}, err
	}
	// The timestamp may carry fractional seconds.
	seconds, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, time.Time{}, err
	}
	return pid, time.Unix(int64(seconds), 0), nil
}

func pidAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
