package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes reports into Dir. Files appear atomically: data goes to a temp file in the
// same directory which is renamed into place only after a successful write.
type FileSink struct {
	Dir string
}

// NewFileSink writes into dir, or the working directory when dir is empty.
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{Dir: dir}
}

func (s *FileSink) Put(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}

	target := filepath.Join(s.Dir, name)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("move report into place: %w", err)
	}
	return target, nil
}
