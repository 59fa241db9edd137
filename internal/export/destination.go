package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"manuscript-tracker/internal/domain"
	"manuscript-tracker/internal/logging"
)

// Destination is a backup target (local file, S3, ...).
type Destination interface {
	// Write stores the encoded snapshot.
	Write(ctx context.Context, data []byte) error

	// String names the destination in logs and messages.
	String() string
}

// FileDestination writes backups to a local file atomically.
type FileDestination struct {
	Path string
	Perm os.FileMode
}

// NewFileDestination creates a file destination with 0644 permissions.
func NewFileDestination(path string) *FileDestination {
	return &FileDestination{Path: path, Perm: 0o644}
}

// Write replaces the backup file.
func (d *FileDestination) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteFileAtomic(d.Path, data, d.Perm)
}

func (d *FileDestination) String() string {
	return "file://" + d.Path
}

// Backup encodes snapshot once and writes it to every destination. A failing
// destination does not stop the others; all failures are returned joined.
func Backup(ctx context.Context, snapshot *domain.Snapshot, format Format, destinations ...Destination) error {
	if len(destinations) == 0 {
		return errors.New("no backup destinations configured")
	}

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, snapshot, format); err != nil {
		return err
	}
	data := buf.Bytes()

	logger := logging.Logger()
	var errs []error
	for _, dest := range destinations {
		if err := dest.Write(ctx, data); err != nil {
			logger.Error("backup destination write failed", "destination", dest.String(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", dest, err))
			continue
		}
		logger.Debug("backup written", "destination", dest.String(), "bytes", len(data))
	}
	return errors.Join(errs...)
}
