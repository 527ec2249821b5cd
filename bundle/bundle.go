// Package bundle exports a rendered banner together with its source icon
// and the recipe used to build it as a ZIP archive, optionally protected
// with AES-256.
package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexmullins/zip"
)

// Common errors
var (
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrNoEntries     = errors.New("no entries to archive")
	ErrInvalidOutput = errors.New("invalid output path")
)

// Config holds archive settings
type Config struct {
	// OutputPath is the full path of the ZIP file to create
	OutputPath string

	// Password enables AES-256 encryption of every entry when non-empty
	Password string
}

// Entry is a single file inside the archive
type Entry struct {
	// Name is the slash-separated path inside the archive
	Name string

	// Data is the file content
	Data []byte
}

// Result describes a written archive
type Result struct {
	OutputPath  string
	Entries     int
	TotalSize   int64
	ArchiveSize int64
	Encrypted   bool
}

// Write creates the archive described by cfg. A partially written archive is
// removed on error.
func Write(cfg Config, entries ...Entry) (*Result, error) {
	if cfg.OutputPath == "" {
		return nil, ErrInvalidOutput
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	if cfg.Password != "" {
		if err := ValidatePassword(cfg.Password); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	zipFile, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	var total int64
	zipWriter := zip.NewWriter(zipFile)
	for _, entry := range entries {
		if err := addEntry(zipWriter, entry, cfg.Password); err != nil {
			zipWriter.Close()
			zipFile.Close()
			os.Remove(cfg.OutputPath)
			return nil, err
		}
		total += int64(len(entry.Data))
	}

	if err := zipWriter.Close(); err != nil {
		zipFile.Close()
		os.Remove(cfg.OutputPath)
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	if err := zipFile.Close(); err != nil {
		os.Remove(cfg.OutputPath)
		return nil, fmt.Errorf("failed to close archive: %w", err)
	}

	info, err := os.Stat(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat output archive: %w", err)
	}

	return &Result{
		OutputPath:  cfg.OutputPath,
		Entries:     len(entries),
		TotalSize:   total,
		ArchiveSize: info.Size(),
		Encrypted:   cfg.Password != "",
	}, nil
}

func addEntry(zipWriter *zip.Writer, entry Entry, password string) error {
	name := strings.ReplaceAll(entry.Name, string(os.PathSeparator), "/")
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return fmt.Errorf("%w: entry without a name", ErrInvalidOutput)
	}

	var (
		w   io.Writer
		err error
	)
	if password != "" {
		w, err = zipWriter.Encrypt(name, password)
	} else {
		w, err = zipWriter.Create(name)
	}
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", name, err)
	}

	if _, err := io.Copy(w, bytes.NewReader(entry.Data)); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", name, err)
	}
	return nil
}

// FileEntry reads the file at path into an entry named name. An empty name
// uses the file's base name.
func FileEntry(path, name string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if name == "" {
		name = filepath.Base(path)
	}
	return Entry{Name: name, Data: data}, nil
}
