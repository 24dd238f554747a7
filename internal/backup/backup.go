// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup reads and writes inventory backups: the store's export as
// pretty-printed JSON inside a Zstandard stream.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/srvinv/internal/logging"
	"github.com/toeirei/srvinv/internal/model"
)

// Extension is appended to backup file names that lack it.
const Extension = ".zst"

// Exporter produces a full dump of the inventory.
type Exporter interface {
	Export(ctx context.Context) (*model.BackupData, error)
}

// Importer replaces the inventory with a dump.
type Importer interface {
	Import(ctx context.Context, backup *model.BackupData) error
}

// DefaultFileName returns the file name used when none is given,
// e.g. "srvinv-backup-2026-01-31.json.zst".
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("srvinv-backup-%s.json%s", now.Format("2006-01-02"), Extension)
}

// NormalizeFileName appends Extension unless name already ends with it.
func NormalizeFileName(name string) string {
	if strings.HasSuffix(name, Extension) {
		return name
	}
	return name + Extension
}

// Write encodes data as JSON into a zstd stream on w.
func Write(w io.Writer, data *model.BackupData) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("could not flush zstd writer: %w", err)
	}
	return nil
}

// Read decodes a backup written by Write.
func Read(r io.Reader) (*model.BackupData, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zr.Close()

	var data model.BackupData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	if data.SchemaVersion != model.BackupSchemaVersion {
		return nil, fmt.Errorf("unsupported backup schema version %d (want %d)", data.SchemaVersion, model.BackupSchemaVersion)
	}
	return &data, nil
}

// Create exports the inventory from src and writes it to w.
func Create(ctx context.Context, src Exporter, w io.Writer) (*model.BackupData, error) {
	data, err := src.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if err := Write(w, data); err != nil {
		return nil, err
	}
	logging.Infof("backup: wrote %d servers, %d audit entries", len(data.Servers), len(data.AuditLogEntries))
	return data, nil
}

// Restore reads a backup from r and imports it into dst, replacing all data.
func Restore(ctx context.Context, dst Importer, r io.Reader) error {
	data, err := Read(r)
	if err != nil {
		return err
	}
	if err := dst.Import(ctx, data); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	logging.Infof("backup: restored %d servers", len(data.Servers))
	return nil
}

// CreateFile writes a backup of src to path.
func CreateFile(ctx context.Context, src Exporter, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if _, err := Create(ctx, src, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// RestoreFile imports the backup stored at path into dst.
func RestoreFile(ctx context.Context, dst Importer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Restore(ctx, dst, f)
}

// Migrate copies the whole inventory from src into dst, replacing whatever
// dst held. Both stores must already carry the current schema.
func Migrate(ctx context.Context, src Exporter, dst Importer) error {
	data, err := src.Export(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := dst.Import(ctx, data); err != nil {
		return fmt.Errorf("import into target: %w", err)
	}
	logging.Infof("migrate: copied %d servers", len(data.Servers))
	return nil
}
