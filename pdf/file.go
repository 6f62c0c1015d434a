package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"pkt.systems/trustdocs"
)

// RenderFile renders doc and writes it to path, creating parent directories
// as needed. The PDF is written to a temporary file in the same directory and
// renamed into place, so a failed render never leaves a partial file behind.
// Filesystem failures are reported as *trustdocs.IOError.
func RenderFile(path string, doc trustdocs.Document, cfg Config) (Result, error) {
	var buf bytes.Buffer
	res, err := Render(RenderRequest{Document: doc, Writer: &buf, Config: cfg})
	if err != nil {
		return Result{}, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, ioErr("mkdir", dir, trustdocs.ErrOutputDir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return Result{}, ioErr("create", path, trustdocs.ErrOutputDir, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		cleanup()
		return Result{}, ioErr("write", path, trustdocs.ErrOutputWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return Result{}, ioErr("sync", path, trustdocs.ErrOutputWrite, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return Result{}, ioErr("close", path, trustdocs.ErrOutputWrite, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return Result{}, ioErr("chmod", path, trustdocs.ErrOutputWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return Result{}, ioErr("rename", path, trustdocs.ErrOutputWrite, err)
	}
	return res, nil
}

func ioErr(op, path string, kind, err error) error {
	return &trustdocs.IOError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", kind, err)}
}
