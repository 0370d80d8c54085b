package inspector

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
)

var errNotZip = errors.New("not a zip archive")

// extractZip unpacks data under dst. Entry names are joined with SecureJoin
// so "../" and absolute names stay inside dst. Symlinks are skipped. The
// uncompressed total across all entries is capped at maxBytes (<= 0 disables
// the cap).
func extractZip(data []byte, dst string, maxBytes int64) error {
	if len(data) == 0 {
		return &ExtractionError{Err: errNotZip}
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	// Insecure names are neutralised by SecureJoin below.
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return &ExtractionError{Err: fmt.Errorf("%w: %v", errNotZip, err)}
	}
	budget := &extractBudget{remaining: maxBytes, limited: maxBytes > 0}
	for _, f := range zr.File {
		if err := extractEntry(f, dst, budget); err != nil {
			return &ExtractionError{Err: fmt.Errorf("%s: %w", f.Name, err)}
		}
	}
	return nil
}

// extractBudget tracks how many uncompressed bytes may still be written.
type extractBudget struct {
	remaining int64
	limited   bool
}

func (b *extractBudget) copy(out io.Writer, in io.Reader) error {
	if !b.limited {
		_, err := io.Copy(out, in)
		return err
	}
	n, err := io.Copy(out, io.LimitReader(in, b.remaining+1))
	if err != nil {
		return err
	}
	if n > b.remaining {
		return ErrArchiveTooLarge
	}
	b.remaining -= n
	return nil
}

func extractEntry(f *zip.File, dst string, budget *extractBudget) error {
	target, err := securejoin.SecureJoin(dst, f.Name)
	if err != nil {
		return err
	}
	mode := f.Mode()
	switch {
	case mode.IsDir():
		return os.MkdirAll(target, 0o755)
	case mode&os.ModeSymlink != 0, !mode.IsRegular():
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := budget.copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
