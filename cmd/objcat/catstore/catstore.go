// Package catstore saves and loads built catalogs. The text report and a
// JSON form are supported, each optionally zstd-compressed.
package catstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"objcat/cmd/objcat/catalog"

	"github.com/klauspost/compress/zstd"
)

// Format selects the serialized form of a catalog.
type Format int

const (
	FormatReport Format = iota
	FormatJSON
)

const compressedExt = ".zst"

var ErrUnknownFormat = errors.New("unknown catalog format")

func (f Format) String() string {
	switch f {
	case FormatReport:
		return "report"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts the names printed by Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "report", "txt", "text":
		return FormatReport, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w %q (expected report or json)", ErrUnknownFormat, s)
	}
}

// FormatFor derives the format from a file name: a trailing .zst marks
// compression, then .json selects JSON and anything else the report.
func FormatFor(path string) (f Format, compressed bool) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, compressedExt) {
		compressed = true
		name = strings.TrimSuffix(name, compressedExt)
	}
	if filepath.Ext(name) == ".json" {
		return FormatJSON, compressed
	}
	return FormatReport, compressed
}

// Save writes c to path in format f, zstd-compressed when path ends in .zst.
// The catalog is written to a temporary file next to path and renamed into
// place, so a failed save leaves any existing file untouched.
func Save(path string, c *catalog.Catalog, f Format) (err error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := file.Name()
	defer func() {
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmp)
		}
	}()

	_, compressed := FormatFor(path)
	if err := encodeFile(file, c, f, compressed); err != nil {
		return err
	}
	if err := file.Chmod(0o644); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func encodeFile(w io.Writer, c *catalog.Catalog, f Format, compressed bool) error {
	if !compressed {
		return Encode(w, c, f)
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := Encode(enc, c, f); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Load reads a catalog saved by Save, detecting the format from the name.
func Load(path string) (*catalog.Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, compressed := FormatFor(path)
	var r io.Reader = file
	if compressed {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	}
	c, err := Decode(r, f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// Encode writes c to w in format f.
func Encode(w io.Writer, c *catalog.Catalog, f Format) error {
	switch f {
	case FormatReport:
		return catalog.WriteReport(w, c)
	case FormatJSON:
		bw := bufio.NewWriter(w)
		enc := json.NewEncoder(bw)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toJSON(c)); err != nil {
			return err
		}
		return bw.Flush()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// Decode reads a catalog in format f from r.
func Decode(r io.Reader, f Format) (*catalog.Catalog, error) {
	switch f {
	case FormatReport:
		return catalog.ParseReport(bufio.NewReader(r))
	case FormatJSON:
		var doc jsonCatalog
		dec := json.NewDecoder(bufio.NewReader(r))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("phase=parse path=<json>: %w", err)
		}
		instrs, err := doc.instructions()
		if err != nil {
			return nil, err
		}
		return catalog.Build(instrs)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}
