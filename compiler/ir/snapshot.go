package ir

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotVersion is the on-disk IR snapshot format version. Bump on any
// incompatible IR shape change.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned when a snapshot was written by an
// incompatible format version.
var ErrSnapshotVersion = errors.New("specforge: snapshot version mismatch")

// snapshotHeader precedes the compressed IR payload.
type snapshotHeader struct {
	Version int    `msgpack:"version"`
	Build   string `msgpack:"build"`
}

// EncodeSnapshot writes a versioned, zstd-compressed msgpack encoding of the
// IR to w. The build string is an opaque correlation ID recorded in the
// header; it does not participate in decoding.
func EncodeSnapshot(w io.Writer, p *Project, build string) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	enc := msgpack.NewEncoder(zw)
	if err := enc.Encode(snapshotHeader{Version: SnapshotVersion, Build: build}); err != nil {
		zw.Close()
		return fmt.Errorf("snapshot: encode header: %w", err)
	}
	if err := enc.Encode(p); err != nil {
		zw.Close()
		return fmt.Errorf("snapshot: encode project: %w", err)
	}
	return zw.Close()
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot. It returns
// ErrSnapshotVersion (wrapped) if the format version does not match.
func DecodeSnapshot(r io.Reader) (*Project, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	defer zr.Close()
	dec := msgpack.NewDecoder(zr)
	var h snapshotHeader
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("snapshot: decode header: %w", err)
	}
	if h.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: snapshot has version %d, expected %d", ErrSnapshotVersion, h.Version, SnapshotVersion)
	}
	var p Project
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("snapshot: decode project: %w", err)
	}
	return &p, nil
}

// SnapshotBytes is a convenience wrapper returning the encoded snapshot as a
// byte slice.
func SnapshotBytes(p *Project, build string) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, p, build); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
