package ir

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func snapshotProject() *Project {
	return &Project{
		Name:    "shop",
		Version: "1.0.0",
		Server:  Server{Port: 3000, Host: "0.0.0.0"},
		Routes: []*Route{{
			Name: "users",
			Path: "/users/:id",
			Methods: []*Binding{
				{Method: "GET", Handler: "get_user"},
			},
		}},
		Handlers: []*Handler{{
			Name: "get_user",
			Body: []*Statement{
				{Kind: StmtLet, Tier: TierContext, Name: "id",
					Value: &Expression{Kind: ExprContext, Tier: TierContext, Source: "params", Name: "id"}},
				{Kind: StmtRespond, Tier: TierContext, Status: 200,
					Value: &Expression{Kind: ExprIdent, Tier: TierBasic, Name: "id"}},
			},
		}},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	p := snapshotProject()
	data, err := SnapshotBytes(p, "build-1")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	got, err := DecodeSnapshot(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSnapshotVersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	enc := msgpack.NewEncoder(zw)
	require.NoError(t, enc.Encode(snapshotHeader{Version: SnapshotVersion + 1, Build: "future"}))
	require.NoError(t, enc.Encode(snapshotProject()))
	require.NoError(t, zw.Close())

	_, err = DecodeSnapshot(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrSnapshotVersion)
}

func TestSnapshotTruncated(t *testing.T) {
	data, err := SnapshotBytes(snapshotProject(), "build-1")
	require.NoError(t, err)
	_, err = DecodeSnapshot(bytes.NewReader(data[:4]))
	assert.Error(t, err)
}

func TestSnapshotDeterministic(t *testing.T) {
	p := snapshotProject()
	a, err := SnapshotBytes(p, "same")
	require.NoError(t, err)
	b, err := SnapshotBytes(p, "same")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
