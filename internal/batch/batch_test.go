package batch

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"nifgraph/internal/nif"
	"nifgraph/internal/nifcache"
)

// writeNode writes a Morrowind file holding one root node, with trailing
// bytes when junk is set.
func writeNode(t *testing.T, path string, junk bool) {
	le := binary.LittleEndian
	data := []byte("NetImmerse File Format, Version 4.0.0.2\n")
	data = le.AppendUint32(data, uint32(nif.V4_0_0_2))
	data = le.AppendUint32(data, 1)
	for _, s := range []string{"NiNode", "Root"} {
		data = le.AppendUint32(data, uint32(len(s)))
		data = append(data, s...)
	}
	data = le.AppendUint32(data, 0xFFFFFFFF) // extra
	data = le.AppendUint32(data, 0xFFFFFFFF) // controller
	data = le.AppendUint16(data, 0)
	data = append(data, make([]byte, 12)...) // translation
	for _, f := range []uint32{0x3f800000, 0, 0, 0, 0x3f800000, 0, 0, 0, 0x3f800000, 0x3f800000} {
		data = le.AppendUint32(data, f)
	}
	data = append(data, make([]byte, 12)...) // velocity
	data = le.AppendUint32(data, 0)          // properties
	data = le.AppendUint32(data, 0)          // bounds
	data = le.AppendUint32(data, 0)          // children
	data = le.AppendUint32(data, 0)          // effects
	data = le.AppendUint32(data, 1)
	data = le.AppendUint32(data, 0)
	if junk {
		data = append(data, 0xAA)
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func newCache(t *testing.T) *nifcache.Cache {
	c, err := nifcache.New(8, func(_ context.Context, path string) (*nif.File, error) {
		return nif.LoadFile(path, nif.Options{})
	})
	require.NoError(t, err)
	return c
}

func TestRun(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	good := filepath.Join(dir, "good.nif")
	warned := filepath.Join(dir, "warned.nif")
	bad := filepath.Join(dir, "bad.nif")
	writeNode(t, good, false)
	writeNode(t, warned, true)
	require.NoError(os.WriteFile(bad, []byte("not a model\n"), 0o644))

	paths := []string{good, warned, bad, filepath.Join(dir, "missing.nif")}
	results, err := Run(context.Background(), Config{Cache: newCache(t), Workers: 2}, paths)
	require.NoError(err)
	require.Len(results, 4)

	require.True(results[0].Success)
	require.Equal(good, results[0].Path)
	require.Equal("4.0.0.2", results[0].Version)
	require.Equal(1, results[0].Records)
	require.Equal(1, results[0].Roots)
	require.Equal(1, results[0].Objects)
	require.Empty(results[0].Warnings)

	require.True(results[1].Success)
	require.Len(results[1].Warnings, 1)

	require.False(results[2].Success)
	require.Contains(results[2].Error, "not a NIF file")
	require.False(results[3].Success)

	manifest := filepath.Join(dir, "manifest.json")
	require.NoError(WriteManifest(manifest, results))
	raw, err := os.ReadFile(manifest)
	require.NoError(err)
	var m Manifest
	require.NoError(json.Unmarshal(raw, &m))
	require.Equal(4, m.Files)
	require.Equal(2, m.Failed)
	require.Equal(1, m.Warned)
	require.Len(m.Results, 4)
}

func TestRun_Cancelled(t *testing.T) {
	require := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Cache: newCache(t), Workers: 1}, []string{"a.nif", "b.nif"})
	require.ErrorIs(err, context.Canceled)
}
