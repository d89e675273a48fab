package checksum

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/common"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/options"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/tempfs"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "some random text"

func expectedMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func newHasher(t *testing.T, mutate func(*options.ChecksumOptions)) *Hasher {
	t.Helper()
	opts := options.NewChecksumOptions()
	if mutate != nil {
		mutate(&opts)
	}
	h, err := NewHasher(opts)
	require.NoError(t, err)
	return h
}

func TestChecksumFromString(t *testing.T) {
	received, err := Checksum(sample)
	require.NoError(t, err)

	assert.Equal(t, expectedMD5(sample), received)
	assert.Equal(t, "07671a038c0eb43723d421693b073c3b", received)
	assert.Len(t, received, 32)
}

func TestChecksumFromFile(t *testing.T) {
	var received string
	err := tempfs.WithTempFile(func(path string) error {
		if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		received, err = Checksum(f)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, expectedMD5(sample), received)
}

func TestChecksumSourcesAgree(t *testing.T) {
	h := newHasher(t, nil)

	fromString, err := h.Checksum(sample)
	require.NoError(t, err)
	fromBytes, err := h.Checksum([]byte(sample))
	require.NoError(t, err)
	fromReader, err := h.Checksum(strings.NewReader(sample))
	require.NoError(t, err)
	fromNonSeeker, err := h.Checksum(iotest.OneByteReader(strings.NewReader(sample)))
	require.NoError(t, err)

	assert.Equal(t, fromString, fromBytes)
	assert.Equal(t, fromString, fromReader)
	assert.Equal(t, fromString, fromNonSeeker)
}

func TestChecksumIsDeterministic(t *testing.T) {
	h := newHasher(t, nil)
	first := h.String(sample)
	for range 5 {
		assert.Equal(t, first, h.String(sample))
	}
	assert.NotEqual(t, first, h.String(sample+"."))
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", h.String(""))
}

func TestReaderRewindsAndRestoresPosition(t *testing.T) {
	h := newHasher(t, nil)
	r := bytes.NewReader([]byte(sample))

	_, err := r.Seek(5, io.SeekStart)
	require.NoError(t, err)

	received, err := h.Reader(r)
	require.NoError(t, err)
	assert.Equal(t, expectedMD5(sample), received)

	pos, err := r.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pos)
}

func TestBlockSizeDoesNotChangeDigest(t *testing.T) {
	large := strings.Repeat("x", 100_000)
	small := newHasher(t, func(o *options.ChecksumOptions) { o.BlockSize = 1 })
	big := newHasher(t, func(o *options.ChecksumOptions) { o.BlockSize = 1 << 20 })

	a, err := small.Reader(strings.NewReader(large))
	require.NoError(t, err)
	b, err := big.Reader(strings.NewReader(large))
	require.NoError(t, err)

	assert.Equal(t, expectedMD5(large), a)
	assert.Equal(t, a, b)
}

func TestReadFailureIsIOFailure(t *testing.T) {
	h := newHasher(t, nil)
	boom := errors.New("disk on fire")

	_, err := h.Checksum(iotest.ErrReader(boom))
	assert.ErrorIs(t, err, common.ErrIOFailure)
	assert.ErrorIs(t, err, boom)

	_, err = h.Reader(iotest.TimeoutReader(iotest.OneByteReader(strings.NewReader(sample))))
	assert.ErrorIs(t, err, common.ErrIOFailure)
}

func TestUnsupportedSource(t *testing.T) {
	_, err := Checksum(42)
	assert.ErrorIs(t, err, common.ErrUnsupportedSource)
}

func TestAlgorithms(t *testing.T) {
	tests := []struct {
		algorithm string
		want      string
	}{
		{"md5", "07671a038c0eb43723d421693b073c3b"},
		{"MD5", "07671a038c0eb43723d421693b073c3b"},
		{"sha1", "e7204184790d66e83d991f411f2362876e1de985"},
		{"sha256", "708d6f0d7890c49d4345d073285f4e18ea8ecc7c5fcbc44d3c3e329dbddc17e5"},
		{"", "07671a038c0eb43723d421693b073c3b"},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			h := newHasher(t, func(o *options.ChecksumOptions) { o.Algorithm = tt.algorithm })
			assert.Equal(t, tt.want, h.String(sample))
		})
	}

	_, err := NewHasher(options.ChecksumOptions{Algorithm: "crc32"})
	assert.ErrorIs(t, err, common.ErrUnsupportedAlgorithm)
}

func TestFile(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/data/sample.txt", []byte(sample), 0o644))
	h := newHasher(t, func(o *options.ChecksumOptions) { o.Fs = mem })

	received, err := h.File("/data/sample.txt")
	require.NoError(t, err)
	assert.Equal(t, expectedMD5(sample), received)

	_, err = h.File("/data/missing.txt")
	assert.ErrorIs(t, err, common.ErrIOFailure)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = h.File("/data")
	assert.ErrorIs(t, err, common.ErrUnsupportedSource)
}
