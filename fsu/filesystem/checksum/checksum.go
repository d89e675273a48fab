// Package checksum computes hexadecimal content digests of strings, byte
// slices, streams and files. MD5 is the default for compatibility with
// existing object-store ETags; it is a fingerprint, not a security measure.
package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	internal "github.com/ZanzyTHEbar/fsutils/fsu"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/common"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/options"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Supported algorithm names
const (
	MD5    = "md5"
	SHA1   = "sha1"
	SHA256 = "sha256"
)

var algorithms = map[string]func() hash.Hash{
	MD5:    md5.New,
	SHA1:   sha1.New,
	SHA256: sha256.New,
}

// Hasher computes digests with one algorithm
type Hasher struct {
	algorithm string
	newHash   func() hash.Hash
	blockSize int
	fs        afero.Fs
	logger    zerolog.Logger
}

// NewHasher creates a Hasher from opts
func NewHasher(opts options.ChecksumOptions) (*Hasher, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Algorithm))
	if name == "" {
		name = internal.DefaultChecksumAlgorithm
	}
	newHash, ok := algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedAlgorithm, opts.Algorithm)
	}

	blockSize := opts.BlockSize
	if blockSize <= 0 {
		blockSize = internal.DefaultChecksumBlockSize
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &Hasher{
		algorithm: name,
		newHash:   newHash,
		blockSize: blockSize,
		fs:        fs,
		logger:    opts.Logger,
	}, nil
}

// Algorithm returns the digest algorithm name
func (h *Hasher) Algorithm() string { return h.algorithm }

// Checksum digests source, which may be a string, a []byte or an io.Reader.
// Readers are consumed to EOF; a reader that can also seek is rewound to its
// start first and put back where it was afterwards.
func (h *Hasher) Checksum(source any) (string, error) {
	switch src := source.(type) {
	case string:
		return h.String(src), nil
	case []byte:
		return h.Bytes(src), nil
	case io.Reader:
		return h.Reader(src)
	default:
		return "", fmt.Errorf("%w: %T", common.ErrUnsupportedSource, source)
	}
}

// String digests the bytes of s
func (h *Hasher) String(s string) string {
	hasher := h.newHash()
	io.WriteString(hasher, s)
	return hex.EncodeToString(hasher.Sum(nil))
}

// Bytes digests b
func (h *Hasher) Bytes(b []byte) string {
	hasher := h.newHash()
	hasher.Write(b)
	return hex.EncodeToString(hasher.Sum(nil))
}

// Reader digests everything r yields, BlockSize bytes at a time
func (h *Hasher) Reader(r io.Reader) (sum string, err error) {
	// Pipes satisfy io.Seeker but fail to seek; those are read as-is.
	if seeker, ok := r.(io.Seeker); ok {
		if pos, posErr := seeker.Seek(0, io.SeekCurrent); posErr == nil {
			if _, rewindErr := seeker.Seek(0, io.SeekStart); rewindErr != nil {
				return "", common.IOFailure(rewindErr, "rewind stream")
			}
			defer func() {
				if _, seekErr := seeker.Seek(pos, io.SeekStart); seekErr != nil && err == nil {
					err = common.IOFailure(seekErr, "restore stream position")
				}
			}()
		}
	}

	hasher := h.newHash()
	buf := make([]byte, h.blockSize)
	// Hide WriterTo/ReaderFrom so the block size is honoured.
	if _, err := io.CopyBuffer(struct{ io.Writer }{hasher}, struct{ io.Reader }{r}, buf); err != nil {
		h.logger.Warn().Err(err).Str("algorithm", h.algorithm).Msg("checksum read failed")
		return "", common.IOFailure(err, "read stream")
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// File digests the contents of the file at path
func (h *Hasher) File(path string) (string, error) {
	f, err := h.fs.Open(path)
	if err != nil {
		return "", common.IOFailure(err, "open %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", common.IOFailure(err, "stat %s", path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", common.ErrUnsupportedSource, path)
	}

	return h.Reader(f)
}

var defaultHasher, _ = NewHasher(options.NewChecksumOptions())

// Checksum digests source with MD5. See Hasher.Checksum.
func Checksum(source any) (string, error) {
	return defaultHasher.Checksum(source)
}
