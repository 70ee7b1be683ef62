// Package security provides input validation and bounding helpers for swatch.
package security

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrSizeLimit is returned by LimitedReader once its budget is spent.
var ErrSizeLimit = errors.New("size limit exceeded")

// ValidateImageURL validates an HTTP(S) URL before an image is fetched from it.
// Local and private hosts are rejected unless allowPrivate is set.
func ValidateImageURL(urlStr string, allowPrivate bool) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if !strings.EqualFold(parsed.Scheme, "https") && !strings.EqualFold(parsed.Scheme, "http") {
		return fmt.Errorf("only HTTP(S) URLs are allowed (got %q)", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	host := strings.ToLower(parsed.Hostname())
	if !allowPrivate && isLocalOrPrivateHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}

	return nil
}

// ValidateOutputPath ensures name stays inside dir once joined.
func ValidateOutputPath(dir, name string) error {
	if name == "" {
		return fmt.Errorf("empty file name")
	}
	if filepath.IsAbs(name) || strings.Contains(name, "..") {
		return fmt.Errorf("file name %q would escape output directory", name)
	}

	cleanDir := filepath.Clean(dir)
	cleanFinal := filepath.Clean(filepath.Join(dir, name))
	if !strings.HasPrefix(cleanFinal, cleanDir+string(filepath.Separator)) && cleanFinal != cleanDir {
		return fmt.Errorf("file name %q would escape output directory", name)
	}
	return nil
}

// SafeUint8 converts an integer to uint8, clamping to 0-255.
func SafeUint8(val int) uint8 {
	if val < 0 {
		return 0
	}
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// LimitedReader wraps an io.Reader and fails once more than the allowed
// number of bytes has been read, unlike io.LimitReader which truncates silently.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Read one more byte so an input of exactly the limit still succeeds.
		var peek [1]byte
		n, err := l.R.Read(peek[:])
		if n > 0 {
			return 0, ErrSizeLimit
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// isLocalOrPrivateHost checks if a hostname is localhost or a private, loopback
// or link-local IP literal.
func isLocalOrPrivateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}
