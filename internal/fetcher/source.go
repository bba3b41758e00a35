package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// SourceOptions configures Source.
type SourceOptions struct {
	MaxBytes int64 // 0 = unlimited
	HTTP     HTTPOptions
	FTP      FTPOptions
}

// Source resolves a file argument (local path, http(s):// or ftp:// URL) to
// the bytes of the spreadsheet it names.
type Source struct {
	http     Fetcher
	ftp      Fetcher
	maxBytes int64
}

// NewSource creates a Source backed by the default HTTP and FTP fetchers.
func NewSource(opts SourceOptions) *Source {
	return &Source{
		http:     NewHTTPFetcher(opts.HTTP),
		ftp:      NewFTPFetcher(opts.FTP),
		maxBytes: opts.MaxBytes,
	}
}

// Read loads src fully into memory and returns its bytes together with the
// base file name, which callers use to pick a parser.
func (s *Source) Read(ctx context.Context, src string) ([]byte, string, error) {
	if src == "" {
		return nil, "", eris.New("source: empty file argument")
	}

	u, err := url.Parse(src)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return s.readRemote(ctx, s.http, src, path.Base(u.Path))
		case "ftp":
			return s.readRemote(ctx, s.ftp, src, path.Base(u.Path))
		}
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, "", eris.Wrapf(err, "source: open %s", src)
	}
	defer f.Close() //nolint:errcheck

	data, err := s.readAll(f)
	if err != nil {
		return nil, "", eris.Wrapf(err, "source: read %s", src)
	}
	return data, filepath.Base(src), nil
}

func (s *Source) readRemote(ctx context.Context, f Fetcher, rawURL, name string) ([]byte, string, error) {
	zap.L().Info("source: downloading", zap.String("url", rawURL))

	body, err := f.Download(ctx, rawURL)
	if err != nil {
		return nil, "", eris.Wrapf(err, "source: download %s", rawURL)
	}
	defer body.Close() //nolint:errcheck

	data, err := s.readAll(body)
	if err != nil {
		return nil, "", eris.Wrapf(err, "source: read %s", rawURL)
	}
	return data, name, nil
}

func (s *Source) readAll(r io.Reader) ([]byte, error) {
	if s.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxBytes {
		return nil, eris.Errorf("file exceeds %d bytes", s.maxBytes)
	}
	return data, nil
}
