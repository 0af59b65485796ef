package interval

import (
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// openMaybeGzip opens path and wraps the reader in a gzip decompressor when
// the filename says so.  The returned closer closes both.
func openMaybeGzip(ctx context.Context, path string) (io.Reader, func() error, error) {
	infile, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}
	reader := io.Reader(infile.Reader(ctx))
	closer := func() error { return infile.Close(ctx) }
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		gz, err := gzip.NewReader(reader)
		if err != nil {
			_ = infile.Close(ctx)
			return nil, nil, errors.Wrapf(err, "gzip %s", path)
		}
		reader = gz
		closer = func() error {
			if e := gz.Close(); e != nil {
				_ = infile.Close(ctx)
				return e
			}
			return infile.Close(ctx)
		}
	}
	return reader, closer, nil
}

// ReadGenesFromPath is a wrapper for ReadGenes that takes a path instead of
// an io.Reader.
func ReadGenesFromPath(ctx context.Context, path string) (genes []Gene, err error) {
	reader, closer, err := openMaybeGzip(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closer(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return ReadGenes(reader)
}

// ReadPhageInfoFromPath is a wrapper for ReadPhageInfo that takes a path
// instead of an io.Reader.
func ReadPhageInfoFromPath(ctx context.Context, path string) (rows []PhageInfo, err error) {
	reader, closer, err := openMaybeGzip(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closer(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return ReadPhageInfo(reader)
}
