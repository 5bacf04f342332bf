package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Stdin is the location that reads standard input.
const Stdin = "-"

// MaxLineBytes bounds a single input line.
const MaxLineBytes = 1 << 20

// Opener resolves a location to a readable stream: "-" for stdin,
// "s3://bucket/key" for an S3 object, anything else for a local file.
type Opener struct {
	stdin io.Reader

	s3Cfg    S3Config
	s3Once   sync.Once
	s3Client S3Getter
	s3Err    error
}

// Option configures an Opener.
type Option func(*Opener)

// WithStdin replaces os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(o *Opener) { o.stdin = r }
}

// WithS3Client sets the client used for s3:// locations.
func WithS3Client(c S3Getter) Option {
	return func(o *Opener) { o.s3Client = c }
}

// WithS3Config sets how the S3 client is built on first use.
func WithS3Config(cfg S3Config) Option {
	return func(o *Opener) { o.s3Cfg = cfg }
}

// NewOpener returns an Opener.
func NewOpener(opts ...Option) *Opener {
	o := &Opener{stdin: os.Stdin}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open returns a stream for location. The caller closes it.
func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	switch {
	case location == Stdin:
		return io.NopCloser(o.stdin), nil
	case strings.HasPrefix(location, "s3://"):
		bucket, key, err := ParseS3URI(location)
		if err != nil {
			return nil, err
		}
		client, err := o.s3(ctx)
		if err != nil {
			return nil, err
		}
		return OpenS3(ctx, client, bucket, key)
	default:
		f, err := os.Open(location)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
			}
			return nil, errors.Join(ErrFailedToOpen, err)
		}
		return f, nil
	}
}

func (o *Opener) s3(ctx context.Context) (S3Getter, error) {
	o.s3Once.Do(func() {
		if o.s3Client != nil {
			return
		}
		o.s3Client, o.s3Err = NewS3Client(ctx, o.s3Cfg)
	})
	return o.s3Client, o.s3Err
}

// Lines calls fn for every line of r with its 1-based number. Trailing "\r"
// is dropped. It stops at the first error from fn or when ctx is done.
func Lines(ctx context.Context, r io.Reader, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)

	n := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		if err := fn(n, strings.TrimSuffix(sc.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("%w: after line %d", ErrLineTooLong, n)
		}
		return err
	}
	return nil
}
