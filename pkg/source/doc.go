// Package source reads batch input for the command-line classifier.
//
// An Opener maps a location to a stream: "-" is standard input,
// "s3://bucket/key" is an S3 object (client built lazily from S3Config), and
// anything else is a local path. Lines iterates a stream line by line:
//
//	rc, err := source.NewOpener().Open(ctx, "s3://logs/agents.txt")
//	if err != nil {
//		return err
//	}
//	defer rc.Close()
//	err = source.Lines(ctx, rc, func(n int, line string) error {
//		...
//	})
//
// S3 failures map onto ErrNotFound, ErrBucketNotFound, ErrAccessDenied and
// ErrServiceUnavailable.
package source
