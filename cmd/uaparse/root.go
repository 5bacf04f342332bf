package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/uakit/pkg/config"
	"github.com/dmitrymomot/uakit/pkg/logger"
	"github.com/dmitrymomot/uakit/pkg/opensearch"
	"github.com/dmitrymomot/uakit/pkg/source"
	"github.com/dmitrymomot/uakit/pkg/useragent"
)

var version = "dev"

// minLineLen is the trimmed length a line must exceed to be classified.
const minLineLen = 5

type options struct {
	fillNone  bool
	json      bool
	index     string
	envFiles  []string
	logLevel  string
	cacheSize int
	quiet     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "uaparse [path | - | s3://bucket/key]",
		Short:        "Classify user-agent strings line by line",
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			location := source.Stdin
			if len(args) == 1 {
				location = args[0]
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd, location, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.fillNone, "fill-none", false, "emit explicit empty os/browser entries in --json output")
	f.BoolVar(&opts.json, "json", false, "write one JSON document per line instead of pipe-delimited records")
	f.StringVar(&opts.index, "opensearch-index", "", "also bulk-index records into this OpenSearch index (OPENSEARCH_* env)")
	f.StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load before reading configuration")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")
	f.IntVar(&opts.cacheSize, "cache", 4096, "memoize up to this many distinct user agents (0 disables)")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the summary report on stderr")

	return cmd
}

// record is the document written by --json and sent to OpenSearch.
type record struct {
	Timestamp time.Time         `json:"@timestamp"`
	Source    string            `json:"source"`
	Line      int               `json:"line"`
	UserAgent string            `json:"user_agent"`
	Result    *useragent.Result `json:"result"`
	Summary   useragent.Summary `json:"summary"`
}

type report struct {
	read    int
	skipped int
	written int
}

func run(ctx context.Context, cmd *cobra.Command, location string, opts *options) error {
	if len(opts.envFiles) > 0 {
		if err := config.LoadEnv(opts.envFiles...); err != nil {
			return err
		}
	}

	log := logger.New(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithFormat(logger.FormatText),
		logger.WithLevel(logger.ParseLevel(opts.logLevel)),
		logger.WithAttr(logger.Service("uaparse")),
	)

	classifierOpts := []useragent.Option{useragent.WithLogger(log), useragent.WithFillNone(opts.fillNone)}
	if opts.cacheSize > 0 {
		classifierOpts = append(classifierOpts, useragent.WithCache(opts.cacheSize))
	}
	classifier := useragent.New(nil, classifierOpts...)

	openerOpts := []source.Option{source.WithStdin(cmd.InOrStdin())}
	if strings.HasPrefix(location, "s3://") {
		var s3cfg source.S3Config
		if err := config.Load(&s3cfg); err != nil {
			return err
		}
		openerOpts = append(openerOpts, source.WithS3Config(s3cfg))
	}
	in, err := source.NewOpener(openerOpts...).Open(ctx, location)
	if err != nil {
		return err
	}
	defer in.Close()

	var ix *opensearch.Indexer
	if opts.index != "" {
		if ix, err = newIndexer(ctx, opts.index, log); err != nil {
			return err
		}
		defer func() {
			if err := ix.Close(context.WithoutCancel(ctx)); err != nil {
				log.Error("final bulk flush failed", logger.Error(err))
			}
		}()
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	start := time.Now()
	rep, err := process(ctx, in, out, processConfig{
		location:   location,
		json:       opts.json,
		classifier: classifier,
		indexer:    ix,
		log:        log,
	})
	if ferr := out.Flush(); err == nil {
		err = ferr
	}

	if !opts.quiet {
		printReport(cmd.ErrOrStderr(), rep, time.Since(start))
	}
	return err
}

func newIndexer(ctx context.Context, index string, log *slog.Logger) (*opensearch.Indexer, error) {
	var cfg opensearch.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	client, err := opensearch.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return opensearch.NewIndexer(client, index,
		opensearch.WithBatchSize(cfg.BatchSize),
		opensearch.WithIndexerLogger(log),
	), nil
}

type processConfig struct {
	location   string
	json       bool
	classifier *useragent.Classifier
	indexer    *opensearch.Indexer
	log        *slog.Logger
	now        func() time.Time
}

func process(ctx context.Context, in io.Reader, out io.Writer, pc processConfig) (report, error) {
	var rep report
	if pc.now == nil {
		pc.now = time.Now
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	err := source.Lines(ctx, in, func(n int, line string) error {
		rep.read++
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= minLineLen {
			rep.skipped++
			return nil
		}

		res := pc.classifier.Classify(line)
		sum := res.Summary()
		rec := record{
			Timestamp: pc.now().UTC(),
			Source:    pc.location,
			Line:      n,
			UserAgent: line,
			Result:    res,
			Summary:   sum,
		}

		if pc.json {
			if err := enc.Encode(rec); err != nil {
				return err
			}
		} else {
			osLabel, agentLabel := sum.Labels()
			if _, err := fmt.Fprintf(out, "\"%s\"|\"%s\"|\"%s\"|\"%s\"\n", line, osLabel, agentLabel, sum.Model); err != nil {
				return err
			}
		}
		rep.written++

		if pc.indexer != nil {
			if err := pc.indexer.Add(ctx, rec); err != nil {
				pc.log.WarnContext(ctx, "bulk index failed", logger.Line(n), logger.Error(err))
			}
		}
		return nil
	})
	return rep, err
}

func printReport(w io.Writer, rep report, elapsed time.Duration) {
	label := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(w, "%s %d read, %d classified, %d skipped in %s\n",
		label("uaparse:"), rep.read, rep.written, rep.skipped, elapsed.Round(time.Millisecond))
}
