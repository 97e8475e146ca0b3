package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spacesedan/commentsense/config"
	"github.com/spacesedan/commentsense/internal/app"
	"github.com/spacesedan/commentsense/internal/export"
	"github.com/spacesedan/commentsense/internal/logging"
	"github.com/spacesedan/commentsense/internal/sentiment"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		if errors.Is(err, config.ErrMissingToken) {
			fmt.Fprintf(os.Stderr, "create config/envs/.env.%s and add HF_API_TOKEN='your_token_here'\n", env)
		}
		os.Exit(1)
	}
	slog.SetDefault(logging.NewLogger(os.Stderr, cfg.LogLevel))

	backend, err := app.NewBackend(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	reconciler := sentiment.NewReconciler(backend.Classifier)
	os.Exit(run(context.Background(), reconciler, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, reconciler *sentiment.Reconciler, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	text := fs.String("text", "", "a single comment to analyze")
	file := fs.String("file", "", "text file with one comment per line (- for stdin)")
	out := fs.String("out", "", "write batch results as CSV to this path (default stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	switch {
	case *text != "" && *file != "":
		fmt.Fprintln(stderr, "use either -text or -file, not both")
		return 2
	case *file != "":
		return runBatch(ctx, reconciler, *file, *out, stdin, stdout, stderr)
	case *text != "":
		return runSingle(ctx, reconciler, *text, stdout, stderr)
	default:
		fs.Usage()
		return 2
	}
}

func runSingle(ctx context.Context, reconciler *sentiment.Reconciler, text string, stdout, stderr io.Writer) int {
	outcome := reconciler.Reconcile(ctx, sentiment.NewSingleBatch(text), sentiment.ModeSingle)
	printNotices(stderr, outcome)

	label, ok := outcome.Label()
	if !ok {
		return 1
	}
	fmt.Fprintf(stdout, "Sentiment: %s\n", label)
	return 0
}

func runBatch(ctx context.Context, reconciler *sentiment.Reconciler, path, outPath string, stdin io.Reader, stdout, stderr io.Writer) int {
	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer f.Close()
		in = f
	}

	batch, err := sentiment.BatchFromReader(in)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	outcome := reconciler.Reconcile(ctx, batch, sentiment.ModeBatch)
	printNotices(stderr, outcome)
	if len(outcome.Rows) == 0 {
		return 1
	}

	if outPath == "" {
		if err := export.WriteCSV(stdout, outcome.Rows); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	} else {
		if err := writeCSVFile(outPath, outcome); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		printTable(stdout, outcome)
	}

	if !outcome.OK() {
		return 1
	}
	return 0
}

func writeCSVFile(path string, outcome sentiment.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, outcome.Rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printTable(w io.Writer, outcome sentiment.Outcome) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Comment\tSentiment")
	for _, row := range outcome.Rows {
		fmt.Fprintf(tw, "%s\t%s\n", row.Comment, row.Sentiment)
	}
	tw.Flush()
}

func printNotices(w io.Writer, outcome sentiment.Outcome) {
	for _, n := range outcome.Notices {
		if n.Level == sentiment.NoticeProgress {
			continue
		}
		fmt.Fprintf(w, "[%s] %s\n", n.Level, n.Message)
	}
	if len(outcome.Detail) > 0 {
		fmt.Fprintln(w, string(outcome.Detail))
	}
}
