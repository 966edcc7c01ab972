// jsonbind validates and reformats JSON documents.
//
// It reads a document from a file argument or standard input, and writes it back
// compact, pretty printed, or as YAML, keeping member order and numeric precision.
//
//	jsonbind --pretty order.json
//	cat order.json | jsonbind --yaml -o order.yaml
//	jsonbind --check order.json
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cfg config
	flagSet := pflag.NewFlagSet("jsonbind", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	cfg.addFlags(flagSet)
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if err := cfg.init(flagSet.Args()); err != nil {
		return err
	}
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return newFormatter(&cfg, logger).format(stdin, stdout)
}
