package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/viant/jsonbind"
)

type formatter struct {
	cfg    *config
	logger *slog.Logger
}

func newFormatter(cfg *config, logger *slog.Logger) *formatter {
	return &formatter{cfg: cfg, logger: logger}
}

func (f *formatter) format(stdin io.Reader, stdout io.Writer) error {
	data, err := f.read(stdin)
	if err != nil {
		return err
	}
	f.logger.Debug("read input", "source", f.cfg.Input, "bytes", len(data))
	doc, err := jsonbind.Parse(data, f.cfg.options()...)
	if err != nil {
		return fmt.Errorf("%v: %w", f.cfg.Input, err)
	}
	f.logger.Debug("parsed document", "kind", doc.Kind())
	if f.cfg.Check {
		return nil
	}
	var out []byte
	if f.cfg.YAML {
		out, err = encodeYAML(doc)
	} else {
		out, err = jsonbind.Marshal(doc, f.cfg.options()...)
		out = append(out, '\n')
	}
	if err != nil {
		return err
	}
	if f.cfg.Output == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err = os.WriteFile(f.cfg.Output, out, 0o644); err != nil {
		return err
	}
	f.logger.Debug("wrote output", "destination", f.cfg.Output, "bytes", len(out))
	return nil
}

func (f *formatter) read(stdin io.Reader) ([]byte, error) {
	if f.cfg.Input == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(f.cfg.Input)
}
