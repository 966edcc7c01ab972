package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/viant/jsonbind"
)

type config struct {
	Input    string
	Output   string
	Pretty   bool
	Nullable bool
	YAML     bool
	Check    bool
	Verbose  bool
}

func (c *config) addFlags(flagSet *pflag.FlagSet) {
	flagSet.BoolVarP(&c.Pretty, "pretty", "p", false, "indent output with tabs, one member per line")
	flagSet.BoolVar(&c.Nullable, "nullable", false, "emit null members")
	flagSet.BoolVar(&c.YAML, "yaml", false, "write YAML instead of JSON")
	flagSet.BoolVar(&c.Check, "check", false, "validate only, write nothing")
	flagSet.StringVarP(&c.Output, "output", "o", "", "output file (default: stdout)")
	flagSet.BoolVarP(&c.Verbose, "verbose", "v", false, "log progress")
}

func (c *config) init(args []string) error {
	switch len(args) {
	case 0:
		c.Input = "-"
	case 1:
		c.Input = args[0]
	default:
		return fmt.Errorf("expected at most one input, but had %d", len(args))
	}
	if c.Check && c.Output != "" {
		return fmt.Errorf("--check does not write output, remove -o %v", c.Output)
	}
	return nil
}

func (c *config) options() []jsonbind.Option {
	return []jsonbind.Option{
		jsonbind.WithPretty(c.Pretty),
		jsonbind.WithNullable(c.Nullable),
	}
}
