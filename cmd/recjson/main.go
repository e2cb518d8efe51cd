package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/recjson/codec"
	"github.com/wippyai/recjson/descriptor"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to YAML config file")
		typeName    = flag.String("type", "", "Sample type ("+strings.Join(sampleNames(), ", ")+")")
		mode        = flag.String("mode", "", "describe, encode, decode, wit or bench")
		input       = flag.String("in", "", "JSON input for decode, - for stdin")
		iterations  = flag.Int("n", 0, "Bench iterations")
		strict      = flag.Bool("strict", false, "Fail decode when values are dropped")
		color       = flag.Bool("color", true, "Colorize JSON when stdout is a terminal")
		showMetrics = flag.Bool("metrics", false, "Print Prometheus metrics after the run")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg, err := loadSettings(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "type":
			cfg.Type = *typeName
		case "mode":
			cfg.Mode = *mode
		case "in":
			cfg.Input = *input
		case "n":
			cfg.Iterations = *iterations
		case "strict":
			cfg.Strict = *strict
		case "color":
			cfg.Color = *color
		case "metrics":
			cfg.Metrics = *showMetrics
		}
	})
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: recjson [-config file.yaml] [-type name] [-mode describe|encode|decode|wit|bench]")
		fmt.Fprintln(os.Stderr, "       recjson -mode decode -type config -in doc.json")
		fmt.Fprintln(os.Stderr, "       recjson -i  (interactive mode)")
		os.Exit(1)
	}

	logger, err := cfg.newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	descriptor.SetLogger(logger.Named("descriptor"))
	codec.SetLogger(logger.Named("codec"))

	a := newApp(cfg)

	if *interactive {
		if err := runInteractive(a); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(a); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(a *app) error {
	s := samples[a.cfg.Type]
	out, color := stdout(a.cfg.Color)

	switch a.cfg.Mode {
	case "describe":
		text, err := a.describe(s)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)

	case "wit":
		text, err := a.wit(s)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)

	case "encode":
		data, err := a.encode(s)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		text, err := prettyJSON(data, color)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)

	case "decode":
		if a.cfg.Input == "-" && term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "reading JSON from stdin, end with Ctrl-D")
		}
		data, err := readInput(a.cfg.Input)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		text, err := a.decode(s, data)
		fmt.Fprint(out, text)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}

	case "bench":
		text, err := a.bench(s, a.cfg.Iterations)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
	}

	if a.cfg.Metrics {
		return a.writeMetrics(os.Stdout)
	}
	return nil
}
