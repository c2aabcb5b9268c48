// imgconv converts images between BMP, JPEG and PPM by file extension.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"ImgConverter/config"
	"ImgConverter/dialogue"
	"ImgConverter/format"
	"ImgConverter/layout"
)

func main() {
	os.Exit(int(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) ExitCode {
	fs := flag.NewFlagSet("imgconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultPath, "YAML configuration file")
	verbose := fs.Bool("v", false, "Log progress to stderr")
	interactive := fs.Bool("i", false, "Ask for an output format when the output extension is unknown")
	foldCase := fs.Bool("fold-case", false, "Match file extensions case-insensitively")
	inspect := fs.Bool("inspect", false, "Print and check the header of a BMP file instead of converting")
	initConfig := fs.Bool("init-config", false, "Write the effective configuration to -config and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: imgconv [flags] <in_file> <out_file>")
		fmt.Fprintln(stderr, "       imgconv -inspect <file.bmp>")
		fmt.Fprintln(stderr, "Exit status: 0 ok, 1 usage, 2 unknown input format, 3 unknown output format,")
		fmt.Fprintln(stderr, "             4 loading failed, 5 saving failed, 6 invalid configuration")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	setLogging(stderr, *verbose)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, exitMessages[ExitBadConfig])
		fmt.Fprintln(stderr, err)
		return ExitBadConfig
	}
	// Flags given on the command line win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			cfg.Verbose = *verbose
		case "i":
			cfg.Interactive = *interactive
		case "fold-case":
			cfg.CaseInsensitiveExtensions = *foldCase
		}
	})
	setLogging(stderr, cfg.Verbose)

	switch {
	case *initConfig:
		if err := config.SaveConfig(*configPath, cfg); err != nil {
			fmt.Fprintln(stderr, err)
			return ExitSaveFailed
		}
		log.Printf("Wrote configuration to %s.", *configPath)
		return ExitOK

	case *inspect:
		if fs.NArg() != 1 {
			fs.Usage()
			return ExitUsage
		}
		return runInspect(fs.Arg(0), cfg, stdout, stderr)
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return ExitUsage
	}

	conv := &Converter{Resolver: format.Resolver{FoldCase: cfg.CaseInsensitiveExtensions}}
	if cfg.Interactive {
		conv.Choose = func(path string) (format.Format, error) {
			return dialogue.ChooseFormat(stdin, stderr, path, format.Known())
		}
	}

	err = conv.Convert(fs.Arg(0), fs.Arg(1))
	code := exitCode(err)
	if code != ExitOK {
		fmt.Fprintln(stderr, exitMessages[code])
		log.Printf("%v", err)
	}
	return code
}

func runInspect(path string, cfg config.Config, stdout, stderr io.Writer) ExitCode {
	ff := layout.Default()
	if cfg.Layout != "" {
		var err error
		ff, err = layout.LoadFile(cfg.Layout)
		if err != nil {
			fmt.Fprintln(stderr, exitMessages[ExitBadConfig])
			fmt.Fprintln(stderr, err)
			return ExitBadConfig
		}
	}

	ok, err := Inspect(stdout, path, ff)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitLoadFailed
	}
	if !ok {
		return ExitLoadFailed
	}
	return ExitOK
}

func setLogging(w io.Writer, verbose bool) {
	if verbose {
		log.SetOutput(w)
		return
	}
	log.SetOutput(io.Discard)
}
