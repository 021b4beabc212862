// ronfmt - RON formatter and converter
//
// Usage:
//
//	ronfmt fmt [file]        Parse RON and print its canonical form
//	ronfmt to-json [file]    Convert RON to JSON
//	ronfmt from-json [file]  Convert JSON to canonical RON
//	ronfmt to-yaml [file]    Convert RON to YAML
//	ronfmt from-yaml [file]  Convert YAML to canonical RON
//
// If no file is given, reads from stdin. Files ending in .gz (or any
// input with --gzip) are transparently decompressed; --gzip also
// compresses the output.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/urfave/cli/v2"

	"github.com/ronlang/ron-go/ron"
)

func main() {
	app := &cli.App{
		Name:  "ronfmt",
		Usage: "format and convert RON text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "indent",
				Value: "  ",
				Usage: "indent string for multi-line layout",
			},
			&cli.IntFlag{
				Name:  "wrap",
				Value: 4,
				Usage: "element count above which containers wrap (0 disables)",
			},
			&cli.BoolFlag{
				Name:  "gzip",
				Usage: "gzip-compress output and assume gzip input",
			},
		},
		DefaultCommand: "fmt",
		Commands: []*cli.Command{
			{
				Name:      "fmt",
				Usage:     "parse RON and print its canonical form",
				ArgsUsage: "[file]",
				Action:    func(c *cli.Context) error { return convert(c, fmtRON) },
			},
			{
				Name:      "to-json",
				Usage:     "convert RON to JSON",
				ArgsUsage: "[file]",
				Action:    func(c *cli.Context) error { return convert(c, toJSON) },
			},
			{
				Name:      "from-json",
				Usage:     "convert JSON to canonical RON",
				ArgsUsage: "[file]",
				Action:    func(c *cli.Context) error { return convert(c, fromJSON) },
			},
			{
				Name:      "to-yaml",
				Usage:     "convert RON to YAML",
				ArgsUsage: "[file]",
				Action:    func(c *cli.Context) error { return convert(c, toYAML) },
			},
			{
				Name:      "from-yaml",
				Usage:     "convert YAML to canonical RON",
				ArgsUsage: "[file]",
				Action:    func(c *cli.Context) error { return convert(c, fromYAML) },
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ronfmt: %v\n", err)
		os.Exit(1)
	}
}

type convertFunc func(input []byte, opts ron.Options) ([]byte, error)

// convert reads the input, applies fn, and writes the result,
// handling gzip on both sides.
func convert(c *cli.Context, fn convertFunc) error {
	input, err := readInput(c)
	if err != nil {
		return err
	}

	opts := ron.Options{Emit: ron.EmitOptions{
		Indent:        c.String("indent"),
		WrapThreshold: c.Int("wrap"),
	}}

	out, err := fn(input, opts)
	if err != nil {
		if off, ok := ron.ErrorOffset(err); ok {
			return fmt.Errorf("%w (byte %d)", err, off)
		}
		return err
	}

	return writeOutput(c, out)
}

func fmtRON(input []byte, opts ron.Options) ([]byte, error) {
	out, err := ron.RunWithOptions(string(input), opts)
	if err != nil {
		return nil, err
	}
	return append([]byte(out), '\n'), nil
}

func toJSON(input []byte, opts ron.Options) ([]byte, error) {
	v, err := ron.Parse(string(input))
	if err != nil {
		return nil, err
	}
	out, err := ron.ToJSON(v)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func fromJSON(input []byte, opts ron.Options) ([]byte, error) {
	v, err := ron.FromJSON(input)
	if err != nil {
		return nil, err
	}
	return append([]byte(ron.EmitWithOptions(v, opts.Emit)), '\n'), nil
}

func toYAML(input []byte, opts ron.Options) ([]byte, error) {
	v, err := ron.Parse(string(input))
	if err != nil {
		return nil, err
	}
	return ron.ToYAML(v)
}

func fromYAML(input []byte, opts ron.Options) ([]byte, error) {
	v, err := ron.FromYAML(input)
	if err != nil {
		return nil, err
	}
	return append([]byte(ron.EmitWithOptions(v, opts.Emit)), '\n'), nil
}

func readInput(c *cli.Context) ([]byte, error) {
	var r io.Reader = os.Stdin
	name := c.Args().First()

	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	if c.Bool("gzip") || strings.HasSuffix(name, ".gz") {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip input: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	return io.ReadAll(r)
}

func writeOutput(c *cli.Context, out []byte) error {
	if !c.Bool("gzip") {
		_, err := os.Stdout.Write(out)
		return err
	}
	zw := gzip.NewWriter(os.Stdout)
	if _, err := zw.Write(out); err != nil {
		return err
	}
	return zw.Close()
}
