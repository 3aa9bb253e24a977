// Command wiredump walks an arbitrary protobuf wire-format payload with
// no schema and prints the field tree it finds. Length-delimited fields
// are speculatively re-parsed as nested messages, falling back to
// string or hex display.
//
// Usage:
//
//	wiredump payload.bin
//	cat payload.b64 | wiredump --base64
//	wiredump --hex payload.hex
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/amialabs/wirebuf/base64"
	"github.com/amialabs/wirebuf/wire"
)

func main() {
	app := &cli.App{
		Name:      "wiredump",
		Usage:     "dump a protobuf wire-format payload as a field tree",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "base64",
				Aliases: []string{"b"},
				Usage:   "input is base64 encoded",
			},
			&cli.BoolFlag{
				Name:    "hex",
				Aliases: []string{"x"},
				Usage:   "input is hex encoded",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "wiredump:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("base64") && c.Bool("hex") {
		return fmt.Errorf("--base64 and --hex are mutually exclusive")
	}
	if c.Bool("no-color") {
		color.NoColor = true
	}

	var in io.Reader = os.Stdin
	if c.Args().Len() > 0 {
		f, err := os.Open(c.Args().First())
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	data := raw
	switch {
	case c.Bool("base64"):
		data, err = base64.Decode(raw)
		if err != nil {
			return err
		}
	case c.Bool("hex"):
		cleaned := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, string(raw))
		data, err = hex.DecodeString(cleaned)
		if err != nil {
			return err
		}
	}

	return dump(os.Stdout, data, 0)
}

var (
	fieldColor = color.New(color.FgCyan)
	typeColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
)

// dump walks one message level, printing a line per field.
func dump(w io.Writer, data []byte, depth int) error {
	indent := strings.Repeat("  ", depth)
	r := bytes.NewReader(data)

	for {
		hdr, err := wire.DecodeTag(r)
		if err != nil {
			errColor.Fprintf(w, "%s! %v\n", indent, err)
			return err
		}
		if hdr == nil {
			return nil
		}

		raw, err := wire.ReadRawField(r, hdr)
		if err != nil {
			errColor.Fprintf(w, "%s! field %d: %v\n", indent, hdr.FieldNumber, err)
			return err
		}

		fmt.Fprintf(w, "%s%s %s: ",
			indent,
			fieldColor.Sprintf("#%d", hdr.FieldNumber),
			typeColor.Sprint(hdr.WireType))

		switch hdr.WireType {
		case wire.WireVarint:
			v, _ := wire.DecodeVarint(bytes.NewReader(raw.Data))
			fmt.Fprintf(w, "%d (zigzag %d)\n", v, wire.DecodeZigZag64(v))
		case wire.WireFixed32:
			v, _ := wire.DecodeFixed32(bytes.NewReader(raw.Data))
			f, _ := wire.DecodeFloat(bytes.NewReader(raw.Data))
			fmt.Fprintf(w, "%d (float %g)\n", v, f)
		case wire.WireFixed64:
			v, _ := wire.DecodeFixed64(bytes.NewReader(raw.Data))
			f, _ := wire.DecodeDouble(bytes.NewReader(raw.Data))
			fmt.Fprintf(w, "%d (double %g)\n", v, f)
		case wire.WireBytes:
			printDelimited(w, raw.Data, depth)
		}
	}
}

// printDelimited chooses the best display for a length-delimited
// payload: nested message, printable string, or hex.
func printDelimited(w io.Writer, data []byte, depth int) {
	if len(data) == 0 {
		fmt.Fprintln(w, `""`)
		return
	}

	if looksLikeMessage(data) {
		fmt.Fprintf(w, "message (%d bytes) {\n", len(data))
		_ = dump(w, data, depth+1)
		fmt.Fprintf(w, "%s}\n", strings.Repeat("  ", depth))
		return
	}

	if utf8.Valid(data) && isPrintable(data) {
		fmt.Fprintf(w, "%q\n", data)
		return
	}
	fmt.Fprintf(w, "0x%s (%d bytes)\n", hex.EncodeToString(data), len(data))
}

// looksLikeMessage reports whether data parses cleanly as a sequence of
// wire-format fields. Short ASCII payloads often do by coincidence;
// requiring the full payload to be consumed keeps the guess honest.
func looksLikeMessage(data []byte) bool {
	r := bytes.NewReader(data)
	fields := 0
	for {
		hdr, err := wire.DecodeTag(r)
		if err != nil {
			return false
		}
		if hdr == nil {
			return fields > 0 && r.Len() == 0
		}
		if err := wire.SkipField(r, hdr.WireType); err != nil {
			return false
		}
		fields++
	}
}

func isPrintable(data []byte) bool {
	for _, r := range string(data) {
		if r != '\n' && r != '\t' && (r < 0x20 || r == 0x7F) {
			return false
		}
	}
	return true
}
