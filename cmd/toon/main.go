// Command toon converts between JSON, YAML and TOON.
//
//	toon encode [--from json|yaml] [--indent N] [--delimiter comma|tab|pipe] [--length-marker] [file]
//	toon decode [--to json|yaml] [--pretty] [--indent N] [--lenient] [file]
//	toon --version
//
// Input is read from file, or from stdin when no file is given.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/paularlott/cli"
	"github.com/paularlott/toon"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitError carries the exit status of a failed command. A nil err means
// the failure has already been reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func failed(err error) error { return &exitError{code: 1, err: err} }

// run executes the command line args and returns the process exit status:
// 0 on success, 1 when conversion fails and 2 for usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "toon: ", 0)

	// The command reads its arguments from os.Args.
	saved := os.Args
	os.Args = append([]string{"toon"}, args...)
	defer func() { os.Args = saved }()

	err := newCommand(stdin, stdout, stderr).Execute(context.Background())
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			logger.Print(ee.err)
		}
		return ee.code
	}
	logger.Print(err)
	return 2
}

func newCommand(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "toon",
		Version:     version,
		Usage:       "Convert between JSON, YAML and TOON",
		Description: "Reads from the named file, or from stdin when no file is given, and writes to stdout.",
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Convert JSON or YAML to TOON",
				Arguments: []cli.Argument{inputArg()},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:         "from",
						Usage:        "Input format: json or yaml",
						DefaultValue: "json",
						ValidateFlag: oneOf("from", "json", "yaml"),
					},
					&cli.IntFlag{
						Name:         "indent",
						Usage:        "Spaces per indentation level",
						DefaultValue: 2,
					},
					&cli.StringFlag{
						Name:         "delimiter",
						Usage:        "Array delimiter: comma, tab or pipe",
						DefaultValue: "comma",
						ValidateFlag: func(c *cli.Command) error {
							if _, err := toon.ParseDelimiter(c.GetString("delimiter")); err != nil {
								return fmt.Errorf("unsupported --delimiter %q, use comma, tab or pipe", c.GetString("delimiter"))
							}
							return nil
						},
					},
					&cli.BoolFlag{
						Name:  "length-marker",
						Usage: "Write array lengths as [#N]",
					},
				},
				Run: func(ctx context.Context, cmd *cli.Command) error {
					return encode(cmd, stdin, stdout)
				},
			},
			{
				Name:      "decode",
				Usage:     "Convert TOON to JSON or YAML",
				Arguments: []cli.Argument{inputArg()},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:         "to",
						Usage:        "Output format: json or yaml",
						DefaultValue: "json",
						ValidateFlag: oneOf("to", "json", "yaml"),
					},
					&cli.IntFlag{
						Name:         "indent",
						Usage:        "Spaces per indentation level of the input",
						DefaultValue: 2,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Indent JSON output",
					},
					&cli.BoolFlag{
						Name:  "lenient",
						Usage: "Skip strict validation",
					},
				},
				Run: func(ctx context.Context, cmd *cli.Command) error {
					return decode(cmd, stdin, stdout, stderr)
				},
			},
		},
	}
}

func inputArg() cli.Argument {
	return &cli.StringArg{Name: "file", Usage: "Input file, stdin when omitted or -"}
}

func oneOf(flag string, allowed ...string) func(*cli.Command) error {
	return func(c *cli.Command) error {
		v := c.GetString(flag)
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("unknown --%s format %q", flag, v)
	}
}

func encode(cmd *cli.Command, stdin io.Reader, stdout io.Writer) error {
	delim, err := toon.ParseDelimiter(cmd.GetString("delimiter"))
	if err != nil {
		return err
	}

	data, err := readInput(cmd.GetStringArg("file"), stdin)
	if err != nil {
		return failed(err)
	}

	var v toon.Value
	if cmd.GetString("from") == "yaml" {
		v, err = toon.FromYAML(data)
	} else {
		v, err = toon.FromJSON(data)
	}
	if err != nil {
		return failed(err)
	}

	enc := toon.NewEncoder(stdout)
	enc.SetOptions(&toon.Options{
		Indent:       cmd.GetInt("indent"),
		Delimiter:    delim,
		LengthMarker: cmd.GetBool("length-marker"),
	})
	if err := enc.Encode(v); err != nil {
		return failed(err)
	}
	return nil
}

func decode(cmd *cli.Command, stdin io.Reader, stdout, stderr io.Writer) error {
	data, err := readInput(cmd.GetStringArg("file"), stdin)
	if err != nil {
		return failed(err)
	}

	v, err := toon.DecodeWithOptions(string(data), &toon.Options{
		Indent:  cmd.GetInt("indent"),
		Lenient: cmd.GetBool("lenient"),
	})
	if err != nil {
		var terr *toon.Error
		if errors.As(err, &terr) {
			fmt.Fprintln(stderr, terr.Snippet())
			return &exitError{code: 1}
		}
		return failed(err)
	}

	var out []byte
	switch {
	case cmd.GetString("to") == "yaml":
		out, err = toon.ToYAML(v)
	case cmd.GetBool("pretty"):
		out, err = toon.ToJSONIndent(v, "  ")
	default:
		out, err = toon.ToJSON(v)
	}
	if err != nil {
		return failed(err)
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	if _, err := stdout.Write(out); err != nil {
		return failed(err)
	}
	return nil
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}
