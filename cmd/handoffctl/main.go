// handoffctl is the operator tool for the handoff service.
//
//	handoffctl keygen                 print a fresh HANDOFF_DATA_KEY
//	handoffctl passgen [flags]        generate passwords offline with the service's policy
//	handoffctl devkey [flags]         write a signing key and JWKS for local development
//	handoffctl devtoken [flags]       mint an access token with a devkey signing key
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/aussiebroadwan/handoff/pkg/passgen"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		printUsage(stdout)
		return errors.New("missing command")
	}

	switch args[0] {
	case "keygen":
		return runKeygen(stdout)
	case "passgen":
		return runPassgen(args[1:], stdout)
	case "devkey":
		return runDevKey(args[1:], stdout)
	case "devtoken":
		return runDevToken(args[1:], stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runKeygen(stdout io.Writer) error {
	key, err := cryptox.GenerateKey()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, key)
	return err
}

func runPassgen(args []string, stdout io.Writer) error {
	var preset string
	var length, count int

	flagSet := pflag.NewFlagSet("passgen", pflag.ContinueOnError)
	flagSet.SetOutput(stdout)
	flagSet.StringVarP(&preset, "preset", "p", string(passgen.PresetFull), "character classes: alpha, alnum or full")
	flagSet.IntVarP(&length, "length", "l", passgen.DefaultLength,
		fmt.Sprintf("password length (%d-%d)", passgen.MinLength, passgen.MaxLength))
	flagSet.IntVarP(&count, "count", "n", 1, "number of passwords to print")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if count < 1 {
		return errors.New("--count must be at least 1")
	}
	if length < passgen.MinLength || length > passgen.MaxLength {
		return fmt.Errorf("--length must be between %d and %d", passgen.MinLength, passgen.MaxLength)
	}

	gen, err := passgen.NewGenerator(passgen.Config{})
	if err != nil {
		return err
	}
	policy, err := gen.Resolve(preset, length)
	if err != nil {
		return err
	}

	for range count {
		secret, err := gen.Generate(policy)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(stdout, secret); err != nil {
			return err
		}
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: handoffctl <command> [flags]

Commands:
  keygen     print a fresh base64 data encryption key for HANDOFF_DATA_KEY
  passgen    generate passwords with the service's password policy
  devkey     write a signing key and matching JWKS (point HANDOFF_JWKS_FILE at it)
  devtoken   mint a bearer token signed by a devkey key

Run "handoffctl <command> --help" for command flags.
`)
}
