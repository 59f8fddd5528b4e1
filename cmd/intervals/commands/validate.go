package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/intervals/pkg/intervalio"
	"github.com/Sumatoshi-tech/intervals/pkg/observability"
)

// ErrInvalidDocument is returned by validate when the document fails the schema.
var ErrInvalidDocument = errors.New("document is invalid")

const opValidate = "validate"

// NewValidateCommand creates the document validation command.
func NewValidateCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document|->",
		Short: "Validate a document against the interval document schema",
		Long: `Validate a YAML or JSON interval document against the embedded schema.

Examples:
  intervals validate lists.yaml
  intervals validate - < lists.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, observability.ModeCLI, func(ctx context.Context, s *session) error {
				return runValidate(ctx, s, args[0])
			})
		},
	}
}

func runValidate(ctx context.Context, s *session, path string) error {
	data, label, err := readInput(s.stdin, path)
	if err != nil {
		return err
	}

	var validateErr error

	runErr := s.run(ctx, opValidate, 0, func(context.Context) (int, error) {
		validateErr = intervalio.Validate(data)

		var schemaErr *intervalio.SchemaError
		if errors.As(validateErr, &schemaErr) {
			return len(schemaErr.Problems), nil
		}

		return 0, validateErr
	})
	if runErr != nil {
		return runErr
	}

	ok, bad, hint := color.New(color.FgGreen), color.New(color.FgRed), color.New(color.FgYellow)
	for _, c := range []*color.Color{ok, bad, hint} {
		if s.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if validateErr == nil {
		ok.Fprintf(s.stdout, "Document is valid (%s)\n", label)

		return nil
	}

	var schemaErr *intervalio.SchemaError

	errors.As(validateErr, &schemaErr)

	bad.Fprintf(s.stdout, "Document validation failed (%s)\n", label)
	fmt.Fprintf(s.stdout, "\nErrors:\n")

	for _, p := range schemaErr.Problems {
		bad.Fprintf(s.stdout, "  - %s: %s\n", p.Field, p.Description)
	}

	hint.Fprintf(s.stdout, "\nRun \"intervals schema\" to print the expected format.\n")

	return fmt.Errorf("%w: %d problems", ErrInvalidDocument, len(schemaErr.Problems))
}

func readInput(stdin io.Reader, path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}

		return data, "stdin", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read document: %w", err)
	}

	return data, path, nil
}

// NewSchemaCommand creates the command printing the document schema.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of interval documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(intervalio.Schema())
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}
