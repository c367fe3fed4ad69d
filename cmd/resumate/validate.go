package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resumate/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a payload JSON file against its schema",
	Long:  "Validates a JSON file against the built-in resume payload schema, or against the schema given with --schema.",
	RunE:  runValidate,
}

var (
	validateJSONFile   string
	validateSchemaFile string
)

func init() {
	validateCmd.Flags().StringVar(&validateJSONFile, "json", "", "Path to JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Path to JSON Schema file (default: built-in payload schema)")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	return validateFile(validateJSONFile, validateSchemaFile, cmd.OutOrStdout())
}

// validateFile checks jsonPath and reports the outcome on out.
func validateFile(jsonPath, schemaPath string, out io.Writer) error {
	var err error
	if schemaPath != "" {
		err = schemas.ValidateJSON(schemaPath, jsonPath)
	} else {
		var data []byte
		data, err = os.ReadFile(jsonPath)
		if err != nil {
			return fmt.Errorf("failed to read JSON file: %w", err)
		}
		err = schemas.ValidateBytes(data)
	}

	var validationErr *schemas.ValidationError
	switch {
	case err == nil:
		_, _ = fmt.Fprintf(out, "Validation passed: %s\n", jsonPath)
		return nil
	case errors.As(err, &validationErr):
		_, _ = fmt.Fprintf(out, "Validation failed: %s\n%s", jsonPath, validationErr.Error())
		return fmt.Errorf("%s does not match the schema", jsonPath)
	default:
		return err
	}
}
