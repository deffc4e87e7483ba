package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidBundle is returned when a document is valid JSON but does not
// have the shape of an allresults bundle.
var ErrInvalidBundle = errors.New("invalid results bundle")

// Load reads and parses the bundle at path.
func Load(path string) (Bundle, error) {
	file, err := os.Open(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("error opening results file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Bundle{}, fmt.Errorf("error reading results file %s: %w", path, err)
	}

	bundle, err := Parse(data)
	if err != nil {
		return Bundle{}, fmt.Errorf("error parsing results file %s: %w", path, err)
	}
	return bundle, nil
}

// Parse decodes a bundle from raw JSON, validating its shape once so that the
// rest of the program can rely on typed fields.
func Parse(data []byte) (Bundle, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Bundle{}, fmt.Errorf("malformed JSON: %w", err)
	}

	if err := validate(doc); err != nil {
		return Bundle{}, err
	}

	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return Bundle{}, err
	}
	return bundle, nil
}

func validate(doc any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(bundleSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidBundle, strings.Join(errs, ", "))
}
