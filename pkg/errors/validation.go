package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxLabelLength bounds vertex labels read from instance files.
const maxLabelLength = 256

// ValidateVertexLabel validates a vertex label for use in a preference graph.
//
// Labels are written back into DOT output and instance files, so the rules
// are conservative:
//   - No empty labels
//   - No control characters or whitespace
//   - None of the instance-format delimiters , ; : { } ( ) @ #
//   - Maximum length of 256 characters
func ValidateVertexLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "vertex label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "vertex label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "vertex label %q contains whitespace or control characters", label)
		}
	}

	if i := strings.IndexAny(label, ",;:{}()@#"); i >= 0 {
		return New(ErrCodeInvalidInput, "vertex label %q contains reserved character %q", label, label[i])
	}

	return nil
}

// algorithmNameRegex matches registry names such as "critical-rsm".
var algorithmNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateAlgorithmName checks that name is a well-formed algorithm identifier.
// It does not check that the algorithm is registered.
func ValidateAlgorithmName(name string) error {
	if name == "" {
		return New(ErrCodeUnknownAlgorithm, "algorithm name cannot be empty")
	}
	if !algorithmNameRegex.MatchString(name) {
		return New(ErrCodeUnknownAlgorithm, "invalid algorithm name: %q", name)
	}
	return nil
}
