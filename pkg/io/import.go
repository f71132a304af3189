package io

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/stablematch/pkg/bipartite"
	"github.com/matzehuels/stablematch/pkg/errors"
)

// Format is an instance encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatText
}

// ImportInstance reads the instance at path in the format given by its
// extension. A missing file fails with FILE_NOT_FOUND; all other errors
// are those of [ReadInstance] or [ReadJSON], prefixed with the path.
func ImportInstance(path string) (*bipartite.Graph, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "instance %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	var g *bipartite.Graph
	if DetectFormat(path) == FormatJSON {
		g, err = ReadJSON(f)
	} else {
		g, err = ReadInstance(f)
	}
	if err != nil {
		return nil, errors.WithContext(err, "%s", path)
	}
	return g, nil
}
