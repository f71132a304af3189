package io

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/matzehuels/stablematch/pkg/bipartite"
)

// Fingerprint returns the SHA-256 of g's canonical text encoding as 64
// hex characters. Equal instances written in either format share a
// fingerprint.
func Fingerprint(g *bipartite.Graph) string {
	var buf bytes.Buffer
	_ = WriteInstance(g, &buf)
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
