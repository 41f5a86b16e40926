// Package jobgraph holds identifiers for the execution graph of a streaming
// job. A job is subdivided into vertices; each vertex carries a stable,
// collision-free ID that survives restarts of the control loop and is safe
// to embed in metric scope names.
package jobgraph

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// VertexIDHexLength is the length of the textual encoding of a VertexID.
const VertexIDHexLength = 32

// VertexID identifies one vertex of a job's execution graph. The zero value
// is a valid, if unlikely, ID; IDs are comparable and usable as map keys.
type VertexID [16]byte

// NewVertexID returns a random VertexID.
func NewVertexID() VertexID {
	return VertexID(uuid.New())
}

// VertexIDFromHex parses the 32-character hex encoding produced by String.
// Both upper and lower case digits are accepted.
func VertexIDFromHex(s string) (VertexID, error) {
	if len(s) != VertexIDHexLength {
		return VertexID{}, fmt.Errorf("vertex ID must be %d hex characters, got %d (%q)", VertexIDHexLength, len(s), s)
	}
	var id VertexID
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return VertexID{}, fmt.Errorf("invalid vertex ID %q: %w", s, err)
	}
	return id, nil
}

// String renders the ID as 32 lowercase hex characters with no separators.
func (id VertexID) String() string {
	return hex.EncodeToString(id[:])
}
