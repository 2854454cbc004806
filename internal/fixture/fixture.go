// Package fixture loads envelopes from a small JSON literal format, for
// CLI and test convenience only. It is never imported by pattern,
// envelope or registry: the core engine only ever sees *envelope.Envelope
// values built through envelope's own constructors, not JSON.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/blockchaincommons/bc-envelope-pattern-go/envelope"
)

// node is the wire shape of one envelope literal. Only the fields that
// belong to Type (grouped below) are read.
type node struct {
	Type string `json:"type"`

	// leaf
	Value any `json:"value,omitempty"`

	// tagged (a leaf wrapping a CBOR tag number and content, e.g. dates)
	Tag     *uint64 `json:"tag,omitempty"`
	Content any     `json:"content,omitempty"`

	// node
	Subject    *node   `json:"subject,omitempty"`
	Assertions []*node `json:"assertions,omitempty"`

	// wrapped
	Inner *node `json:"inner,omitempty"`

	// assertion
	Predicate *node `json:"predicate,omitempty"`
	Object    *node `json:"object,omitempty"`

	// knownValue
	KnownValue uint64 `json:"knownValue,omitempty"`

	// elided / encrypted / compressed
	Digest string `json:"digest,omitempty"`
}

// Load reads and parses the envelope literal at path.
func Load(path string) (*envelope.Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a single envelope literal from data.
func Parse(data []byte) (*envelope.Envelope, error) {
	var n node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("fixture: invalid JSON: %w", err)
	}
	return build(&n)
}

func build(n *node) (*envelope.Envelope, error) {
	switch n.Type {
	case "leaf":
		return envelope.NewLeaf(n.Value)

	case "tagged":
		if n.Tag == nil {
			return nil, fmt.Errorf("fixture: tagged literal missing tag")
		}
		return envelope.NewTaggedLeaf(*n.Tag, n.Content)

	case "node":
		if n.Subject == nil {
			return nil, fmt.Errorf("fixture: node literal missing subject")
		}
		subject, err := build(n.Subject)
		if err != nil {
			return nil, err
		}
		assertions := make([]*envelope.Envelope, len(n.Assertions))
		for i, a := range n.Assertions {
			ae, err := build(a)
			if err != nil {
				return nil, err
			}
			assertions[i] = ae
		}
		return envelope.NewNode(subject, assertions...)

	case "wrapped":
		if n.Inner == nil {
			return nil, fmt.Errorf("fixture: wrapped literal missing inner")
		}
		inner, err := build(n.Inner)
		if err != nil {
			return nil, err
		}
		return envelope.NewWrapped(inner)

	case "assertion":
		if n.Predicate == nil || n.Object == nil {
			return nil, fmt.Errorf("fixture: assertion literal missing predicate or object")
		}
		predicate, err := build(n.Predicate)
		if err != nil {
			return nil, err
		}
		object, err := build(n.Object)
		if err != nil {
			return nil, err
		}
		return envelope.NewAssertion(predicate, object)

	case "knownValue":
		return envelope.NewKnownValue(n.KnownValue), nil

	case "elided", "encrypted", "compressed":
		d, err := envelope.DigestFromHex(n.Digest)
		if err != nil {
			return nil, err
		}
		switch n.Type {
		case "elided":
			return envelope.NewElided(d), nil
		case "encrypted":
			return envelope.NewEncrypted(d), nil
		default:
			return envelope.NewCompressed(d), nil
		}

	default:
		return nil, fmt.Errorf("fixture: unknown envelope literal type %q", n.Type)
	}
}
