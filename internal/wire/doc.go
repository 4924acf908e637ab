// Package wire maps the test-spec data model to and from JSON documents.
//
// The document rules are the cross-language contract:
//   - keys are camelCase
//   - absent optional fields are omitted entirely, never emitted as null
//   - an absent "children" field (leaf) and an empty "children" array
//     (explicitly empty container) are distinct and round-trip distinctly
//   - unknown fields are ignored on decode (forward compatibility)
//   - missing or wrong-typed required fields fail with
//     MalformedDocumentError
//
// Encoding is canonical: object keys are sorted, strings are NFC
// normalized, HTML characters are not escaped, and floats use the
// shortest representation that round-trips. Two encodes of equal values
// are byte-identical, which keeps golden files and byte comparison
// stable across runs.
package wire
