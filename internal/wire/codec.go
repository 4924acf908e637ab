package wire

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/boxproof/boxproof/internal/spec"
)

// LayoutRequest is the document sent to a layout oracle: the layout
// tree, the constraints, and the opaque binding selector forwarded
// verbatim from the test spec.
type LayoutRequest struct {
	Layout      spec.Layout
	Constraints spec.Constraints
	Binding     string
}

// EncodeSpec encodes a TestSpec as a canonical JSON document.
// All four top-level fields are always present; optional style and
// constraint fields are omitted when absent.
func EncodeSpec(s *spec.TestSpec) ([]byte, error) {
	assertions := make([]any, len(s.Assertions))
	for i, a := range s.Assertions {
		assertions[i] = map[string]any{
			"type":       string(a.Type),
			"expression": a.Expression,
			"message":    a.Message,
		}
	}

	doc := map[string]any{
		"layout":      layoutToDoc(&s.Layout),
		"constraints": constraintsToDoc(s.Constraints),
		"assertions":  assertions,
		"binding":     s.Binding,
	}
	return marshalCanonical(doc)
}

// DecodeSpec decodes a TestSpec document. The four top-level fields are
// required; unknown fields anywhere in the document are ignored.
func DecodeSpec(data []byte) (*spec.TestSpec, error) {
	const doc = "spec"

	fields, err := topLevelObject(data, doc)
	if err != nil {
		return nil, err
	}

	s := &spec.TestSpec{}

	layoutRaw, ok := fields["layout"]
	if !ok {
		return nil, malformed(doc, "layout", "required field missing")
	}
	layout, err := decodeLayout(layoutRaw, doc, "layout")
	if err != nil {
		return nil, err
	}
	s.Layout = *layout

	constraintsRaw, ok := fields["constraints"]
	if !ok {
		return nil, malformed(doc, "constraints", "required field missing")
	}
	s.Constraints, err = decodeConstraints(constraintsRaw, doc, "constraints")
	if err != nil {
		return nil, err
	}

	assertionsRaw, ok := fields["assertions"]
	if !ok {
		return nil, malformed(doc, "assertions", "required field missing")
	}
	s.Assertions, err = decodeAssertions(assertionsRaw, doc)
	if err != nil {
		return nil, err
	}

	bindingRaw, ok := fields["binding"]
	if !ok {
		return nil, malformed(doc, "binding", "required field missing")
	}
	if err := json.Unmarshal(bindingRaw, &s.Binding); err != nil {
		return nil, malformed(doc, "binding", "must be a string")
	}

	return s, nil
}

// EncodeResult encodes a TestResult document.
func EncodeResult(r spec.TestResult) ([]byte, error) {
	return marshalCanonical(map[string]any{
		"passed":  r.Passed,
		"failed":  r.Failed,
		"skipped": r.Skipped,
	})
}

// DecodeResult decodes a TestResult document. All three counts are
// required non-negative integers; unknown fields are ignored.
func DecodeResult(data []byte) (spec.TestResult, error) {
	const doc = "result"

	fields, err := topLevelObject(data, doc)
	if err != nil {
		return spec.TestResult{}, err
	}

	var r spec.TestResult
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"passed", &r.Passed},
		{"failed", &r.Failed},
		{"skipped", &r.Skipped},
	} {
		raw, ok := fields[f.name]
		if !ok {
			return spec.TestResult{}, malformed(doc, f.name, "required field missing")
		}
		n, err := decodeCount(raw)
		if err != nil {
			return spec.TestResult{}, malformed(doc, f.name, "%v", err)
		}
		*f.dst = n
	}
	return r, nil
}

// EncodeLayoutRequest encodes the oracle-bound document.
func EncodeLayoutRequest(req *LayoutRequest) ([]byte, error) {
	return marshalCanonical(map[string]any{
		"layout":      layoutToDoc(&req.Layout),
		"constraints": constraintsToDoc(req.Constraints),
		"binding":     req.Binding,
	})
}

// DecodeLayoutRequest decodes the oracle-bound document. This is the
// engine-side half of the oracle contract, for oracles implemented in
// Go against this module.
func DecodeLayoutRequest(data []byte) (*LayoutRequest, error) {
	const doc = "layoutRequest"

	fields, err := topLevelObject(data, doc)
	if err != nil {
		return nil, err
	}

	req := &LayoutRequest{}

	layoutRaw, ok := fields["layout"]
	if !ok {
		return nil, malformed(doc, "layout", "required field missing")
	}
	layout, err := decodeLayout(layoutRaw, doc, "layout")
	if err != nil {
		return nil, err
	}
	req.Layout = *layout

	if constraintsRaw, ok := fields["constraints"]; ok {
		req.Constraints, err = decodeConstraints(constraintsRaw, doc, "constraints")
		if err != nil {
			return nil, err
		}
	}

	if bindingRaw, ok := fields["binding"]; ok {
		if err := json.Unmarshal(bindingRaw, &req.Binding); err != nil {
			return nil, malformed(doc, "binding", "must be a string")
		}
	}

	return req, nil
}

// EncodeComputed encodes a computed tree document, the oracle's answer.
// Geometry fields are always present; children mirror the input tree's
// presence (nil children are omitted, an empty slice is an empty array).
func EncodeComputed(n *spec.ComputedNode) ([]byte, error) {
	return marshalCanonical(computedToDoc(n))
}

// DecodeComputed decodes a computed tree document. Every node requires
// finite numeric x, y, width, height.
func DecodeComputed(data []byte) (*spec.ComputedNode, error) {
	const doc = "computed"

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, malformed(doc, "", "not valid JSON: %v", err)
	}
	return decodeComputedNode(raw, doc, "")
}

// topLevelObject parses a document into its top-level fields.
func topLevelObject(data []byte, doc string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, malformed(doc, "", "not a JSON object: %v", err)
	}
	if fields == nil {
		return nil, malformed(doc, "", "document is null")
	}
	return fields, nil
}

func layoutToDoc(l *spec.Layout) map[string]any {
	node := map[string]any{
		"type": string(l.Type),
	}
	if style, ok := styleToDoc(l.Style); ok {
		node["style"] = style
	}
	if l.Children != nil {
		children := make([]any, len(l.Children))
		for i := range l.Children {
			children[i] = layoutToDoc(&l.Children[i])
		}
		node["children"] = children
	}
	return node
}

// styleToDoc converts a style to its document form. The second return
// is false when every style field is absent, in which case the "style"
// key is omitted entirely.
func styleToDoc(s spec.Style) (map[string]any, bool) {
	style := map[string]any{}
	if s.Display != "" {
		style["display"] = s.Display
	}
	if s.JustifyContent != "" {
		style["justifyContent"] = s.JustifyContent
	}
	if s.AlignItems != "" {
		style["alignItems"] = s.AlignItems
	}
	if s.Width != nil {
		style["width"] = *s.Width
	}
	if s.Height != nil {
		style["height"] = *s.Height
	}
	if len(style) == 0 {
		return nil, false
	}
	return style, true
}

func constraintsToDoc(c spec.Constraints) map[string]any {
	doc := map[string]any{}
	if c.MaxWidth != nil {
		doc["maxWidth"] = *c.MaxWidth
	}
	if c.MaxHeight != nil {
		doc["maxHeight"] = *c.MaxHeight
	}
	return doc
}

func computedToDoc(n *spec.ComputedNode) map[string]any {
	doc := map[string]any{
		"x":      n.X,
		"y":      n.Y,
		"width":  n.Width,
		"height": n.Height,
	}
	if n.Children != nil {
		children := make([]any, len(n.Children))
		for i, child := range n.Children {
			children[i] = computedToDoc(child)
		}
		doc["children"] = children
	}
	return doc
}

func decodeLayout(raw json.RawMessage, doc, path string) (*spec.Layout, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, malformed(doc, path, "must be an object")
	}

	l := &spec.Layout{}

	typeRaw, ok := fields["type"]
	if !ok {
		return nil, malformed(doc, path+".type", "required field missing")
	}
	var nodeType string
	if err := json.Unmarshal(typeRaw, &nodeType); err != nil {
		return nil, malformed(doc, path+".type", "must be a string")
	}
	l.Type = spec.NodeType(nodeType)

	if styleRaw, ok := fields["style"]; ok {
		style, err := decodeStyle(styleRaw, doc, path+".style")
		if err != nil {
			return nil, err
		}
		l.Style = style
	}

	if childrenRaw, ok := fields["children"]; ok {
		var children []json.RawMessage
		if err := json.Unmarshal(childrenRaw, &children); err != nil {
			return nil, malformed(doc, path+".children", "must be an array")
		}
		// A present children field always yields a non-nil slice, even
		// when empty: presence is the leaf/container distinction.
		l.Children = make([]spec.Layout, len(children))
		for i, childRaw := range children {
			childPath := path + ".children[" + strconv.Itoa(i) + "]"
			child, err := decodeLayout(childRaw, doc, childPath)
			if err != nil {
				return nil, err
			}
			l.Children[i] = *child
		}
	}

	return l, nil
}

func decodeStyle(raw json.RawMessage, doc, path string) (spec.Style, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return spec.Style{}, malformed(doc, path, "must be an object")
	}

	var s spec.Style
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"display", &s.Display},
		{"justifyContent", &s.JustifyContent},
		{"alignItems", &s.AlignItems},
	} {
		if raw, ok := fields[f.name]; ok {
			if err := json.Unmarshal(raw, f.dst); err != nil {
				return spec.Style{}, malformed(doc, path+"."+f.name, "must be a string")
			}
		}
	}
	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"width", &s.Width},
		{"height", &s.Height},
	} {
		if raw, ok := fields[f.name]; ok {
			var v float64
			if err := json.Unmarshal(raw, &v); err != nil {
				return spec.Style{}, malformed(doc, path+"."+f.name, "must be a number")
			}
			*f.dst = &v
		}
	}
	return s, nil
}

func decodeConstraints(raw json.RawMessage, doc, path string) (spec.Constraints, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return spec.Constraints{}, malformed(doc, path, "must be an object")
	}

	var c spec.Constraints
	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"maxWidth", &c.MaxWidth},
		{"maxHeight", &c.MaxHeight},
	} {
		if raw, ok := fields[f.name]; ok {
			var v float64
			if err := json.Unmarshal(raw, &v); err != nil {
				return spec.Constraints{}, malformed(doc, path+"."+f.name, "must be a number")
			}
			*f.dst = &v
		}
	}
	return c, nil
}

func decodeAssertions(raw json.RawMessage, doc string) ([]spec.Assertion, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, malformed(doc, "assertions", "must be an array")
	}

	assertions := make([]spec.Assertion, len(items))
	for i, itemRaw := range items {
		path := "assertions[" + strconv.Itoa(i) + "]"

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(itemRaw, &fields); err != nil {
			return nil, malformed(doc, path, "must be an object")
		}

		var a spec.Assertion
		for _, f := range []struct {
			name string
			dst  *string
		}{
			{"expression", &a.Expression},
			{"message", &a.Message},
		} {
			raw, ok := fields[f.name]
			if !ok {
				return nil, malformed(doc, path+"."+f.name, "required field missing")
			}
			if err := json.Unmarshal(raw, f.dst); err != nil {
				return nil, malformed(doc, path+"."+f.name, "must be a string")
			}
		}

		typeRaw, ok := fields["type"]
		if !ok {
			return nil, malformed(doc, path+".type", "required field missing")
		}
		var assertionType string
		if err := json.Unmarshal(typeRaw, &assertionType); err != nil {
			return nil, malformed(doc, path+".type", "must be a string")
		}
		a.Type = spec.AssertionType(assertionType)

		assertions[i] = a
	}
	return assertions, nil
}

func decodeComputedNode(raw json.RawMessage, doc, path string) (*spec.ComputedNode, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, malformed(doc, path, "must be an object")
	}

	n := &spec.ComputedNode{}
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"x", &n.X},
		{"y", &n.Y},
		{"width", &n.Width},
		{"height", &n.Height},
	} {
		raw, ok := fields[f.name]
		if !ok {
			return nil, malformed(doc, join(path, f.name), "required field missing")
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, malformed(doc, join(path, f.name), "must be a number")
		}
		if math.IsNaN(*f.dst) || math.IsInf(*f.dst, 0) {
			return nil, malformed(doc, join(path, f.name), "must be finite")
		}
	}

	if childrenRaw, ok := fields["children"]; ok {
		var children []json.RawMessage
		if err := json.Unmarshal(childrenRaw, &children); err != nil {
			return nil, malformed(doc, join(path, "children"), "must be an array")
		}
		n.Children = make([]*spec.ComputedNode, len(children))
		for i, childRaw := range children {
			childPath := join(path, "children["+strconv.Itoa(i)+"]")
			child, err := decodeComputedNode(childRaw, doc, childPath)
			if err != nil {
				return nil, err
			}
			n.Children[i] = child
		}
	}

	return n, nil
}

// decodeCount parses a non-negative integer count field.
func decodeCount(raw json.RawMessage) (int, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, errNotAnInteger
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, errNotAnInteger
	}
	if v < 0 {
		return 0, errNegativeCount
	}
	return int(v), nil
}

var (
	errNotAnInteger  = jsonError("must be an integer")
	errNegativeCount = jsonError("must be non-negative")
)

type jsonError string

func (e jsonError) Error() string { return string(e) }

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
