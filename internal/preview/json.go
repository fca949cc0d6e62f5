package preview

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ScalarColumn names the single column produced for rows that are not objects.
const ScalarColumn = "value"

type nodeKind uint8

const (
	nodeScalar nodeKind = iota
	nodeObject
	nodeArray
)

// node is a decoded JSON value that keeps object keys in document order.
type node struct {
	kind   nodeKind
	scalar Value
	fields []field
	items  []*node
}

type field struct {
	key   string
	value *node
}

// parseJSON decodes a JSON document and flattens it into a table.
//
// A single-key object whose value is an array is unwrapped and the array
// elements become the rows; any other single-key object, multi-key object or
// scalar becomes one row; a top-level array yields one row per element.
func parseJSON(data []byte) (*Table, error) {
	if !json.Valid(data) {
		var probe any

		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = errors.New("invalid JSON document")
		}

		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeNode(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	b := newBuilder()

	for _, row := range rowsOf(root) {
		b.appendRow(flattenRow(row))
	}

	return b.build(), nil
}

// rowsOf applies root-key unwrapping and returns the nodes that become rows.
func rowsOf(root *node) []*node {
	switch root.kind {
	case nodeObject:
		if len(root.fields) == 1 && root.fields[0].value.kind == nodeArray {
			return root.fields[0].value.items
		}

		return []*node{root}
	case nodeArray:
		return root.items
	default:
		return []*node{root}
	}
}

// flattenRow turns one row node into cells with dotted column names.
func flattenRow(n *node) []cell {
	if n.kind != nodeObject {
		return []cell{{name: ScalarColumn, value: leaf(n)}}
	}

	return flattenObject("", n, nil)
}

func flattenObject(prefix string, n *node, cells []cell) []cell {
	for _, f := range n.fields {
		name := prefix + f.key

		if f.value.kind == nodeObject {
			cells = flattenObject(name+".", f.value, cells)

			continue
		}

		cells = append(cells, cell{name: name, value: leaf(f.value)})
	}

	return cells
}

// leaf converts a node that is not flattened further into a cell value.
func leaf(n *node) Value {
	if n.kind == nodeScalar {
		return n.scalar
	}

	var sb strings.Builder

	render(&sb, n)

	return NestedValue(sb.String())
}

// render writes n as JSON with ", " and ": " separators.
func render(sb *strings.Builder, n *node) {
	switch n.kind {
	case nodeArray:
		sb.WriteByte('[')

		for i, item := range n.items {
			if i > 0 {
				sb.WriteString(", ")
			}

			render(sb, item)
		}

		sb.WriteByte(']')
	case nodeObject:
		sb.WriteByte('{')

		for i, f := range n.fields {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(strconv.Quote(f.key))
			sb.WriteString(": ")
			render(sb, f.value)
		}

		sb.WriteByte('}')
	default:
		if n.scalar.Kind() == String {
			sb.WriteString(strconv.Quote(n.scalar.String()))

			return
		}

		raw, _ := n.scalar.MarshalJSON() //nolint:errcheck // Scalars always encode
		sb.Write(raw)
	}
}

// decodeNode reads the next complete value from dec.
func decodeNode(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case nil:
		return &node{scalar: NullValue()}, nil
	case bool:
		return &node{scalar: BoolValue(t)}, nil
	case string:
		return &node{scalar: StringValue(strings.Clone(t))}, nil
	case json.Number:
		// Token results may alias the decoder buffer.
		v, err := NumberValue(strings.Clone(t.String()))
		if err != nil {
			return nil, fmt.Errorf("decoding number %q: %w", t.String(), err)
		}

		return &node{scalar: v}, nil
	case float64:
		v, err := NumberValue(strconv.FormatFloat(t, 'f', -1, 64))
		if err != nil {
			return nil, err
		}

		return &node{scalar: v}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v (%T)", tok, tok)
	}
}

// decodeObject reads object members up to the closing brace. A repeated key
// keeps its first position and its last value.
func decodeObject(dec *json.Decoder) (*node, error) {
	n := &node{kind: nodeObject}
	index := make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v (%T)", tok, tok)
		}

		key = strings.Clone(key)

		value, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}

		if i, seen := index[key]; seen {
			n.fields[i].value = value

			continue
		}

		index[key] = len(n.fields)
		n.fields = append(n.fields, field{key: key, value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return n, nil
}

// decodeArray reads array elements up to the closing bracket.
func decodeArray(dec *json.Decoder) (*node, error) {
	n := &node{kind: nodeArray, items: []*node{}}

	for dec.More() {
		item, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}

		n.items = append(n.items, item)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return n, nil
}
