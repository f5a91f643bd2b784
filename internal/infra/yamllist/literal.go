package yamllist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aalvaropc/sumlist/internal/domain"
	"gopkg.in/yaml.v3"
)

// ParseLiteral parses a list literal such as "[1, 2, '3', 4.5]".
// The literal is read as a YAML flow sequence; element types come from the
// resolved YAML tags.
func ParseLiteral(s string) ([]domain.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, &domain.OpError{
			Op:   "yamllist.parse_literal",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("%w: %v", domain.ErrInvalidInput, err),
		}
	}

	root := content(&doc)
	if root == nil || root.Kind != yaml.SequenceNode {
		return nil, &domain.OpError{
			Op:   "yamllist.parse_literal",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("expected a list literal such as [1, 2, 3], got %q: %w", strings.TrimSpace(s), domain.ErrInvalidInput),
		}
	}

	values, err := mapSequence(root)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamllist.parse_literal",
			Kind: domain.KindInvalidInput,
			Err:  err,
		}
	}
	return values, nil
}

// MustParseLiteral is ParseLiteral for literals known at compile time.
func MustParseLiteral(s string) []domain.Value {
	v, err := ParseLiteral(s)
	if err != nil {
		panic(err)
	}
	return v
}

func content(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	if doc.Kind == 0 {
		return nil
	}
	return doc
}

func mapSequence(seq *yaml.Node) ([]domain.Value, error) {
	out := make([]domain.Value, 0, len(seq.Content))
	for i, n := range seq.Content {
		v, err := mapNode(n)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func mapNode(n *yaml.Node) (domain.Value, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	switch n.Kind {
	case yaml.SequenceNode:
		return domain.InvalidValue("list", ""), nil
	case yaml.MappingNode:
		return domain.InvalidValue("map", ""), nil
	case yaml.ScalarNode:
	default:
		return domain.Value{}, errors.New("unsupported YAML node")
	}

	switch n.ShortTag() {
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return domain.Value{}, fmt.Errorf("line %d: integer %s out of range: %w", n.Line, n.Value, domain.ErrInvalidInput)
		}
		return domain.IntValue(i), nil
	case "!!float":
		// yaml.v3 tags plain integers beyond uint64 as floats.
		if n.Style == 0 && !strings.ContainsAny(n.Value, ".eE") {
			return domain.Value{}, fmt.Errorf("line %d: integer %s out of range: %w", n.Line, n.Value, domain.ErrInvalidInput)
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return domain.Value{}, fmt.Errorf("line %d: float %s: %w", n.Line, n.Value, domain.ErrInvalidInput)
		}
		return domain.FloatValue(f), nil
	case "!!str":
		return domain.InvalidValue("str", n.Value), nil
	case "!!bool":
		return domain.InvalidValue("bool", n.Value), nil
	case "!!null":
		return domain.InvalidValue("null", n.Value), nil
	default:
		return domain.InvalidValue(strings.TrimPrefix(n.ShortTag(), "!!"), n.Value), nil
	}
}
