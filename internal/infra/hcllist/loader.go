// Package hcllist loads named lists from HCL files:
//
//	list "first" {
//	  values = [1, 2, 3, 4, 5]
//	}
package hcllist

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/aalvaropc/sumlist/internal/domain"
	"github.com/aalvaropc/sumlist/internal/ports"
)

// Loader is the HCL implementation of ports.ListSource.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.ListSource = (*Loader)(nil)

type fileRoot struct {
	Lists []*listBlock `hcl:"list,block"`
}

type listBlock struct {
	Name   string         `hcl:"name,label"`
	Values hcl.Expression `hcl:"values"`
}

func (l *Loader) LoadLists(path string) ([]domain.NamedList, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "hcllist.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, &domain.OpError{
			Op:   "hcllist.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("failed to parse HCL: %w", diags),
		}
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, &domain.OpError{
			Op:   "hcllist.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("failed to decode HCL: %w", diags),
		}
	}

	if len(root.Lists) == 0 {
		return nil, &domain.OpError{
			Op:   "hcllist.validate",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("at least one list block is required: %w", domain.ErrInvalidConfig),
		}
	}

	out := make([]domain.NamedList, 0, len(root.Lists))
	for _, blk := range root.Lists {
		values, err := translateValues(blk.Values, file.Bytes)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "hcllist.map",
				Kind: domain.KindInvalidInput,
				Path: path,
				Err:  fmt.Errorf("list %q: %w", blk.Name, err),
			}
		}
		out = append(out, domain.NamedList{
			Name:   blk.Name,
			Source: path,
			Values: values,
		})
	}
	return out, nil
}

// translateValues evaluates a list expression without variables. cty keeps a
// single Number type, so for number literals the source text decides int vs
// float; computed numbers are ints when integral.
func translateValues(expr hcl.Expression, src []byte) ([]domain.Value, error) {
	if tup, ok := expr.(*hclsyntax.TupleConsExpr); ok {
		out := make([]domain.Value, 0, len(tup.Exprs))
		for i, e := range tup.Exprs {
			val, diags := e.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("element %d: %w", i, diags)
			}
			v, err := translateValue(val, literalText(e, src))
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	ty := val.Type()
	if val.IsNull() || !(ty.IsTupleType() || ty.IsListType()) {
		return nil, fmt.Errorf("values must be a list, got %s: %w", ty.FriendlyName(), domain.ErrInvalidInput)
	}

	out := make([]domain.Value, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		v, err := translateValue(ev, "")
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", len(out), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// literalText returns the source of a number literal, optionally negated, and
// "" for any other expression.
func literalText(e hclsyntax.Expression, src []byte) string {
	inner := e
	if u, ok := e.(*hclsyntax.UnaryOpExpr); ok && u.Op == hclsyntax.OpNegate {
		inner = u.Val
	}
	lit, ok := inner.(*hclsyntax.LiteralValueExpr)
	if !ok || lit.Val.Type() != cty.Number {
		return ""
	}
	return string(e.Range().SliceBytes(src))
}

func translateValue(val cty.Value, text string) (domain.Value, error) {
	if !val.IsKnown() {
		return domain.Value{}, fmt.Errorf("value is not known: %w", domain.ErrInvalidInput)
	}
	if val.IsNull() {
		return domain.InvalidValue("null", "null"), nil
	}

	ty := val.Type()
	switch {
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if !strings.ContainsAny(text, ".eE") && bf.IsInt() {
			n, acc := bf.Int64()
			if acc != big.Exact {
				return domain.Value{}, fmt.Errorf("integer %s out of range: %w", bf.Text('f', -1), domain.ErrInvalidInput)
			}
			return domain.IntValue(n), nil
		}
		f, _ := bf.Float64()
		return domain.FloatValue(f), nil
	case ty == cty.String:
		return domain.InvalidValue("str", val.AsString()), nil
	case ty == cty.Bool:
		if val.True() {
			return domain.InvalidValue("bool", "true"), nil
		}
		return domain.InvalidValue("bool", "false"), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		return domain.InvalidValue("list", ""), nil
	case ty.IsObjectType() || ty.IsMapType():
		return domain.InvalidValue("map", ""), nil
	default:
		return domain.InvalidValue(ty.FriendlyName(), ""), nil
	}
}
