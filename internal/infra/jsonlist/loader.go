package jsonlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/aalvaropc/sumlist/internal/domain"
	"github.com/aalvaropc/sumlist/internal/ports"
)

const defaultExpr = "$"

// Loader reads a JSON document and selects one list from it with a JSONPath
// expression. Numbers keep their source text so ints and floats stay apart.
type Loader struct {
	expr string
}

type Option func(*Loader)

// WithPath sets the JSONPath expression; empty keeps "$".
func WithPath(expr string) Option {
	return func(l *Loader) {
		if strings.TrimSpace(expr) != "" {
			l.expr = strings.TrimSpace(expr)
		}
	}
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{expr: defaultExpr}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.ListSource = (*Loader)(nil)

func (l *Loader) LoadLists(path string) ([]domain.NamedList, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "jsonlist.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	doc, err := parseJSON(b)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "jsonlist.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	val, err := jsonpath.Get(l.expr, doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "jsonlist.select",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("jsonpath %s: %v: %w", l.expr, err, domain.ErrInvalidInput),
		}
	}

	var items []any
	switch t := val.(type) {
	case []any:
		items = t
	case nil:
		return nil, &domain.OpError{
			Op:   "jsonlist.select",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("jsonpath %s: no value found: %w", l.expr, domain.ErrInvalidInput),
		}
	default:
		items = []any{t}
	}

	values := make([]domain.Value, 0, len(items))
	for i, it := range items {
		v, err := toValue(it)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "jsonlist.map",
				Kind: domain.KindInvalidInput,
				Path: path,
				Err:  fmt.Errorf("element %d: %w", i, err),
			}
		}
		values = append(values, v)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if l.expr != defaultExpr {
		name += " " + l.expr
	}

	return []domain.NamedList{{
		Name:   name,
		Source: path,
		Values: values,
	}}, nil
}

func parseJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the JSON document: %w", domain.ErrInvalidConfig)
	}
	return doc, nil
}

func toValue(v any) (domain.Value, error) {
	switch t := v.(type) {
	case json.Number:
		s := t.String()
		if strings.ContainsAny(s, ".eE") {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return domain.Value{}, fmt.Errorf("float %s: %w", s, domain.ErrInvalidInput)
			}
			return domain.FloatValue(f), nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return domain.Value{}, fmt.Errorf("integer %s out of range: %w", s, domain.ErrInvalidInput)
		}
		return domain.IntValue(n), nil
	case string:
		return domain.InvalidValue("str", t), nil
	case bool:
		return domain.InvalidValue("bool", strconv.FormatBool(t)), nil
	case nil:
		return domain.InvalidValue("null", "null"), nil
	case []any:
		return domain.InvalidValue("list", ""), nil
	case map[string]any:
		return domain.InvalidValue("map", ""), nil
	default:
		return domain.InvalidValue(fmt.Sprintf("%T", t), fmt.Sprint(t)), nil
	}
}
