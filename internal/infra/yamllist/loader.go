package yamllist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/sumlist/internal/domain"
	"github.com/aalvaropc/sumlist/internal/ports"
	"gopkg.in/yaml.v3"
)

// Loader reads list files of the form:
//
//	lists:
//	  - name: first
//	    values: [1, 2, 3]
//
// A file whose top-level node is a sequence is a single list named after the file.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.ListSource = (*Loader)(nil)

func (l *Loader) LoadLists(path string) ([]domain.NamedList, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamllist.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, &domain.OpError{
			Op:   "yamllist.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	root := content(&doc)
	if root == nil {
		return nil, invalidField(path, "lists", "file is empty")
	}

	if root.Kind == yaml.SequenceNode {
		values, err := mapSequence(root)
		if err != nil {
			return nil, invalidInput(path, err)
		}
		return []domain.NamedList{{
			Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Source: path,
			Values: values,
		}}, nil
	}

	var yf yamlFile
	if err := root.Decode(&yf); err != nil {
		return nil, &domain.OpError{
			Op:   "yamllist.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, yf)
}

type yamlFile struct {
	Lists []yamlList `yaml:"lists"`
}

type yamlList struct {
	Name   string    `yaml:"name"`
	Values yaml.Node `yaml:"values"`
}

func mapAndValidate(path string, yf yamlFile) ([]domain.NamedList, error) {
	if len(yf.Lists) == 0 {
		return nil, invalidField(path, "lists", "at least one list is required")
	}

	out := make([]domain.NamedList, 0, len(yf.Lists))
	for i, yl := range yf.Lists {
		fieldPrefix := fmt.Sprintf("lists[%d]", i)

		if yl.Values.Kind != yaml.SequenceNode {
			return nil, invalidField(path, fieldPrefix+".values", "values must be a list")
		}

		values, err := mapSequence(&yl.Values)
		if err != nil {
			return nil, invalidInput(path, fmt.Errorf("%s.values: %w", fieldPrefix, err))
		}

		name := strings.TrimSpace(yl.Name)
		if name == "" {
			name = fieldPrefix
		}

		out = append(out, domain.NamedList{
			Name:   name,
			Source: path,
			Values: values,
		})
	}
	return out, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamllist.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}

func invalidInput(path string, err error) error {
	return &domain.OpError{
		Op:   "yamllist.load",
		Kind: domain.KindInvalidInput,
		Path: path,
		Err:  err,
	}
}
