package listfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/sumlist/internal/domain"
	"github.com/aalvaropc/sumlist/internal/infra/hcllist"
	"github.com/aalvaropc/sumlist/internal/infra/jsonlist"
	"github.com/aalvaropc/sumlist/internal/infra/yamllist"
	"github.com/aalvaropc/sumlist/internal/ports"
)

// Source picks a loader from the file extension.
type Source struct {
	listsDir string
	jsonPath string
}

type Option func(*Source)

func WithListsDir(dir string) Option {
	return func(s *Source) { s.listsDir = dir }
}

// WithJSONPath selects the list inside .json files.
func WithJSONPath(expr string) Option {
	return func(s *Source) { s.jsonPath = expr }
}

func NewSource(opts ...Option) *Source {
	s := &Source{listsDir: "lists"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ ports.ListSource  = (*Source)(nil)
	_ ports.ListCatalog = (*Source)(nil)
)

func (s *Source) LoadLists(path string) ([]domain.NamedList, error) {
	src, err := s.sourceFor(path)
	if err != nil {
		return nil, err
	}
	return src.LoadLists(path)
}

func (s *Source) sourceFor(path string) (ports.ListSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamllist.NewLoader(), nil
	case ".json":
		return jsonlist.NewLoader(jsonlist.WithPath(s.jsonPath)), nil
	case ".hcl":
		return hcllist.NewLoader(), nil
	default:
		return nil, &domain.OpError{
			Op:   "listfile.load",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("unsupported list file extension %q (expected .yaml|.yml|.json|.hcl): %w", filepath.Ext(path), domain.ErrInvalidInput),
		}
	}
}

// Supported reports whether path has an extension LoadLists understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".hcl":
		return true
	}
	return false
}

func (s *Source) ListFiles(root string) ([]domain.ListRef, error) {
	dir := filepath.Join(root, s.listsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "listfile.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.ListRef
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}

		p := filepath.Join(dir, e.Name())
		ref := domain.ListRef{Path: p}
		if lists, err := s.LoadLists(p); err == nil {
			for _, l := range lists {
				ref.Names = append(ref.Names, l.Name)
			}
		}
		refs = append(refs, ref)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
	return refs, nil
}
