package ports

import "github.com/aalvaropc/sumlist/internal/domain"

// ListSource loads named lists from a source (e.g., a YAML, JSON or HCL file).
type ListSource interface {
	LoadLists(path string) ([]domain.NamedList, error)
}
