package ports

import "github.com/aalvaropc/sumlist/internal/domain"

type ListCatalog interface {
	ListFiles(root string) ([]domain.ListRef, error)
}
