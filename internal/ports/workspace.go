package ports

import "github.com/aalvaropc/sumlist/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
