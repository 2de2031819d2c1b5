// Package coordinator implements the category-typed worktree operations
// (feat, review, fix, aiops, devops, trunk) plus their shared management
// surface: naming and repository-resolution rules, the creation protocol
// that wires the registry, the filesystem choreographer, and the
// version-control subsystem together, removal/close, status/list, sync, and
// prune.
package coordinator

import (
	"github.com/delorenj/imi/internal/config"
	"github.com/delorenj/imi/internal/registry"
)

// Coordinator ties the registry, configuration, and version-control
// plumbing together to implement the worktree lifecycle.
type Coordinator struct {
	reg *registry.Registry
	cfg *config.Config
}

// New constructs a Coordinator over an open registry and loaded configuration.
func New(reg *registry.Registry, cfg *config.Config) *Coordinator {
	return &Coordinator{reg: reg, cfg: cfg}
}
