package cli

import (
	"context"
	"os"

	"github.com/delorenj/imi/internal/coordinator"
)

// repositoryArg resolves the repository a command should operate against:
// explicit is the optional positional argument a command was given (may be
// empty), and the coordinator's resolution rules fill in the rest from the
// current working directory.
func repositoryArg(ctx context.Context, explicit string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return coordinator.ResolveRepositoryName(ctx, explicit, cwd)
}
