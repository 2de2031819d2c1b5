package vcsrunner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/delorenj/imi/internal/errors"
)

// nameComponentPattern matches a valid owner or repository name component:
// non-empty, alphanumeric plus -_., no path separators, no leading "..".
var nameComponentPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// httpsGitHubURL matches an https GitHub URL of the form
// https://github.com/<owner>/<name>[.git].
var httpsGitHubURL = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)

// ResolveCloneURL normalizes a repository argument into an SSH clone URL and
// its owner/name components. It accepts three forms: a bare "<name>"
// (resolved against defaultOwner), "<owner>/<name>", or a full https GitHub
// URL. Any other form, or a component failing validation, returns
// ErrInvalidInput before any network activity.
func ResolveCloneURL(arg, defaultOwner string) (sshURL, owner, name string, err error) {
	if arg == "" {
		return "", "", "", fmt.Errorf("%w: repository argument is empty", errors.ErrInvalidInput)
	}

	if strings.HasPrefix(arg, "http://") {
		return "", "", "", fmt.Errorf("%w: http URLs are not accepted, use https", errors.ErrInvalidInput)
	}

	switch {
	case strings.HasPrefix(arg, "https://"):
		m := httpsGitHubURL.FindStringSubmatch(arg)
		if m == nil {
			return "", "", "", fmt.Errorf("%w: unrecognized GitHub URL %q", errors.ErrInvalidInput, arg)
		}
		owner, name = m[1], m[2]
	case strings.Contains(arg, "/"):
		parts := strings.SplitN(arg, "/", 2)
		owner, name = parts[0], parts[1]
	default:
		if defaultOwner == "" {
			return "", "", "", fmt.Errorf("%w: bare repository name %q requires github_settings.default_owner", errors.ErrInvalidInput, arg)
		}
		owner, name = defaultOwner, arg
	}

	if err := validateNameComponent(owner); err != nil {
		return "", "", "", err
	}
	if err := validateNameComponent(name); err != nil {
		return "", "", "", err
	}

	return fmt.Sprintf("git@github.com:%s/%s.git", owner, name), owner, name, nil
}

func validateNameComponent(component string) error {
	if component == "" || strings.Contains(component, "..") || !nameComponentPattern.MatchString(component) {
		return fmt.Errorf("%w: invalid repository path component %q", errors.ErrInvalidInput, component)
	}
	return nil
}

// Clone clones sshURL into destPath.
func Clone(ctx context.Context, sshURL, destPath string) error {
	if _, err := Run(ctx, "", "clone", sshURL, destPath); err != nil {
		return fmt.Errorf("failed to clone %s: %w", sshURL, err)
	}
	return nil
}
