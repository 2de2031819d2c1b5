package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	{
		err: ErrRepositoryNotFound,
		info: ErrorInfo{
			Message: "The specified repository is not registered.",
			Action:  "Run 'imi init' from the repository root, or 'imi list -p' to see registered repositories.",
		},
	},
	{
		err: ErrWorktreeNotFound,
		info: ErrorInfo{
			Message: "The specified worktree does not exist.",
			Action:  "Run 'imi list' to see available worktrees.",
		},
	},
	{
		err: ErrTrunkNotFound,
		info: ErrorInfo{
			Message: "Trunk worktree not found.",
			Action:  "Run 'imi init' from the repository root first.",
		},
	},
	{
		err: ErrBranchNotFound,
		info: ErrorInfo{
			Message: "The specified branch does not exist.",
			Action:  "Check the branch name with 'git branch -a' or create it first.",
		},
	},
	{
		err: ErrRemoteNotFound,
		info: ErrorInfo{
			Message: "The requested remote is not configured.",
			Action:  "Check 'git remote -v' in the repository's trunk worktree.",
		},
	},
	{
		err: ErrNotGitRepo,
		info: ErrorInfo{
			Message: "The specified path is not a git repository.",
			Action:  "Ensure the path is correct and contains a .git directory.",
		},
	},
	{
		err: ErrAlreadyExists,
		info: ErrorInfo{
			Message: "A worktree already exists at this path.",
			Action:  "Remove the existing worktree first, or choose a different name.",
		},
	},
	{
		err: ErrInvalidInput,
		info: ErrorInfo{
			Message: "The supplied name or argument is invalid.",
			Action:  "Names must not contain path separators; check the command's usage.",
		},
	},
	{
		err: ErrEmptyValue,
		info: ErrorInfo{
			Message: "A required value was not provided.",
			Action:  "Provide the required value and try again.",
		},
	},
	{
		err: ErrConflictingFlags,
		info: ErrorInfo{
			Message: "The specified flags cannot be used together.",
			Action:  "Check the command help for valid flag combinations.",
		},
	},
	{
		err: ErrReferentialIntegrity,
		info: ErrorInfo{
			Message: "This operation would violate a uniqueness or reference constraint.",
			Action:  "Check for a repository with the same name or remote URL already registered.",
		},
	},
	{
		err: ErrIOFailure,
		info: ErrorInfo{
			Message: "A filesystem operation failed.",
			Action:  "Check permissions and available disk space.",
		},
	},
	{
		err: ErrSymlinkCreationFailed,
		info: ErrorInfo{
			Message: "Could not create a symlink into the worktree.",
			Action:  "Check that the source file exists and the target path is writable.",
		},
	},
	{
		err: ErrGitCommandFailed,
		info: ErrorInfo{
			Message: "A git command failed.",
			Action:  "Check your repository state and the error output above.",
		},
	},
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "The configuration file is invalid.",
			Action:  "Check config.toml for syntax errors or unknown fields.",
		},
	},
	{
		err: ErrConfigNotFound,
		info: ErrorInfo{
			Message: "Configuration file not found.",
			Action:  "Run 'imi init' to create one, or check IMI_ROOT / XDG_CONFIG_HOME.",
		},
	},
	{
		err: ErrWatcherFailed,
		info: ErrorInfo{
			Message: "The filesystem watcher failed to start or was interrupted.",
			Action:  "Check that the worktree paths exist and are readable.",
		},
	},
	{
		err: ErrOperationCanceled,
		info: ErrorInfo{
			Message: "Operation was canceled.",
			Action:  "",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
// Built once from errorInfoEntries during package initialization.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

// buildErrorInfoMap creates a map from the errorInfoEntries slice.
// This is called once during package init for O(1) direct lookups.
func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries O(1) direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
//
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that are not recoverable or have no clear action, the action
// string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
