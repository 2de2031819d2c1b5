package constants

// Seed file names written into sync/global the first time it is created.
const (
	// CodingRulesFileName is the default coding-rules seed file.
	CodingRulesFileName = "coding-rules.md"

	// StackSpecificFileName is the default stack-specific notes seed file.
	StackSpecificFileName = "stack-specific.md"
)

// BranchPrefixes maps a category tag to the git branch prefix it creates.
// Trunk and review have no prefix: trunk already exists, and review
// branches are named after the pull request head rather than synthesized.
var BranchPrefixes = map[string]string{ //nolint:gochecknoglobals // static lookup table
	CategoryFeat:   "feat/",
	CategoryFix:    "fix/",
	CategoryAiops:  "aiops/",
	CategoryDevops: "devops/",
}

// BranchPrefix returns the git branch prefix for category, or "" if the
// category does not synthesize a branch name (trunk, review).
func BranchPrefix(category string) string {
	return BranchPrefixes[category]
}
