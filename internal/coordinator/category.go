package coordinator

import (
	"fmt"
	"regexp"

	"github.com/delorenj/imi/internal/domain"
)

// categorySpec describes how a category tag maps to worktree and branch
// naming. The six category operations share the creation protocol in
// create.go, parameterised by one of these specs, rather than each
// reimplementing it.
type categorySpec struct {
	category  domain.Category
	dirTag    string // directory/worktree-name prefix, e.g. "feat"
	branchTag string // branch-name prefix, e.g. "feat" (review uses "pr" for both)
	canCreate bool   // trunk is discovered, never created
}

var categorySpecs = map[domain.Category]categorySpec{
	domain.CategoryFeat:   {category: domain.CategoryFeat, dirTag: "feat", branchTag: "feat", canCreate: true},
	domain.CategoryReview: {category: domain.CategoryReview, dirTag: "pr", branchTag: "pr", canCreate: true},
	domain.CategoryFix:    {category: domain.CategoryFix, dirTag: "fix", branchTag: "fix", canCreate: true},
	domain.CategoryAiops:  {category: domain.CategoryAiops, dirTag: "aiops", branchTag: "aiops", canCreate: true},
	domain.CategoryDevops: {category: domain.CategoryDevops, dirTag: "devops", branchTag: "devops", canCreate: true},
	domain.CategoryTrunk:  {category: domain.CategoryTrunk, dirTag: "trunk", branchTag: "", canCreate: false},
}

// worktreeDirName returns the c-n directory/worktree name for a category and
// logical name.
func worktreeDirName(spec categorySpec, name string) string {
	return fmt.Sprintf("%s-%s", spec.dirTag, name)
}

// branchName returns the c/n branch name for a category and logical name.
func branchName(spec categorySpec, name string) string {
	return fmt.Sprintf("%s/%s", spec.branchTag, name)
}

// categoryDirPattern recognises worktree directory names produced by this
// tool, used both by repository resolution (is the cwd a worktree?) and by
// Sync's name-inference when adopting git-reported worktrees the registry
// doesn't know about.
var categoryDirPattern = regexp.MustCompile(`^(feat|pr|fix|aiops|devops|trunk)-(.+)$`)

// inferCategoryFromDirName splits a directory name of the form "<tag>-<rest>"
// into its category and logical name. ok is false when the name does not
// match any recognised tag.
func inferCategoryFromDirName(dirName string) (cat domain.Category, name string, ok bool) {
	m := categoryDirPattern.FindStringSubmatch(dirName)
	if m == nil {
		return "", "", false
	}

	tag := m[1]
	for _, spec := range categorySpecs {
		if spec.dirTag == tag {
			return spec.category, m[2], true
		}
	}
	return "", "", false
}
