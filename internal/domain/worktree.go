package domain

import "time"

// Category enumerates the worktree kinds the coordinator understands.
type Category string

// Recognized category tags. Trunk is discovered, never created.
const (
	CategoryTrunk  Category = "trunk"
	CategoryFeat   Category = "feat"
	CategoryReview Category = "review"
	CategoryFix    Category = "fix"
	CategoryAiops  Category = "aiops"
	CategoryDevops Category = "devops"
)

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Worktree is a single checked-out working tree belonging to a Repository.
// The pair (RepositoryName, Name) is unique among active worktrees; a name
// may be reused with a new ID after a prior worktree sharing it was removed.
type Worktree struct {
	ID             string    `json:"id" db:"id"`
	RepositoryName string    `json:"repository_name" db:"repository_name"`
	Name           string    `json:"name" db:"name"`
	Branch         string    `json:"branch" db:"branch"`
	Category       Category  `json:"category" db:"category"`
	Path           string    `json:"path" db:"path"`
	AgentID        string    `json:"agent_id,omitempty" db:"agent_id"`
	Active         bool      `json:"active" db:"active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// IsTrunk reports whether this worktree is the repository's primary checkout.
func (w Worktree) IsTrunk() bool {
	return w.Category == CategoryTrunk
}
