package constants_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/delorenj/imi/internal/constants"
)

func TestBranchPrefix_KnownCategories(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{constants.CategoryFeat, "feat/"},
		{constants.CategoryFix, "fix/"},
		{constants.CategoryAiops, "aiops/"},
		{constants.CategoryDevops, "devops/"},
	}

	for _, tc := range tests {
		t.Run(tc.category, func(t *testing.T) {
			assert.Equal(t, tc.want, constants.BranchPrefix(tc.category))
		})
	}
}

func TestBranchPrefix_NoSynthesizedBranch(t *testing.T) {
	assert.Empty(t, constants.BranchPrefix(constants.CategoryTrunk))
	assert.Empty(t, constants.BranchPrefix(constants.CategoryReview))
	assert.Empty(t, constants.BranchPrefix("unknown"))
}

func TestMaxNameLength(t *testing.T) {
	assert.Positive(t, constants.MaxNameLength)
}
