package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func items(statuses ...ItemStatus) []ClearanceItem {
	out := make([]ClearanceItem, 0, len(statuses))
	for i, s := range statuses {
		out = append(out, ClearanceItem{ItemID: int64(i + 1), Status: s})
	}
	return out
}

func TestRecomputeOverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		items    []ClearanceItem
		expected ClearanceStatus
	}{
		{
			name:     "no items stays pending",
			items:    nil,
			expected: ClearanceStatusPending,
		},
		{
			name:     "all pending",
			items:    items(ItemStatusPending, ItemStatusPending),
			expected: ClearanceStatusPending,
		},
		{
			name:     "partially approved",
			items:    items(ItemStatusApproved, ItemStatusPending, ItemStatusApproved),
			expected: ClearanceStatusPending,
		},
		{
			name:     "all approved",
			items:    items(ItemStatusApproved, ItemStatusApproved, ItemStatusApproved),
			expected: ClearanceStatusApproved,
		},
		{
			name:     "single approved item",
			items:    items(ItemStatusApproved),
			expected: ClearanceStatusApproved,
		},
		{
			name:     "needs compliance overrides pending",
			items:    items(ItemStatusPending, ItemStatusNeedsCompliance),
			expected: ClearanceStatusIncomplete,
		},
		{
			name:     "needs compliance overrides approved",
			items:    items(ItemStatusApproved, ItemStatusApproved, ItemStatusNeedsCompliance),
			expected: ClearanceStatusIncomplete,
		},
		{
			name:     "multiple needs compliance",
			items:    items(ItemStatusNeedsCompliance, ItemStatusNeedsCompliance),
			expected: ClearanceStatusIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RecomputeOverallStatus(tt.items))
		})
	}
}

func TestRecomputeOverallStatusReopening(t *testing.T) {
	// A fully approved clearance whose signatory later flags an obligation
	// drops back to incomplete; resolving it restores approved.
	set := items(ItemStatusApproved, ItemStatusApproved, ItemStatusApproved)
	assert.Equal(t, ClearanceStatusApproved, RecomputeOverallStatus(set))

	set[1].Status = ItemStatusNeedsCompliance
	assert.Equal(t, ClearanceStatusIncomplete, RecomputeOverallStatus(set))

	set[1].Status = ItemStatusApproved
	assert.Equal(t, ClearanceStatusApproved, RecomputeOverallStatus(set))
}
