package service

import (
	"context"
	"math"
	"testing"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"
	"uhs-recruit/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalary(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"20,000", 20000, true},
		{"20k", 20000, true},
		{"20 K", 20000, true},
		{"15L", 15000000, true},
		{"1.5 lac", 1500000, true},
		{"18500.6", 18501, true},
		{"22000/month", 22000, true},
		{"", 0, false},
		{"negotiable", 0, false},
		{"₹20000", 0, false},
		{"10000000000000L", math.MaxInt64, true},
		{"99999999999999999999", math.MaxInt64, true},
	}
	for _, tc := range cases {
		got, ok := ParseSalary(tc.in)
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.in)
		assert.Equal(t, tc.want, got, "value for %q", tc.in)
	}
}

func TestPointsFor(t *testing.T) {
	assert.Equal(t, 0, PointsFor(14999))
	assert.Equal(t, 1, PointsFor(15000))
	assert.Equal(t, 2, PointsFor(20000))
	assert.Equal(t, 3, PointsFor(25000))
	assert.Equal(t, 3, PointsFor(15000000))
}

func TestScoreHr_BucketsAreExclusive(t *testing.T) {
	e := scoreHr(model.Hr{}, []string{"14999", "15000", "20000", "25000", "negotiable", "30k"})
	assert.Equal(t, 1, e.Count15)
	assert.Equal(t, 1, e.Count20)
	assert.Equal(t, 2, e.Count25)
	assert.Equal(t, 6, e.TotalCandidates)
	assert.Equal(t, 1+2+3+3, e.TotalPoints)
}

func TestScoreHr_HugeSalariesStayInTopTier(t *testing.T) {
	e := scoreHr(model.Hr{Name: "Priya"}, []string{"10000000000000L", "99999999999999999999"})
	assert.Equal(t, 2, e.Count25)
	assert.Equal(t, 6, e.TotalPoints)
	assert.Equal(t, "Priya", e.Hr.Name)
}

func TestRank(t *testing.T) {
	entries := []IncentiveEntry{
		{Hr: HrSummary{Name: "a"}, TotalPoints: 10},
		{Hr: HrSummary{Name: "b"}, TotalPoints: 30},
		{Hr: HrSummary{Name: "c"}, TotalPoints: 20},
		{Hr: HrSummary{Name: "d"}, TotalPoints: 20},
	}
	rank(entries)

	names := []string{}
	ranks := []int{}
	for _, e := range entries {
		names = append(names, e.Hr.Name)
		ranks = append(ranks, e.Rank)
	}
	assert.Equal(t, []string{"b", "c", "d", "a"}, names)
	assert.Equal(t, []int{1, 2, 3, 4}, ranks)
}

func TestComputeLeaderboard(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	vendor := createAdmin(t, db, "vendor@example.com", model.RoleVendor)
	other := createAdmin(t, db, "other@example.com", model.RoleVendor)

	low := createHr(t, db, vendor, "low@example.com")
	high := createHr(t, db, vendor, "high@example.com")
	foreign := createHr(t, db, other, "foreign@example.com")

	candidates := repository.NewCandidateRepo(db)
	add := func(hr *model.Hr, salary string) {
		c := &model.Candidate{Name: "c", Status: model.StatusRecentlyApplied, Salary: salary, AddedByHrID: &hr.ID, VendorID: &hr.VendorID}
		require.NoError(t, candidates.Create(ctx, c))
	}
	add(low, "15,000")
	add(low, "")
	add(high, "25k")
	add(high, "20000")
	add(foreign, "50000")

	board, err := NewIncentiveService(repository.NewHrRepo(db), candidates).ComputeLeaderboard(ctx, vendor.ID)
	require.NoError(t, err)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, IncentiveTiers, board.Tiers)

	top := board.Entries[0]
	assert.Equal(t, high.ID, top.Hr.ID)
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, 5, top.TotalPoints)
	assert.Equal(t, 1, top.Count25)
	assert.Equal(t, 1, top.Count20)

	second := board.Entries[1]
	assert.Equal(t, low.ID, second.Hr.ID)
	assert.Equal(t, 2, second.Rank)
	assert.Equal(t, 2, second.TotalCandidates)
	assert.Equal(t, 1, second.TotalPoints)
}
