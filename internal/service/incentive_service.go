package service

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"

	"github.com/google/uuid"
)

// Tier maps an inclusive salary floor to incentive points.
type Tier struct {
	MinSalary int64  `json:"minSalary"`
	Points    int    `json:"points"`
	Label     string `json:"label"`
}

// IncentiveTiers is ordered from the highest floor down.
var IncentiveTiers = []Tier{
	{MinSalary: 25000, Points: 3, Label: "₹25,000 and above"},
	{MinSalary: 20000, Points: 2, Label: "₹20,000 - ₹24,999"},
	{MinSalary: 15000, Points: 1, Label: "₹15,000 - ₹19,999"},
}

// HrSummary is the public face of an HR on the leaderboard; contact details stay private.
type HrSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type IncentiveEntry struct {
	Hr              HrSummary `json:"hr"`
	Count15         int       `json:"count15"`
	Count20         int       `json:"count20"`
	Count25         int       `json:"count25"`
	TotalCandidates int       `json:"totalCandidates"`
	TotalPoints     int       `json:"totalPoints"`
	Rank            int       `json:"rank"`
}

type Leaderboard struct {
	Entries []IncentiveEntry `json:"leaderboard"`
	Tiers   []Tier           `json:"tiers"`
}

type IncentiveService interface {
	ComputeLeaderboard(ctx context.Context, vendorID uuid.UUID) (*Leaderboard, error)
}

type incentiveService struct {
	hrs        repository.HrRepository
	candidates repository.CandidateRepository
}

func NewIncentiveService(hrs repository.HrRepository, candidates repository.CandidateRepository) IncentiveService {
	return &incentiveService{hrs: hrs, candidates: candidates}
}

var leadingNumber = regexp.MustCompile(`^\d+(\.\d+)?`)

// ParseSalary reads free-text salary such as "20,000", "20k" or "1.5L".
// ok is false when no leading number exists.
func ParseSalary(raw string) (salary int64, ok bool) {
	cleaned := strings.ToLower(strings.Join(strings.Fields(strings.ReplaceAll(raw, ",", "")), ""))
	num := leadingNumber.FindString(cleaned)
	if num == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}

	switch {
	case strings.HasSuffix(cleaned, "lac"), strings.HasSuffix(cleaned, "l"):
		v *= 1000000
	case strings.HasSuffix(cleaned, "k"):
		v *= 1000
	}
	// float64(MaxInt64) rounds up to 2^63, so anything at or above it would wrap negative
	if v >= math.MaxInt64 {
		return math.MaxInt64, true
	}
	return int64(math.Round(v)), true
}

// PointsFor returns the points of the highest tier the salary reaches.
func PointsFor(salary int64) int {
	for _, t := range IncentiveTiers {
		if salary >= t.MinSalary {
			return t.Points
		}
	}
	return 0
}

func (s *incentiveService) ComputeLeaderboard(ctx context.Context, vendorID uuid.UUID) (*Leaderboard, error) {
	hrs, err := s.hrs.FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(hrs))
	for i, hr := range hrs {
		ids[i] = hr.ID
	}
	candidates, err := s.candidates.FindByHrIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byHr := make(map[uuid.UUID][]string, len(hrs))
	for _, c := range candidates {
		if c.AddedByHrID != nil {
			byHr[*c.AddedByHrID] = append(byHr[*c.AddedByHrID], c.Salary)
		}
	}

	entries := make([]IncentiveEntry, len(hrs))
	for i, hr := range hrs {
		entries[i] = scoreHr(hr, byHr[hr.ID])
	}
	rank(entries)

	return &Leaderboard{Entries: entries, Tiers: IncentiveTiers}, nil
}

func scoreHr(hr model.Hr, salaries []string) IncentiveEntry {
	e := IncentiveEntry{Hr: HrSummary{ID: hr.ID, Name: hr.Name}, TotalCandidates: len(salaries)}
	for _, raw := range salaries {
		salary, ok := ParseSalary(raw)
		if !ok {
			continue
		}
		points := PointsFor(salary)
		switch {
		case points >= 3:
			e.Count25++
		case points >= 2:
			e.Count20++
		case points >= 1:
			e.Count15++
		}
		e.TotalPoints += points
	}
	return e
}

// rank orders entries by points, keeping input order among equals, and numbers them from 1.
func rank(entries []IncentiveEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
