// ABOUTME: Coding-profile statistics returned by the LeetCode and Codeforces sources
// ABOUTME: Each source is optional in a snapshot so one can fail without hiding the other

package domain

import (
	"strconv"
	"time"
)

// LeetCodeStats mirrors the public leetcode-stats-api payload
type LeetCodeStats struct {
	Status          string  `json:"status"`
	TotalSolved     int     `json:"totalSolved"`
	TotalQuestions  int     `json:"totalQuestions"`
	EasySolved      int     `json:"easySolved"`
	MediumSolved    int     `json:"mediumSolved"`
	HardSolved      int     `json:"hardSolved"`
	AcceptanceRate  float64 `json:"acceptanceRate"`
	Ranking         int     `json:"ranking"`
	ContributionPts int     `json:"contributionPoints"`
	Reputation      int     `json:"reputation"`
}

// CodeforcesStats is the subset of user.info the achievements card shows
type CodeforcesStats struct {
	Handle    string `json:"handle"`
	Rating    int    `json:"rating"`
	MaxRating int    `json:"maxRating"`
	Rank      string `json:"rank"`
	MaxRank   string `json:"maxRank"`
}

// StatsSnapshot is the aggregated view of both sources
type StatsSnapshot struct {
	LeetCode        *LeetCodeStats   `json:"leetcode,omitempty"`
	Codeforces      *CodeforcesStats `json:"codeforces,omitempty"`
	LeetCodeError   string           `json:"leetcodeError,omitempty"`
	CodeforcesError string           `json:"codeforcesError,omitempty"`
	Loading         bool             `json:"loading"`
	FetchedAt       time.Time        `json:"fetchedAt"`
}

// fallbackTotalSolved is shown when the LeetCode source is unavailable
const fallbackTotalSolved = 500

// TotalSolvedLabel returns the milestone figure shown on the summary card
func (s StatsSnapshot) TotalSolvedLabel() string {
	total := fallbackTotalSolved
	if s.LeetCode != nil && s.LeetCode.TotalSolved > 0 {
		total = s.LeetCode.TotalSolved
	}
	return strconv.Itoa(total) + "+"
}
