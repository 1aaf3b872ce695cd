package models

import "time"

// Round tags one of the four playoff rounds. The string values are embedded
// in persisted game identifiers and must never change.
type Round string

const (
	RoundWildCard     Round = "wildcard"
	RoundDivisional   Round = "divisional"
	RoundConference   Round = "conference"
	RoundChampionship Round = "championship"
)

// RoundOrder lists the rounds in play order.
var RoundOrder = []Round{RoundWildCard, RoundDivisional, RoundConference, RoundChampionship}

// roundCaps fixes the number of games per round.
var roundCaps = map[Round]int{
	RoundWildCard:     6,
	RoundDivisional:   4,
	RoundConference:   2,
	RoundChampionship: 1,
}

// IsValid reports whether r is one of the four playoff rounds.
func (r Round) IsValid() bool {
	_, ok := roundCaps[r]
	return ok
}

// GameCount is the fixed number of games in the round, zero for an
// unknown round.
func (r Round) GameCount() int {
	return roundCaps[r]
}

// Next returns the following round. ok is false for the championship and
// for unknown rounds.
func (r Round) Next() (Round, bool) {
	for i, round := range RoundOrder {
		if round == r && i+1 < len(RoundOrder) {
			return RoundOrder[i+1], true
		}
	}
	return "", false
}

// Index is the round's position in play order, -1 for unknown rounds.
func (r Round) Index() int {
	for i, round := range RoundOrder {
		if round == r {
			return i
		}
	}
	return -1
}

// Matchup is one scheduled playoff pairing. The higher seed (lower number)
// always hosts, except the championship which uses a fixed convention.
type Matchup struct {
	AwayTeamID string     `json:"away_team_id"`
	HomeTeamID string     `json:"home_team_id"`
	AwaySeed   int        `json:"away_seed"`
	HomeSeed   int        `json:"home_seed"`
	Date       time.Time  `json:"date"`
	Round      Round      `json:"round"`
	Conference Conference `json:"conference,omitempty"` // empty for the championship
	Ordinal    int        `json:"ordinal"`              // 1-based within the round
	Week       int        `json:"week"`
	Season     int        `json:"season"`
}

// Bracket is one round's generated matchups.
type Bracket struct {
	Round     Round     `json:"round"`
	Matchups  []Matchup `json:"matchups"`
	StartDate time.Time `json:"start_date"`
}
