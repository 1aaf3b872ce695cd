package models

import "time"

// Seed is one team's playoff rank within its conference. Immutable once
// the seeding is computed.
type Seed struct {
	Conference     Conference `json:"conference"`
	Number         int        `json:"number"` // 1..7
	TeamID         string     `json:"team_id"`
	DivisionWinner bool       `json:"division_winner"` // always true for seeds 1-4
	Record         TeamRecord `json:"record"`
	TiebreakNote   string     `json:"tiebreak_note,omitempty"`
}

// TiebreakEntry records one tiebreaker decision for the audit trail.
type TiebreakEntry struct {
	Conference Conference `json:"conference"`
	TeamA      string     `json:"team_a"`
	TeamB      string     `json:"team_b"`
	DecidedBy  string     `json:"decided_by"` // cascade key name or "fallback_order"
}

// ConferenceSeeding holds one conference's seven ordered seeds plus the
// derived team lists used for display.
type ConferenceSeeding struct {
	Conference      Conference `json:"conference"`
	Seeds           []Seed     `json:"seeds"` // ordered, seeds[0].Number == 1
	DivisionWinners []string   `json:"division_winners"`
	Wildcards       []string   `json:"wildcards"`
	Clinched        []string   `json:"clinched"`
	Eliminated      []string   `json:"eliminated"`
}

// SeedByTeam returns the seed for a team id, if the team clinched.
func (c ConferenceSeeding) SeedByTeam(teamID string) (Seed, bool) {
	for _, s := range c.Seeds {
		if s.TeamID == teamID {
			return s, true
		}
	}
	return Seed{}, false
}

// SeedByNumber returns the seed with the given number (1-7).
func (c ConferenceSeeding) SeedByNumber(number int) (Seed, bool) {
	for _, s := range c.Seeds {
		if s.Number == number {
			return s, true
		}
	}
	return Seed{}, false
}

// Seeding is the root seeding document: both conferences, computed once
// after the regular season and read by every later round.
type Seeding struct {
	Season     int                `json:"season"`
	Week       int                `json:"week"`
	AFC        ConferenceSeeding  `json:"afc"`
	NFC        ConferenceSeeding  `json:"nfc"`
	Tiebreaks  []TiebreakEntry    `json:"tiebreaks,omitempty"`
	ComputedAt time.Time          `json:"computed_at"`
}

// ConferenceSeeding returns the seeding for the given conference.
func (s *Seeding) ConferenceSeeding(conference Conference) ConferenceSeeding {
	if conference == ConferenceNFC {
		return s.NFC
	}
	return s.AFC
}

// SeedByTeam looks a team up across both conferences.
func (s *Seeding) SeedByTeam(teamID string) (Seed, bool) {
	if seed, ok := s.AFC.SeedByTeam(teamID); ok {
		return seed, true
	}
	return s.NFC.SeedByTeam(teamID)
}
