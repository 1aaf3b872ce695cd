package playoffs

import (
	"fmt"
	"time"

	"github.com/gridironlabs/playoff-system/models"
)

// Validator check group names, used in Finding.Check.
const (
	CheckSeedingShape     = "seeding_shape"
	CheckBracketShape     = "bracket_shape"
	CheckCountConsistency = "count_consistency"
	CheckRoundProgression = "round_progression"
	CheckTeamIntegrity    = "team_integrity"
	CheckCalendarSync     = "calendar_sync"
)

// maxTotalGames is the whole tournament: 6+4+2+1.
const maxTotalGames = 13

// windowSlack pads the valid tournament window around the scheduled
// bracket dates.
const windowSlack = 14 * 24 * time.Hour

// Validate runs every consistency check against a state and returns the
// collected findings. It never mutates the state and never aborts on a bad
// dimension; an unvalidatable dimension is itself a finding. The calendar
// check is skipped with an info finding, since no current date is supplied.
func Validate(state *TournamentState) []models.Finding {
	return ValidateAt(state, time.Time{})
}

// ValidateAt is Validate with the orchestrator's current date, enabling the
// calendar-sync check group.
func ValidateAt(state *TournamentState, today time.Time) []models.Finding {
	findings := []models.Finding{}
	if state == nil {
		return append(findings, finding(models.SeverityCritical, CheckRoundProgression, "no tournament state to validate"))
	}

	state.mu.Lock()
	seeding := state.seeding
	completed := make(map[models.Round][]models.CompletedGame, len(state.completed))
	for round, games := range state.completed {
		copied := make([]models.CompletedGame, len(games))
		copy(copied, games)
		completed[round] = copied
	}
	brackets := make(map[models.Round]*models.Bracket, len(state.brackets))
	for round, bracket := range state.brackets {
		brackets[round] = bracket
	}
	gamesPlayed := state.gamesPlayed
	daysSimulated := state.daysSimulated
	active := state.activeRoundLocked()
	state.mu.Unlock()

	findings = append(findings, checkSeedingShape(seeding)...)
	findings = append(findings, checkBracketShape(brackets, seeding)...)
	findings = append(findings, checkCountConsistency(completed, gamesPlayed, active)...)
	findings = append(findings, checkRoundProgression(completed, active, gamesPlayed, daysSimulated)...)
	findings = append(findings, checkTeamIntegrity(completed, seeding)...)
	findings = append(findings, checkCalendarSync(brackets, today)...)
	return findings
}

func finding(severity models.Severity, check, format string, args ...interface{}) models.Finding {
	return models.Finding{Severity: severity, Check: check, Message: fmt.Sprintf(format, args...)}
}

func checkSeedingShape(seeding *models.Seeding) []models.Finding {
	if seeding == nil {
		return []models.Finding{finding(models.SeverityCritical, CheckSeedingShape, "state has no seeding attached")}
	}

	var findings []models.Finding
	seen := make(map[string]models.Conference)
	for _, conference := range models.Conferences {
		confSeeding := seeding.ConferenceSeeding(conference)
		if got := len(confSeeding.Seeds); got != 7 {
			findings = append(findings, finding(models.SeverityCritical, CheckSeedingShape, "%s has %d seeds, want 7", conference, got))
		}
		numbers := make(map[int]bool)
		for _, seed := range confSeeding.Seeds {
			if seed.TeamID == "" {
				findings = append(findings, finding(models.SeverityError, CheckSeedingShape, "%s seed %d has an empty team id", conference, seed.Number))
			}
			if seed.Number < 1 || seed.Number > 7 {
				findings = append(findings, finding(models.SeverityError, CheckSeedingShape, "%s carries invalid seed number %d", conference, seed.Number))
			} else if numbers[seed.Number] {
				findings = append(findings, finding(models.SeverityError, CheckSeedingShape, "%s seed number %d appears twice", conference, seed.Number))
			}
			numbers[seed.Number] = true
			if prev, dup := seen[seed.TeamID]; dup {
				findings = append(findings, finding(models.SeverityError, CheckSeedingShape, "team %s is seeded in both %s and %s", seed.TeamID, prev, conference))
			}
			seen[seed.TeamID] = conference
			if seed.Number <= 4 && !seed.DivisionWinner {
				findings = append(findings, finding(models.SeverityError, CheckSeedingShape, "%s seed %d (%s) is not flagged as a division winner", conference, seed.Number, seed.TeamID))
			}
			if seed.Number >= 5 && seed.DivisionWinner {
				findings = append(findings, finding(models.SeverityWarning, CheckSeedingShape, "%s seed %d (%s) is a wildcard slot flagged as a division winner", conference, seed.Number, seed.TeamID))
			}
		}
	}
	return findings
}

func checkBracketShape(brackets map[models.Round]*models.Bracket, seeding *models.Seeding) []models.Finding {
	var findings []models.Finding
	for _, round := range models.RoundOrder {
		bracket, ok := brackets[round]
		if !ok {
			continue // not generated yet, nothing to check
		}
		if got := len(bracket.Matchups); got != round.GameCount() {
			findings = append(findings, finding(models.SeverityError, CheckBracketShape, "%s bracket has %d matchups, want %d", round, got, round.GameCount()))
		}

		perConference := make(map[models.Conference]int)
		pairs := make(map[string]bool)
		for _, matchup := range bracket.Matchups {
			perConference[matchup.Conference]++
			if matchup.HomeTeamID == matchup.AwayTeamID {
				findings = append(findings, finding(models.SeverityError, CheckBracketShape, "%s matchup %d pits %s against itself", round, matchup.Ordinal, matchup.HomeTeamID))
			}
			key := pairKey(matchup.HomeTeamID, matchup.AwayTeamID)
			if pairs[key] {
				findings = append(findings, finding(models.SeverityError, CheckBracketShape, "%s bracket pairs %s and %s twice", round, matchup.AwayTeamID, matchup.HomeTeamID))
			}
			pairs[key] = true
			if seeding != nil {
				for _, teamID := range []string{matchup.HomeTeamID, matchup.AwayTeamID} {
					if _, ok := seeding.SeedByTeam(teamID); !ok {
						findings = append(findings, finding(models.SeverityError, CheckBracketShape, "%s matchup %d includes unseeded team %s", round, matchup.Ordinal, teamID))
					}
				}
			}
		}
		if round != models.RoundChampionship {
			half := round.GameCount() / 2
			for _, conference := range models.Conferences {
				if perConference[conference] != half {
					findings = append(findings, finding(models.SeverityError, CheckBracketShape, "%s bracket has %d %s matchups, want %d", round, perConference[conference], conference, half))
				}
			}
		}
	}
	return findings
}

func checkCountConsistency(completed map[models.Round][]models.CompletedGame, gamesPlayed int, active models.Round) []models.Finding {
	var findings []models.Finding
	total := 0
	for round, games := range completed {
		total += len(games)
		if !round.IsValid() {
			findings = append(findings, finding(models.SeverityError, CheckCountConsistency, "completed games recorded under unknown round %q", round))
			continue
		}
		if len(games) > round.GameCount() {
			findings = append(findings, finding(models.SeverityError, CheckCountConsistency, "%s holds %d completed games, cap is %d", round, len(games), round.GameCount()))
		}
		if round.Index() > active.Index() && len(games) > 0 {
			findings = append(findings, finding(models.SeverityError, CheckCountConsistency, "%s holds %d completed games but the active round is %s", round, len(games), active))
		}
	}
	if total != gamesPlayed {
		findings = append(findings, finding(models.SeverityCritical, CheckCountConsistency, "games-played counter is %d but %d completed games are stored", gamesPlayed, total))
	}
	return findings
}

func checkRoundProgression(completed map[models.Round][]models.CompletedGame, active models.Round, gamesPlayed, daysSimulated int) []models.Finding {
	var findings []models.Finding
	if !active.IsValid() {
		findings = append(findings, finding(models.SeverityCritical, CheckRoundProgression, "active round %q is not a playoff round", active))
		return findings
	}
	for _, round := range models.RoundOrder {
		if round.Index() >= active.Index() {
			break
		}
		if len(completed[round]) < round.GameCount() {
			findings = append(findings, finding(models.SeverityError, CheckRoundProgression, "%s precedes the active round %s but holds only %d of %d games", round, active, len(completed[round]), round.GameCount()))
		}
	}
	if gamesPlayed < 0 || gamesPlayed > maxTotalGames {
		findings = append(findings, finding(models.SeverityError, CheckRoundProgression, "games-played counter %d is outside 0..%d", gamesPlayed, maxTotalGames))
	}
	if daysSimulated < 0 {
		findings = append(findings, finding(models.SeverityError, CheckRoundProgression, "days-simulated counter %d is negative", daysSimulated))
	}
	return findings
}

func checkTeamIntegrity(completed map[models.Round][]models.CompletedGame, seeding *models.Seeding) []models.Finding {
	var findings []models.Finding
	for _, round := range models.RoundOrder {
		for _, game := range completed[round] {
			if game.HomeTeamID == "" || game.AwayTeamID == "" {
				findings = append(findings, finding(models.SeverityError, CheckTeamIntegrity, "game %s has an empty team id", game.GameID))
			}
			if game.HomeTeamID == game.AwayTeamID {
				findings = append(findings, finding(models.SeverityError, CheckTeamIntegrity, "game %s has %s playing itself", game.GameID, game.HomeTeamID))
			}
			if game.WinnerID != game.HomeTeamID && game.WinnerID != game.AwayTeamID {
				findings = append(findings, finding(models.SeverityError, CheckTeamIntegrity, "game %s names winner %s, who did not play in it", game.GameID, game.WinnerID))
			}
			if seeding != nil {
				for _, teamID := range []string{game.HomeTeamID, game.AwayTeamID} {
					if teamID == "" {
						continue
					}
					if _, ok := seeding.SeedByTeam(teamID); !ok {
						findings = append(findings, finding(models.SeverityError, CheckTeamIntegrity, "game %s includes %s, who is not in the seeding", game.GameID, teamID))
					}
				}
			}
		}
	}
	return findings
}

func checkCalendarSync(brackets map[models.Round]*models.Bracket, today time.Time) []models.Finding {
	if today.IsZero() {
		return []models.Finding{finding(models.SeverityInfo, CheckCalendarSync, "no current date supplied, calendar sync not checked")}
	}
	var earliest, latest time.Time
	for _, bracket := range brackets {
		if earliest.IsZero() || bracket.StartDate.Before(earliest) {
			earliest = bracket.StartDate
		}
		if bracket.StartDate.After(latest) {
			latest = bracket.StartDate
		}
	}
	if earliest.IsZero() {
		return []models.Finding{finding(models.SeverityInfo, CheckCalendarSync, "no brackets scheduled yet, calendar sync not checked")}
	}
	if today.Before(earliest.Add(-windowSlack)) || today.After(latest.Add(windowSlack)) {
		return []models.Finding{finding(models.SeverityWarning, CheckCalendarSync, "current date %s is outside the tournament window %s..%s", today.Format("2006-01-02"), earliest.Format("2006-01-02"), latest.Add(windowSlack).Format("2006-01-02"))}
	}
	return nil
}

func pairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}
