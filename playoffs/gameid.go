package playoffs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gridironlabs/playoff-system/models"
)

// ErrInvalidGameID reports an identifier that is not of the form
// playoff_{season}_{round}_{ordinal}.
var ErrInvalidGameID = errors.New("invalid playoff game identifier")

const gameIDPrefix = "playoff"

// GameID synthesizes the stable domain identifier for a playoff game.
// It is a pure function of season, round and ordinal, so re-scheduling the
// same matchup always produces the same id.
func GameID(season int, round models.Round, ordinal int) string {
	return fmt.Sprintf("%s_%d_%s_%d", gameIDPrefix, season, round, ordinal)
}

// GameIDPrefix is the common prefix of every game id in one season,
// usable for event-store prefix queries.
func GameIDPrefix(season int) string {
	return fmt.Sprintf("%s_%d_", gameIDPrefix, season)
}

// ParseGameID splits a domain identifier back into its parts. The round is
// validated against the four known round tags.
func ParseGameID(id string) (season int, round models.Round, ordinal int, err error) {
	parts := strings.Split(id, "_")
	if len(parts) != 4 || parts[0] != gameIDPrefix {
		return 0, "", 0, fmt.Errorf("%w: %q", ErrInvalidGameID, id)
	}
	season, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, "", 0, fmt.Errorf("%w: bad season in %q", ErrInvalidGameID, id)
	}
	round = models.Round(parts[2])
	if !round.IsValid() {
		return 0, "", 0, fmt.Errorf("%w: unknown round in %q", ErrInvalidGameID, id)
	}
	ordinal, err = strconv.Atoi(parts[3])
	if err != nil || ordinal < 1 || ordinal > round.GameCount() {
		return 0, "", 0, fmt.Errorf("%w: bad ordinal in %q", ErrInvalidGameID, id)
	}
	return season, round, ordinal, nil
}

// RoundOfGameID extracts just the round tag, the common case during
// event replay.
func RoundOfGameID(id string) (models.Round, error) {
	_, round, _, err := ParseGameID(id)
	return round, err
}
