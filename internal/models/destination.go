package models

import "time"

type Difficulty string

const (
	DifficultyEasy        Difficulty = "Easy"
	DifficultyModerate    Difficulty = "Moderate"
	DifficultyChallenging Difficulty = "Challenging"
	DifficultyExtreme     Difficulty = "Extreme"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyChallenging, DifficultyExtreme:
		return true
	}
	return false
}

type Destination struct {
	ID           string
	Slug         string
	Title        string
	Description  string
	Location     string
	Price        float64
	Image        string
	Category     string
	Duration     string
	MaxGroupSize int
	Difficulty   Difficulty
	Highlights   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DestinationSummary is the slice of a destination joined onto booking reads.
type DestinationSummary struct {
	ID         string
	Slug       string
	Title      string
	Location   string
	Price      float64
	Image      string
	Duration   string
	Difficulty Difficulty
}
