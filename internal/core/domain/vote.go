package domain

import (
	"errors"
	"time"
)

const (
	MinRating = 1
	MaxRating = 10
)

var ErrInvalidRating = errors.New("rating must be between 1 and 10")
var ErrVoteNotFound = errors.New("vote not found")

// Vote is a single judge's rating of a submission. The (submission, judge)
// pair is unique; casting again replaces the previous rating and remarks.
type Vote struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	SubmissionID string    `json:"submission_id" bson:"submission_id"`
	JudgeID      string    `json:"judge_id" bson:"judge_id"`
	JudgeName    string    `json:"judge_name,omitempty" bson:"judge_name,omitempty"`
	Rating       int       `json:"rating" bson:"rating"`
	Remarks      string    `json:"remarks,omitempty" bson:"remarks,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// ValidRating reports whether r is on the 1..10 judging scale.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
