package domain

import (
	"errors"
	"time"
)

var ErrSubmissionNotFound = errors.New("submission not found")
var ErrInvalidSubmission = errors.New("invalid submission")

// Submission is a hackathon project entry created by a superadmin and rated
// by judges.
type Submission struct {
	ID                 string    `json:"id" bson:"_id,omitempty"`
	TeamMemberName     string    `json:"team_member_name" bson:"team_member_name"`
	ProjectName        string    `json:"project_name,omitempty" bson:"project_name,omitempty"`
	SubmissionLink     string    `json:"submission_link" bson:"submission_link"`
	ProblemDescription string    `json:"problem_description" bson:"problem_description"`
	HoursSpent         int       `json:"hours_spent" bson:"hours_spent"`
	ServicesUsed       string    `json:"services_used,omitempty" bson:"services_used,omitempty"`
	GitRepoURL         string    `json:"git_repo_url,omitempty" bson:"git_repo_url,omitempty"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at"`
}
