package domain

// JudgeRating is one judge's contribution to a submission's result.
type JudgeRating struct {
	JudgeName string `json:"judge_name"`
	Rating    int    `json:"rating"`
	Remarks   string `json:"remarks,omitempty"`
}

// SubmissionResult aggregates all votes for one submission.
type SubmissionResult struct {
	Submission    Submission    `json:"submission"`
	TotalScore    int           `json:"total_score"`
	AverageRating float64       `json:"average_rating"`
	JudgeCount    int           `json:"judge_count"`
	StdDeviation  float64       `json:"std_deviation"`
	Votes         []JudgeRating `json:"votes"`
}

// Results is the analytics dashboard payload: every submission ranked by
// total score descending, with the podium split out.
type Results struct {
	Top3 []SubmissionResult `json:"top3"`
	All  []SubmissionResult `json:"all"`
}
