package ports

import (
	"context"

	"github.com/via/votehub/internal/core/domain"
)

// CastVoteInput is one judge's rating of one submission.
type CastVoteInput struct {
	SubmissionID string
	JudgeID      string
	JudgeName    string
	Rating       int
	Remarks      string
}

type VoteRepository interface {
	// Upsert inserts the vote, or replaces rating and remarks when the
	// (submission, judge) pair already has one. Reports whether a new row
	// was created.
	Upsert(ctx context.Context, vote *domain.Vote) (created bool, err error)
	FindBySubmission(ctx context.Context, submissionID string) ([]domain.Vote, error)
	FindByJudge(ctx context.Context, judgeID string) ([]domain.Vote, error)
	List(ctx context.Context) ([]domain.Vote, error)
}

type VoteService interface {
	Cast(ctx context.Context, in CastVoteInput) (*domain.Vote, error)
	ListByJudge(ctx context.Context, judgeID string) ([]domain.Vote, error)
	ListAll(ctx context.Context) ([]domain.Vote, error)
}
