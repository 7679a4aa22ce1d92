package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/via/votehub/internal/api/metrics"
	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/internal/core/ports"
)

// VoteService records judge ratings. One vote per judge per submission:
// casting again replaces the earlier rating and remarks.
type VoteService struct {
	votes       ports.VoteRepository
	submissions ports.SubmissionRepository
	refresh     ResultsRefresher
	logger      zerolog.Logger
}

func NewVoteService(votes ports.VoteRepository, submissions ports.SubmissionRepository, refresh ResultsRefresher, logger zerolog.Logger) *VoteService {
	return &VoteService{votes: votes, submissions: submissions, refresh: refresh, logger: logger}
}

func (s *VoteService) Cast(ctx context.Context, in ports.CastVoteInput) (*domain.Vote, error) {
	if !domain.ValidRating(in.Rating) {
		return nil, domain.ErrInvalidRating
	}
	if in.SubmissionID == "" || in.JudgeID == "" {
		return nil, domain.ErrInvalidInput
	}

	// The submission must still exist; votes on deleted entries cascade away.
	if _, err := s.submissions.FindByID(ctx, in.SubmissionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vote := &domain.Vote{
		SubmissionID: in.SubmissionID,
		JudgeID:      in.JudgeID,
		JudgeName:    in.JudgeName,
		Rating:       in.Rating,
		Remarks:      in.Remarks,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.votes.Upsert(ctx, vote)
	if err != nil {
		s.logger.Error().Err(err).Str("submission_id", in.SubmissionID).Str("judge_id", in.JudgeID).Msg("failed to record vote")
		return nil, err
	}

	kind := "updated"
	if created {
		kind = "created"
	}
	metrics.VotesCastTotal.WithLabelValues(kind).Inc()
	s.logger.Info().
		Str("submission_id", in.SubmissionID).
		Str("judge_id", in.JudgeID).
		Int("rating", in.Rating).
		Str("kind", kind).
		Msg("vote recorded")

	if s.refresh != nil {
		s.refresh.RefreshResults(in.SubmissionID)
	}
	return vote, nil
}

func (s *VoteService) ListByJudge(ctx context.Context, judgeID string) ([]domain.Vote, error) {
	if judgeID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.votes.FindByJudge(ctx, judgeID)
}

func (s *VoteService) ListAll(ctx context.Context) ([]domain.Vote, error) {
	return s.votes.List(ctx)
}
