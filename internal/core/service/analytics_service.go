package service

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/via/votehub/internal/api/metrics"
	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/internal/core/ports"
)

const podiumSize = 3

// AnalyticsService aggregates votes into the ranked results dashboard.
// Payloads are served from the results cache when present and recomputed
// wholesale otherwise; both tables are small enough to fetch in full.
type AnalyticsService struct {
	submissions ports.SubmissionRepository
	votes       ports.VoteRepository
	cache       ports.ResultsCache
	logger      zerolog.Logger
}

func NewAnalyticsService(submissions ports.SubmissionRepository, votes ports.VoteRepository, cache ports.ResultsCache, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{submissions: submissions, votes: votes, cache: cache, logger: logger}
}

func (s *AnalyticsService) Results(ctx context.Context) (*domain.Results, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			// Cache trouble is never fatal for the dashboard.
			s.logger.Warn().Err(err).Msg("results cache read failed")
		} else if cached != nil {
			metrics.ResultsCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
	}
	metrics.ResultsCacheTotal.WithLabelValues("miss").Inc()
	return s.Recompute(ctx)
}

// Recompute rebuilds the ranking from the stores and refreshes the cache.
func (s *AnalyticsService) Recompute(ctx context.Context) (*domain.Results, error) {
	subs, err := s.submissions.List(ctx)
	if err != nil {
		return nil, err
	}

	votes, err := s.votes.List(ctx)
	if err != nil {
		return nil, err
	}

	bySubmission := make(map[string][]domain.Vote, len(subs))
	for _, v := range votes {
		bySubmission[v.SubmissionID] = append(bySubmission[v.SubmissionID], v)
	}

	all := make([]domain.SubmissionResult, 0, len(subs))
	for _, sub := range subs {
		all = append(all, scoreSubmission(sub, bySubmission[sub.ID]))
	}

	// Highest total first; judge count breaks ties so rated projects rank
	// above unrated ones with the same total.
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].TotalScore != all[j].TotalScore {
			return all[i].TotalScore > all[j].TotalScore
		}
		return all[i].JudgeCount > all[j].JudgeCount
	})

	top := podiumSize
	if len(all) < top {
		top = len(all)
	}
	results := &domain.Results{Top3: all[:top], All: all}

	if s.cache != nil {
		if err := s.cache.Set(ctx, results); err != nil {
			s.logger.Warn().Err(err).Msg("results cache write failed")
		}
	}
	return results, nil
}

// scoreSubmission computes total, average and population standard deviation
// for one submission in a single pass over its votes.
func scoreSubmission(sub domain.Submission, votes []domain.Vote) domain.SubmissionResult {
	result := domain.SubmissionResult{
		Submission: sub,
		JudgeCount: len(votes),
		Votes:      make([]domain.JudgeRating, 0, len(votes)),
	}

	for _, v := range votes {
		result.TotalScore += v.Rating
		result.Votes = append(result.Votes, domain.JudgeRating{
			JudgeName: v.JudgeName,
			Rating:    v.Rating,
			Remarks:   v.Remarks,
		})
	}

	if len(votes) > 0 {
		mean := float64(result.TotalScore) / float64(len(votes))
		result.AverageRating = round2(mean)

		if len(votes) > 1 {
			var variance float64
			for _, v := range votes {
				diff := float64(v.Rating) - mean
				variance += diff * diff
			}
			variance /= float64(len(votes))
			result.StdDeviation = round2(math.Sqrt(variance))
		}
	}

	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
