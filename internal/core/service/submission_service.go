package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/via/votehub/internal/api/metrics"
	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/internal/core/ports"
)

// SubmissionService implements the superadmin CRUD flows over project
// submissions plus the read-only listing every authenticated role sees.
type SubmissionService struct {
	repo    ports.SubmissionRepository
	refresh ResultsRefresher
	logger  zerolog.Logger
}

// ResultsRefresher is notified after any mutation that changes the results
// dashboard. Implemented by the queue dispatcher; nil disables notification.
type ResultsRefresher interface {
	RefreshResults(submissionID string)
}

func NewSubmissionService(repo ports.SubmissionRepository, refresh ResultsRefresher, logger zerolog.Logger) *SubmissionService {
	return &SubmissionService{repo: repo, refresh: refresh, logger: logger}
}

func validateSubmissionInput(in ports.SubmissionInput) error {
	if strings.TrimSpace(in.TeamMemberName) == "" ||
		strings.TrimSpace(in.SubmissionLink) == "" ||
		strings.TrimSpace(in.ProblemDescription) == "" {
		return domain.ErrInvalidSubmission
	}
	if in.HoursSpent < 0 {
		return domain.ErrInvalidSubmission
	}
	return nil
}

func (s *SubmissionService) Create(ctx context.Context, in ports.SubmissionInput) (*domain.Submission, error) {
	if err := validateSubmissionInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub := &domain.Submission{
		TeamMemberName:     in.TeamMemberName,
		ProjectName:        in.ProjectName,
		SubmissionLink:     in.SubmissionLink,
		ProblemDescription: in.ProblemDescription,
		HoursSpent:         in.HoursSpent,
		ServicesUsed:       in.ServicesUsed,
		GitRepoURL:         in.GitRepoURL,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create submission")
		return nil, err
	}

	metrics.SubmissionsCreatedTotal.Inc()
	s.logger.Info().Str("submission_id", created.ID).Str("team", created.TeamMemberName).Msg("submission created")
	s.notifyRefresh(created.ID)
	return created, nil
}

func (s *SubmissionService) Update(ctx context.Context, id string, in ports.SubmissionInput) (*domain.Submission, error) {
	if err := validateSubmissionInput(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.TeamMemberName = in.TeamMemberName
	existing.ProjectName = in.ProjectName
	existing.SubmissionLink = in.SubmissionLink
	existing.ProblemDescription = in.ProblemDescription
	existing.HoursSpent = in.HoursSpent
	existing.ServicesUsed = in.ServicesUsed
	existing.GitRepoURL = in.GitRepoURL
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.logger.Error().Err(err).Str("submission_id", id).Msg("failed to update submission")
		return nil, err
	}

	s.notifyRefresh(id)
	return updated, nil
}

func (s *SubmissionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("submission_id", id).Msg("submission deleted")
	s.notifyRefresh(id)
	return nil
}

// List returns submissions filtered and ordered in memory. The whole table is
// small (one hackathon's entries), so the repository fetch is wholesale.
func (s *SubmissionService) List(ctx context.Context, q ports.ListSubmissionsQuery) ([]domain.Submission, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		filtered := subs[:0]
		for _, sub := range subs {
			if strings.Contains(strings.ToLower(sub.TeamMemberName), term) ||
				strings.Contains(strings.ToLower(sub.ProjectName), term) ||
				strings.Contains(strings.ToLower(sub.GitRepoURL), term) {
				filtered = append(filtered, sub)
			}
		}
		subs = filtered
	}

	sort.SliceStable(subs, func(i, j int) bool {
		var less bool
		switch q.SortBy {
		case "hours_spent":
			less = subs[i].HoursSpent < subs[j].HoursSpent
		default:
			less = subs[i].CreatedAt.Before(subs[j].CreatedAt)
		}
		if q.Ascending {
			return less
		}
		return !less
	})

	return subs, nil
}

func (s *SubmissionService) notifyRefresh(submissionID string) {
	if s.refresh != nil {
		s.refresh.RefreshResults(submissionID)
	}
}
