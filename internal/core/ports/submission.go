package ports

import (
	"context"

	"github.com/via/votehub/internal/core/domain"
)

// SubmissionInput carries the editable fields of a submission.
type SubmissionInput struct {
	TeamMemberName     string
	ProjectName        string
	SubmissionLink     string
	ProblemDescription string
	HoursSpent         int
	ServicesUsed       string
	GitRepoURL         string
}

// ListSubmissionsQuery filters and orders the submission list.
type ListSubmissionsQuery struct {
	Search    string // matches team member, project name or repo URL
	SortBy    string // "created_at" (default) or "hours_spent"
	Ascending bool
}

type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) (*domain.Submission, error)
	Update(ctx context.Context, sub *domain.Submission) (*domain.Submission, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	List(ctx context.Context) ([]domain.Submission, error)
}

type SubmissionService interface {
	Create(ctx context.Context, in SubmissionInput) (*domain.Submission, error)
	Update(ctx context.Context, id string, in SubmissionInput) (*domain.Submission, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListSubmissionsQuery) ([]domain.Submission, error)
}
