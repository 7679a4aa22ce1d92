package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/internal/core/ports"
)

type stubSubmissionRepo struct {
	subs    []*domain.Submission
	listErr error
}

func newStubSubmissionRepo(subs ...*domain.Submission) *stubSubmissionRepo {
	return &stubSubmissionRepo{subs: subs}
}

func (r *stubSubmissionRepo) Create(_ context.Context, sub *domain.Submission) (*domain.Submission, error) {
	clone := *sub
	clone.ID = "sub_" + strconv.Itoa(len(r.subs)+1)
	r.subs = append(r.subs, &clone)
	result := clone
	return &result, nil
}

func (r *stubSubmissionRepo) Update(_ context.Context, sub *domain.Submission) (*domain.Submission, error) {
	for i, s := range r.subs {
		if s.ID == sub.ID {
			clone := *sub
			r.subs[i] = &clone
			return sub, nil
		}
	}
	return nil, domain.ErrSubmissionNotFound
}

func (r *stubSubmissionRepo) Delete(_ context.Context, id string) error {
	for i, s := range r.subs {
		if s.ID == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return nil
		}
	}
	return domain.ErrSubmissionNotFound
}

func (r *stubSubmissionRepo) FindByID(_ context.Context, id string) (*domain.Submission, error) {
	for _, s := range r.subs {
		if s.ID == id {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSubmissionNotFound
}

func (r *stubSubmissionRepo) List(_ context.Context) ([]domain.Submission, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Submission, 0, len(r.subs))
	for _, s := range r.subs {
		out = append(out, *s)
	}
	return out, nil
}

type stubVoteRepo struct {
	votes []domain.Vote
}

func (r *stubVoteRepo) Upsert(_ context.Context, vote *domain.Vote) (bool, error) {
	for i, v := range r.votes {
		if v.SubmissionID == vote.SubmissionID && v.JudgeID == vote.JudgeID {
			vote.ID = v.ID
			vote.CreatedAt = v.CreatedAt
			r.votes[i] = *vote
			return false, nil
		}
	}
	vote.ID = "vote_" + strconv.Itoa(len(r.votes)+1)
	r.votes = append(r.votes, *vote)
	return true, nil
}

func (r *stubVoteRepo) FindBySubmission(_ context.Context, submissionID string) ([]domain.Vote, error) {
	var out []domain.Vote
	for _, v := range r.votes {
		if v.SubmissionID == submissionID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVoteRepo) FindByJudge(_ context.Context, judgeID string) ([]domain.Vote, error) {
	var out []domain.Vote
	for _, v := range r.votes {
		if v.JudgeID == judgeID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVoteRepo) List(_ context.Context) ([]domain.Vote, error) {
	return append([]domain.Vote(nil), r.votes...), nil
}

type recordingRefresher struct {
	refreshed []string
}

func (r *recordingRefresher) RefreshResults(submissionID string) {
	r.refreshed = append(r.refreshed, submissionID)
}

func testVoteFixture() (*stubSubmissionRepo, *stubVoteRepo, *recordingRefresher, *VoteService) {
	subs := newStubSubmissionRepo(&domain.Submission{ID: "sub_1", TeamMemberName: "Team Alpha"})
	votes := &stubVoteRepo{}
	refresher := &recordingRefresher{}
	svc := NewVoteService(votes, subs, refresher, zerolog.Nop())
	return subs, votes, refresher, svc
}

func TestVoteService_Cast_Success(t *testing.T) {
	_, votes, refresher, svc := testVoteFixture()

	vote, err := svc.Cast(context.Background(), ports.CastVoteInput{
		SubmissionID: "sub_1",
		JudgeID:      "u1",
		JudgeName:    "Judge 1",
		Rating:       8,
		Remarks:      "solid demo",
	})
	if err != nil {
		t.Fatalf("Cast returned error: %v", err)
	}
	if vote.Rating != 8 || vote.Remarks != "solid demo" {
		t.Fatalf("unexpected vote: %+v", vote)
	}
	if len(votes.votes) != 1 {
		t.Fatalf("expected one stored vote, got %d", len(votes.votes))
	}
	if len(refresher.refreshed) != 1 || refresher.refreshed[0] != "sub_1" {
		t.Fatalf("expected results refresh for sub_1, got %v", refresher.refreshed)
	}
}

func TestVoteService_Cast_RatingBounds(t *testing.T) {
	_, _, _, svc := testVoteFixture()

	for _, rating := range []int{0, -3, 11, 42} {
		_, err := svc.Cast(context.Background(), ports.CastVoteInput{
			SubmissionID: "sub_1", JudgeID: "u1", Rating: rating,
		})
		if !errors.Is(err, domain.ErrInvalidRating) {
			t.Fatalf("expected ErrInvalidRating for %d, got %v", rating, err)
		}
	}
}

func TestVoteService_Cast_UnknownSubmission(t *testing.T) {
	_, _, _, svc := testVoteFixture()

	_, err := svc.Cast(context.Background(), ports.CastVoteInput{
		SubmissionID: "missing", JudgeID: "u1", Rating: 5,
	})
	if !errors.Is(err, domain.ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestVoteService_Cast_SecondVoteReplaces(t *testing.T) {
	_, votes, _, svc := testVoteFixture()

	first := ports.CastVoteInput{SubmissionID: "sub_1", JudgeID: "u1", Rating: 4, Remarks: "rough"}
	if _, err := svc.Cast(context.Background(), first); err != nil {
		t.Fatalf("first Cast returned error: %v", err)
	}

	second := ports.CastVoteInput{SubmissionID: "sub_1", JudgeID: "u1", Rating: 9, Remarks: "much improved"}
	if _, err := svc.Cast(context.Background(), second); err != nil {
		t.Fatalf("second Cast returned error: %v", err)
	}

	if len(votes.votes) != 1 {
		t.Fatalf("expected upsert to keep one row, got %d", len(votes.votes))
	}
	if votes.votes[0].Rating != 9 || votes.votes[0].Remarks != "much improved" {
		t.Fatalf("second vote did not replace the first: %+v", votes.votes[0])
	}
}

func TestVoteService_ListByJudge(t *testing.T) {
	_, votes, _, svc := testVoteFixture()
	now := time.Now().UTC()
	votes.votes = []domain.Vote{
		{ID: "v1", SubmissionID: "sub_1", JudgeID: "u1", Rating: 7, CreatedAt: now},
		{ID: "v2", SubmissionID: "sub_1", JudgeID: "u2", Rating: 3, CreatedAt: now},
	}

	mine, err := svc.ListByJudge(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByJudge returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "v1" {
		t.Fatalf("unexpected votes: %+v", mine)
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 votes, got %d", len(all))
	}
}
