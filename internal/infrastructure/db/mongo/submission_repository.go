package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/via/votehub/internal/core/domain"
)

const submissionsCollection = "submissions"

type MongoSubmissionRepository struct {
	coll  *mongo.Collection
	votes *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *MongoSubmissionRepository {
	return &MongoSubmissionRepository{
		coll:  db.Collection(submissionsCollection),
		votes: db.Collection(votesCollection),
	}
}

type mongoSubmission struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	TeamMemberName     string             `bson:"team_member_name"`
	ProjectName        string             `bson:"project_name,omitempty"`
	SubmissionLink     string             `bson:"submission_link"`
	ProblemDescription string             `bson:"problem_description"`
	HoursSpent         int                `bson:"hours_spent"`
	ServicesUsed       string             `bson:"services_used,omitempty"`
	GitRepoURL         string             `bson:"git_repo_url,omitempty"`
	CreatedAt          int64              `bson:"created_at"`
	UpdatedAt          int64              `bson:"updated_at"`
}

func (r *MongoSubmissionRepository) Create(ctx context.Context, sub *domain.Submission) (*domain.Submission, error) {
	res, err := r.coll.InsertOne(ctx, toMongoSubmission(sub))
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w: %w", domain.ErrStoreUnavailable, err)
	}

	created := *sub
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoSubmissionRepository) Update(ctx context.Context, sub *domain.Submission) (*domain.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(sub.ID)
	if err != nil {
		return nil, domain.ErrSubmissionNotFound
	}

	doc := toMongoSubmission(sub)
	doc.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update submission: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSubmissionNotFound
	}
	return sub, nil
}

// Delete removes the submission and, mirroring the original schema's
// ON DELETE CASCADE, every vote cast on it.
func (r *MongoSubmissionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSubmissionNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete submission: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSubmissionNotFound
	}

	if _, err := r.votes.DeleteMany(ctx, bson.M{"submission_id": id}); err != nil {
		return fmt.Errorf("cascade votes: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *MongoSubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSubmissionNotFound
	}

	var ms mongoSubmission
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find submission: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return ms.toDomain(), nil
}

func (r *MongoSubmissionRepository) List(ctx context.Context) ([]domain.Submission, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w: %w", domain.ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	var subs []domain.Submission
	for cursor.Next(ctx) {
		var ms mongoSubmission
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode submission: %w: %w", domain.ErrStoreUnavailable, err)
		}
		subs = append(subs, *ms.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return subs, nil
}

func toMongoSubmission(sub *domain.Submission) mongoSubmission {
	return mongoSubmission{
		TeamMemberName:     sub.TeamMemberName,
		ProjectName:        sub.ProjectName,
		SubmissionLink:     sub.SubmissionLink,
		ProblemDescription: sub.ProblemDescription,
		HoursSpent:         sub.HoursSpent,
		ServicesUsed:       sub.ServicesUsed,
		GitRepoURL:         sub.GitRepoURL,
		CreatedAt:          sub.CreatedAt.Unix(),
		UpdatedAt:          sub.UpdatedAt.Unix(),
	}
}

func (ms *mongoSubmission) toDomain() *domain.Submission {
	return &domain.Submission{
		ID:                 ms.ID.Hex(),
		TeamMemberName:     ms.TeamMemberName,
		ProjectName:        ms.ProjectName,
		SubmissionLink:     ms.SubmissionLink,
		ProblemDescription: ms.ProblemDescription,
		HoursSpent:         ms.HoursSpent,
		ServicesUsed:       ms.ServicesUsed,
		GitRepoURL:         ms.GitRepoURL,
		CreatedAt:          unixToTime(ms.CreatedAt),
		UpdatedAt:          unixToTime(ms.UpdatedAt),
	}
}
