package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/via/votehub/internal/core/domain"
)

const votesCollection = "votes"

type MongoVoteRepository struct {
	coll *mongo.Collection
}

func NewVoteRepository(db *mongo.Database) *MongoVoteRepository {
	return &MongoVoteRepository{coll: db.Collection(votesCollection)}
}

type mongoVote struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	SubmissionID string             `bson:"submission_id"`
	JudgeID      string             `bson:"judge_id"`
	JudgeName    string             `bson:"judge_name,omitempty"`
	Rating       int                `bson:"rating"`
	Remarks      string             `bson:"remarks,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

// Upsert relies on the unique (submission_id, judge_id) index: an existing
// pair gets its rating, remarks and updated_at replaced, created_at is only
// written on insert.
func (r *MongoVoteRepository) Upsert(ctx context.Context, vote *domain.Vote) (bool, error) {
	filter := bson.M{"submission_id": vote.SubmissionID, "judge_id": vote.JudgeID}
	update := bson.M{
		"$set": bson.M{
			"judge_name": vote.JudgeName,
			"rating":     vote.Rating,
			"remarks":    vote.Remarks,
			"updated_at": vote.UpdatedAt.Unix(),
		},
		"$setOnInsert": bson.M{
			"submission_id": vote.SubmissionID,
			"judge_id":      vote.JudgeID,
			"created_at":    vote.CreatedAt.Unix(),
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("upsert vote: %w: %w", domain.ErrStoreUnavailable, err)
	}

	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		vote.ID = oid.Hex()
	}
	return res.UpsertedCount > 0, nil
}

func (r *MongoVoteRepository) FindBySubmission(ctx context.Context, submissionID string) ([]domain.Vote, error) {
	return r.find(ctx, bson.M{"submission_id": submissionID})
}

func (r *MongoVoteRepository) FindByJudge(ctx context.Context, judgeID string) ([]domain.Vote, error) {
	return r.find(ctx, bson.M{"judge_id": judgeID})
}

func (r *MongoVoteRepository) List(ctx context.Context) ([]domain.Vote, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoVoteRepository) find(ctx context.Context, filter bson.M) ([]domain.Vote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submission_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find votes: %w: %w", domain.ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	var votes []domain.Vote
	for cursor.Next(ctx) {
		var mv mongoVote
		if err := cursor.Decode(&mv); err != nil {
			return nil, fmt.Errorf("decode vote: %w: %w", domain.ErrStoreUnavailable, err)
		}
		votes = append(votes, domain.Vote{
			ID:           mv.ID.Hex(),
			SubmissionID: mv.SubmissionID,
			JudgeID:      mv.JudgeID,
			JudgeName:    mv.JudgeName,
			Rating:       mv.Rating,
			Remarks:      mv.Remarks,
			CreatedAt:    unixToTime(mv.CreatedAt),
			UpdatedAt:    unixToTime(mv.UpdatedAt),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find votes: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return votes, nil
}
