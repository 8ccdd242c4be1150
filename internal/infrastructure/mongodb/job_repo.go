package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/ErlanBelekov/jobs-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type jobDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Company   string             `bson:"company"`
	Position  string             `bson:"position"`
	Status    domain.Status      `bson:"status"`
	CreatedBy primitive.ObjectID `bson:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *jobDocument) toDomain() *domain.Job {
	return &domain.Job{
		ID:        d.ID.Hex(),
		Company:   d.Company,
		Position:  d.Position,
		Status:    d.Status,
		UserID:    d.CreatedBy.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{coll: db.db.Collection(jobsCollection)}
}

// ownedFilter returns ok=false when either id is not an ObjectID; no document
// can match in that case.
func ownedFilter(id, userID string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "createdBy": owner}, true
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	owner, err := primitive.ObjectIDFromHex(job.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert job: invalid owner id %q", job.UserID)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := jobDocument{
		ID:        primitive.NewObjectID(),
		Company:   job.Company,
		Position:  job.Position,
		Status:    job.Status,
		CreatedBy: owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *JobRepository) GetByID(ctx context.Context, id, userID string) (*domain.Job, error) {
	filter, ok := ownedFilter(id, userID)
	if !ok {
		return nil, domain.ErrJobNotFound
	}

	var doc jobDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *JobRepository) List(ctx context.Context, userID string) ([]*domain.Job, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.Job{}, nil
	}

	// ObjectIDs grow monotonically per process, so _id breaks createdAt ties.
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"createdBy": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	var docs []jobDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	jobs := make([]*domain.Job, 0, len(docs))
	for i := range docs {
		jobs = append(jobs, docs[i].toDomain())
	}
	return jobs, nil
}

func (r *JobRepository) Update(ctx context.Context, input repository.UpdateJobInput) (*domain.Job, error) {
	filter, ok := ownedFilter(input.ID, input.UserID)
	if !ok {
		return nil, domain.ErrJobNotFound
	}

	set := bson.M{
		"company":   input.Company,
		"position":  input.Position,
		"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
	}
	if input.Status != nil {
		set["status"] = *input.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc jobDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("update job: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *JobRepository) Delete(ctx context.Context, id, userID string) error {
	filter, ok := ownedFilter(id, userID)
	if !ok {
		return domain.ErrJobNotFound
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
