package store

import (
	"context"
	"time"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type applicationDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Job       primitive.ObjectID `bson:"job"`
	Applicant primitive.ObjectID `bson:"applicant"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d applicationDocument) application() types.Application {
	return types.Application{
		ID:          idOf(d.ID),
		JobID:       idOf(d.Job),
		ApplicantID: idOf(d.Applicant),
		Status:      types.ApplicationStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoApplicationRepository stores applications in the "applications"
// collection.
type MongoApplicationRepository struct {
	coll *mongo.Collection
}

func NewMongoApplicationRepository(database *mongo.Database) *MongoApplicationRepository {
	return &MongoApplicationRepository{coll: database.Collection(applicationsCollection)}
}

func (r *MongoApplicationRepository) Get(ctx context.Context, id types.ID) (types.Application, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.Application{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoApplicationRepository) GetByJobAndApplicant(ctx context.Context, jobID, applicantID types.ID) (types.Application, error) {
	job, err := objectID(jobID)
	if err != nil {
		return types.Application{}, err
	}
	applicant, err := objectID(applicantID)
	if err != nil {
		return types.Application{}, err
	}
	return r.findOne(ctx, bson.M{"job": job, "applicant": applicant})
}

func (r *MongoApplicationRepository) findOne(ctx context.Context, filter bson.M) (types.Application, error) {
	var doc applicationDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return types.Application{}, mapMongoError(err)
	}
	return doc.application(), nil
}

func (r *MongoApplicationRepository) ListByJob(ctx context.Context, jobID types.ID) ([]types.Application, error) {
	oid, err := objectID(jobID)
	if err != nil {
		return []types.Application{}, nil
	}
	return findAll(ctx, r.coll, bson.M{"job": oid}, newestFirst, applicationDocument.application)
}

func (r *MongoApplicationRepository) ListByApplicant(ctx context.Context, applicantID types.ID) ([]types.Application, error) {
	oid, err := objectID(applicantID)
	if err != nil {
		return []types.Application{}, nil
	}
	return findAll(ctx, r.coll, bson.M{"applicant": oid}, newestFirst, applicationDocument.application)
}

func (r *MongoApplicationRepository) Create(ctx context.Context, application types.Application) (types.Application, error) {
	job, err := objectID(application.JobID)
	if err != nil {
		return types.Application{}, err
	}
	applicant, err := objectID(application.ApplicantID)
	if err != nil {
		return types.Application{}, err
	}
	status := application.Status
	if status == "" {
		status = types.StatusPending
	}
	now := time.Now().UTC()
	doc := applicationDocument{
		ID:        primitive.NewObjectID(),
		Job:       job,
		Applicant: applicant,
		Status:    string(status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return types.Application{}, mapMongoError(err)
	}
	return doc.application(), nil
}

func (r *MongoApplicationRepository) UpdateStatus(ctx context.Context, id types.ID, status types.ApplicationStatus) (types.Application, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.Application{}, err
	}
	update := bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc applicationDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return types.Application{}, mapMongoError(err)
	}
	return doc.application(), nil
}
