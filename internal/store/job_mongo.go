package store

import (
	"context"
	"regexp"
	"time"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type jobDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Requirements    []string           `bson:"requirements"`
	Salary          float64            `bson:"salary"`
	SalaryType      string             `bson:"salaryType"`
	Location        string             `bson:"location"`
	JobType         string             `bson:"jobType"`
	ExperienceLevel string             `bson:"experienceLevel"`
	Position        int                `bson:"position"`
	Company         primitive.ObjectID `bson:"company"`
	CreatedBy       primitive.ObjectID `bson:"created_by"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func (d jobDocument) job() types.Job {
	requirements := d.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	return types.Job{
		ID:              idOf(d.ID),
		Title:           d.Title,
		Description:     d.Description,
		Requirements:    requirements,
		Salary:          d.Salary,
		SalaryType:      types.SalaryType(d.SalaryType),
		Location:        d.Location,
		JobType:         d.JobType,
		ExperienceLevel: d.ExperienceLevel,
		Position:        d.Position,
		CompanyID:       idOf(d.Company),
		CreatedBy:       idOf(d.CreatedBy),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// MongoJobRepository stores jobs in the "jobs" collection.
type MongoJobRepository struct {
	coll *mongo.Collection
}

func NewMongoJobRepository(database *mongo.Database) *MongoJobRepository {
	return &MongoJobRepository{coll: database.Collection(jobsCollection)}
}

func (r *MongoJobRepository) Get(ctx context.Context, id types.ID) (types.Job, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.Job{}, err
	}
	var doc jobDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return types.Job{}, mapMongoError(err)
	}
	return doc.job(), nil
}

// List matches keyword literally and case-insensitively against title,
// description and location.
func (r *MongoJobRepository) List(ctx context.Context, keyword string) ([]types.Job, error) {
	filter := bson.M{}
	if keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"location": pattern},
		}}
	}
	return findAll(ctx, r.coll, filter, newestFirst, jobDocument.job)
}

func (r *MongoJobRepository) ListByCreator(ctx context.Context, userID types.ID) ([]types.Job, error) {
	oid, err := objectID(userID)
	if err != nil {
		return []types.Job{}, nil
	}
	return findAll(ctx, r.coll, bson.M{"created_by": oid}, newestFirst, jobDocument.job)
}

func (r *MongoJobRepository) ListByIDs(ctx context.Context, ids []types.ID) ([]types.Job, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []types.Job{}, nil
	}
	jobs, err := findAll(ctx, r.coll, bson.M{"_id": bson.M{"$in": oids}}, nil, jobDocument.job)
	if err != nil {
		return nil, err
	}
	return orderByIDs(jobs, ids), nil
}

func (r *MongoJobRepository) Create(ctx context.Context, job types.Job) (types.Job, error) {
	company, err := objectID(job.CompanyID)
	if err != nil {
		return types.Job{}, err
	}
	creator, err := objectID(job.CreatedBy)
	if err != nil {
		return types.Job{}, err
	}
	now := time.Now().UTC()
	doc := jobDocument{
		ID:              primitive.NewObjectID(),
		Title:           job.Title,
		Description:     job.Description,
		Requirements:    job.Requirements,
		Salary:          job.Salary,
		SalaryType:      string(job.SalaryType),
		Location:        job.Location,
		JobType:         job.JobType,
		ExperienceLevel: job.ExperienceLevel,
		Position:        job.Position,
		Company:         company,
		CreatedBy:       creator,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if doc.Requirements == nil {
		doc.Requirements = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return types.Job{}, mapMongoError(err)
	}
	return doc.job(), nil
}

func (r *MongoJobRepository) Update(ctx context.Context, job types.Job) (types.Job, error) {
	oid, err := objectID(job.ID)
	if err != nil {
		return types.Job{}, err
	}
	company, err := objectID(job.CompanyID)
	if err != nil {
		return types.Job{}, err
	}
	job.UpdatedAt = time.Now().UTC()
	requirements := job.Requirements
	if requirements == nil {
		requirements = []string{}
	}

	update := bson.M{"$set": bson.M{
		"title":           job.Title,
		"description":     job.Description,
		"requirements":    requirements,
		"salary":          job.Salary,
		"salaryType":      string(job.SalaryType),
		"location":        job.Location,
		"jobType":         job.JobType,
		"experienceLevel": job.ExperienceLevel,
		"position":        job.Position,
		"company":         company,
		"updatedAt":       job.UpdatedAt,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return types.Job{}, mapMongoError(err)
	}
	if result.MatchedCount == 0 {
		return types.Job{}, ErrNotFound
	}
	return job, nil
}

func (r *MongoJobRepository) Delete(ctx context.Context, id types.ID) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
