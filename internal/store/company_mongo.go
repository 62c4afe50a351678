package store

import (
	"context"
	"time"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type companyDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Website     string             `bson:"website"`
	Location    string             `bson:"location"`
	Logo        string             `bson:"logo"`
	UserID      primitive.ObjectID `bson:"userId"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d companyDocument) company() types.Company {
	return types.Company{
		ID:          idOf(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Website:     d.Website,
		Location:    d.Location,
		Logo:        d.Logo,
		UserID:      idOf(d.UserID),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoCompanyRepository stores companies in the "companies" collection.
type MongoCompanyRepository struct {
	coll *mongo.Collection
}

func NewMongoCompanyRepository(database *mongo.Database) *MongoCompanyRepository {
	return &MongoCompanyRepository{coll: database.Collection(companiesCollection)}
}

func (r *MongoCompanyRepository) Get(ctx context.Context, id types.ID) (types.Company, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.Company{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoCompanyRepository) GetByName(ctx context.Context, name string) (types.Company, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *MongoCompanyRepository) findOne(ctx context.Context, filter bson.M) (types.Company, error) {
	var doc companyDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return types.Company{}, mapMongoError(err)
	}
	return doc.company(), nil
}

func (r *MongoCompanyRepository) ListByUser(ctx context.Context, userID types.ID) ([]types.Company, error) {
	oid, err := objectID(userID)
	if err != nil {
		return []types.Company{}, nil
	}
	return findAll(ctx, r.coll, bson.M{"userId": oid}, bson.D{{Key: "createdAt", Value: 1}}, companyDocument.company)
}

func (r *MongoCompanyRepository) List(ctx context.Context) ([]types.Company, error) {
	return findAll(ctx, r.coll, bson.M{}, bson.D{{Key: "createdAt", Value: 1}}, companyDocument.company)
}

func (r *MongoCompanyRepository) Create(ctx context.Context, company types.Company) (types.Company, error) {
	owner, err := objectID(company.UserID)
	if err != nil {
		return types.Company{}, err
	}
	now := time.Now().UTC()
	doc := companyDocument{
		ID:          primitive.NewObjectID(),
		Name:        company.Name,
		Description: company.Description,
		Website:     company.Website,
		Location:    company.Location,
		Logo:        company.Logo,
		UserID:      owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return types.Company{}, mapMongoError(err)
	}
	return doc.company(), nil
}

func (r *MongoCompanyRepository) Update(ctx context.Context, company types.Company) (types.Company, error) {
	oid, err := objectID(company.ID)
	if err != nil {
		return types.Company{}, err
	}
	company.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"name":        company.Name,
		"description": company.Description,
		"website":     company.Website,
		"location":    company.Location,
		"logo":        company.Logo,
		"updatedAt":   company.UpdatedAt,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return types.Company{}, mapMongoError(err)
	}
	if result.MatchedCount == 0 {
		return types.Company{}, ErrNotFound
	}
	return company, nil
}

func (r *MongoCompanyRepository) Delete(ctx context.Context, id types.ID) error {
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
