package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	usersCollection        = "users"
	companiesCollection    = "companies"
	jobsCollection         = "jobs"
	applicationsCollection = "applications"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// EnsureIndexes creates the unique indexes the Mongo repositories rely on
// for duplicate detection.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		usersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		companiesCollection: {
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		applicationsCollection: {
			Keys:    bson.D{{Key: "job", Value: 1}, {Key: "applicant", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		jobsCollection: {
			Keys: bson.D{{Key: "created_by", Value: 1}},
		},
	}
	for name, model := range indexes {
		if _, err := database.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create %s index: %w", name, err)
		}
	}
	return nil
}

// objectID parses a hex ObjectID. Malformed ids can never match a document.
func objectID(id types.ID) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id.String())
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func objectIDs(ids []types.ID) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := objectID(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}

func idOf(oid primitive.ObjectID) types.ID {
	if oid.IsZero() {
		return ""
	}
	return types.ID(oid.Hex())
}

func idsOf(oids []primitive.ObjectID) []types.ID {
	ids := make([]types.ID, 0, len(oids))
	for _, oid := range oids {
		ids = append(ids, idOf(oid))
	}
	return ids
}

func mapMongoError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

func findAll[D any, T any](ctx context.Context, coll *mongo.Collection, filter any, sort bson.D, convert func(D) T) ([]T, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		items = append(items, convert(doc))
	}
	return items, nil
}
