package store

import (
	"context"
	"time"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Fullname    string               `bson:"fullname"`
	Email       string               `bson:"email"`
	PhoneNumber string               `bson:"phoneNumber"`
	Password    string               `bson:"password"`
	Role        string               `bson:"role"`
	Profile     profileDocument      `bson:"profile"`
	SavedJobs   []primitive.ObjectID `bson:"savedJobs"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type profileDocument struct {
	Bio                string   `bson:"bio"`
	Skills             []string `bson:"skills"`
	Resume             string   `bson:"resume"`
	ResumeOriginalName string   `bson:"resumeOriginalName"`
	ProfilePhoto       string   `bson:"profilePhoto"`
}

func (d userDocument) user() types.User {
	skills := d.Profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return types.User{
		ID:           idOf(d.ID),
		Fullname:     d.Fullname,
		Email:        d.Email,
		PhoneNumber:  d.PhoneNumber,
		PasswordHash: d.Password,
		Role:         types.Role(d.Role),
		Profile: types.Profile{
			Bio:                d.Profile.Bio,
			Skills:             skills,
			Resume:             d.Profile.Resume,
			ResumeOriginalName: d.Profile.ResumeOriginalName,
			ProfilePhoto:       d.Profile.ProfilePhoto,
		},
		SavedJobs: idsOf(d.SavedJobs),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func profileDocumentOf(p types.Profile) profileDocument {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return profileDocument{
		Bio:                p.Bio,
		Skills:             skills,
		Resume:             p.Resume,
		ResumeOriginalName: p.ResumeOriginalName,
		ProfilePhoto:       p.ProfilePhoto,
	}
}

// MongoUserRepository stores users in the "users" collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(database *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: database.Collection(usersCollection)}
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id types.ID) (types.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.User{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (types.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return types.User{}, mapMongoError(err)
	}
	return doc.user(), nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	now := time.Now().UTC()
	doc := userDocument{
		ID:          primitive.NewObjectID(),
		Fullname:    user.Fullname,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Password:    user.PasswordHash,
		Role:        string(user.Role),
		Profile:     profileDocumentOf(user.Profile),
		SavedJobs:   objectIDs(user.SavedJobs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return types.User{}, mapMongoError(err)
	}
	return doc.user(), nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user types.User) (types.User, error) {
	oid, err := objectID(user.ID)
	if err != nil {
		return types.User{}, err
	}
	user.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"fullname":    user.Fullname,
		"email":       user.Email,
		"phoneNumber": user.PhoneNumber,
		"profile":     profileDocumentOf(user.Profile),
		"savedJobs":   objectIDs(user.SavedJobs),
		"updatedAt":   user.UpdatedAt,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return types.User{}, mapMongoError(err)
	}
	if result.MatchedCount == 0 {
		return types.User{}, ErrNotFound
	}
	return user, nil
}
