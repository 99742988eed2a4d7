package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect-app/server/internal/apperr"
)

const ProfilesColName = "profiles"

type Experience struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        string             `bson:"from" json:"from"`
	To          string             `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy" json:"fieldofstudy"`
	From         string             `bson:"from" json:"from"`
	To           string             `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

type SocialLinks struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// ProfileOwner is the joined name/avatar view of the owning user, filled by
// the $lookup stages of the fetch queries.
type ProfileOwner struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
}

type Profile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     primitive.ObjectID `bson:"user" json:"user"`
	Owner      *ProfileOwner      `bson:"owner,omitempty" json:"owner,omitempty"`
	Company    string             `bson:"company,omitempty" json:"company,omitempty"`
	Website    string             `bson:"website,omitempty" json:"website,omitempty"`
	Location   string             `bson:"location,omitempty" json:"location,omitempty"`
	Status     string             `bson:"status" json:"status"`
	Skills     []string           `bson:"skills" json:"skills"`
	Bio        string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Social     SocialLinks        `bson:"social,omitempty" json:"social,omitempty"`
	Experience []Experience       `bson:"experience" json:"experience"`
	Education  []Education        `bson:"education" json:"education"`
	CreatedAt  time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt  time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ProfileFields are the mutable profile fields an upsert may set. Optional
// fields are written only when nonempty, matching the reference behavior of
// leaving absent fields untouched.
type ProfileFields struct {
	Company  string
	Website  string
	Location string
	Status   string
	Skills   []string
	Bio      string
	Social   SocialLinks
}

type ProfileRepo interface {
	UpsertProfile(ctx context.Context, userID primitive.ObjectID, fields ProfileFields) (*Profile, error)
	GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*Profile, error)
	ListProfiles(ctx context.Context) ([]*Profile, error)
	DeleteProfileByUserID(ctx context.Context, userID primitive.ObjectID) error
	AddExperience(ctx context.Context, userID primitive.ObjectID, entry Experience) (*Profile, error)
	RemoveExperience(ctx context.Context, userID primitive.ObjectID, entryID primitive.ObjectID) (*Profile, error)
	AddEducation(ctx context.Context, userID primitive.ObjectID, entry Education) (*Profile, error)
	RemoveEducation(ctx context.Context, userID primitive.ObjectID, entryID primitive.ObjectID) (*Profile, error)
}

// UpsertProfile creates or replaces the mutable fields of the user's profile
// in a single FindOneAndUpdate. Together with the unique index on "user"
// this keeps the at-most-one-profile-per-user invariant under concurrency.
func (mdb *MongodbRepo) UpsertProfile(ctx context.Context, userID primitive.ObjectID, fields ProfileFields) (*Profile, error) {
	now := time.Now()

	set := bson.M{
		"status":     fields.Status,
		"skills":     fields.Skills,
		"updated_at": now,
	}
	if fields.Company != "" {
		set["company"] = fields.Company
	}
	if fields.Website != "" {
		set["website"] = fields.Website
	}
	if fields.Location != "" {
		set["location"] = fields.Location
	}
	if fields.Bio != "" {
		set["bio"] = fields.Bio
	}
	if fields.Social != (SocialLinks{}) {
		set["social"] = fields.Social
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"user":       userID,
			"experience": []Experience{},
			"education":  []Education{},
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile Profile
	err := mdb.GetCollection(ProfilesColName).
		FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).
		Decode(&profile)
	if err != nil {
		return nil, apperr.Store("upsert profile", err)
	}
	return &profile, nil
}

// ownerLookup joins the owning user's name and avatar onto the profile.
func ownerLookup() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         UsersColName,
			"localField":   "user",
			"foreignField": "_id",
			"as":           "owner",
		}},
		{"$unwind": bson.M{"path": "$owner", "preserveNullAndEmptyArrays": true}},
		{"$project": bson.M{
			"owner.password":   0,
			"owner.email":      0,
			"owner.created_at": 0,
		}},
	}
}

func (mdb *MongodbRepo) GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*Profile, error) {
	pipeline := append([]bson.M{{"$match": bson.M{"user": userID}}}, ownerLookup()...)

	cursor, err := mdb.GetCollection(ProfilesColName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Store("find profile", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, apperr.Store("find profile", err)
		}
		return nil, apperr.ErrProfileNotFound
	}

	var profile Profile
	if err := cursor.Decode(&profile); err != nil {
		return nil, apperr.Store("decode profile", err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) ListProfiles(ctx context.Context) ([]*Profile, error) {
	cursor, err := mdb.GetCollection(ProfilesColName).Aggregate(ctx, ownerLookup())
	if err != nil {
		return nil, apperr.Store("list profiles", err)
	}
	defer cursor.Close(ctx)

	profiles := []*Profile{}
	for cursor.Next(ctx) {
		var profile Profile
		if err := cursor.Decode(&profile); err != nil {
			return nil, apperr.Store("decode profile", err)
		}
		profiles = append(profiles, &profile)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.Store("list profiles", err)
	}
	return profiles, nil
}

func (mdb *MongodbRepo) DeleteProfileByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := mdb.GetCollection(ProfilesColName).DeleteOne(ctx, bson.M{"user": userID})
	if err != nil {
		return apperr.Store("delete profile", err)
	}
	return nil
}

// prependToList pushes entry to the front of the named array on the user's
// profile and returns the updated document.
func (mdb *MongodbRepo) prependToList(ctx context.Context, userID primitive.ObjectID, list string, entry interface{}) (*Profile, error) {
	update := bson.M{
		"$push": bson.M{
			list: bson.M{
				"$each":     []interface{}{entry},
				"$position": 0,
			},
		},
		"$set": bson.M{"updated_at": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile Profile
	err := mdb.GetCollection(ProfilesColName).
		FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).
		Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrProfileNotFound
		}
		return nil, apperr.Store("prepend "+list, err)
	}
	return &profile, nil
}

// removeFromList pulls the entry with the given id from the named array.
// An absent id leaves the profile unchanged and is not an error.
func (mdb *MongodbRepo) removeFromList(ctx context.Context, userID primitive.ObjectID, list string, entryID primitive.ObjectID) (*Profile, error) {
	update := bson.M{
		"$pull": bson.M{list: bson.M{"_id": entryID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile Profile
	err := mdb.GetCollection(ProfilesColName).
		FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).
		Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrProfileNotFound
		}
		return nil, apperr.Store("remove from "+list, err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) AddExperience(ctx context.Context, userID primitive.ObjectID, entry Experience) (*Profile, error) {
	return mdb.prependToList(ctx, userID, "experience", entry)
}

func (mdb *MongodbRepo) RemoveExperience(ctx context.Context, userID primitive.ObjectID, entryID primitive.ObjectID) (*Profile, error) {
	return mdb.removeFromList(ctx, userID, "experience", entryID)
}

func (mdb *MongodbRepo) AddEducation(ctx context.Context, userID primitive.ObjectID, entry Education) (*Profile, error) {
	return mdb.prependToList(ctx, userID, "education", entry)
}

func (mdb *MongodbRepo) RemoveEducation(ctx context.Context, userID primitive.ObjectID, entryID primitive.ObjectID) (*Profile, error) {
	return mdb.removeFromList(ctx, userID, "education", entryID)
}
