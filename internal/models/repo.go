package models

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devconnect-app/server/internal/apperr"
	"github.com/devconnect-app/server/internal/helpers"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	helpers.RegisterJSONTagNames(v)
	return v
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(name string) *mongo.Collection {
	return mdb.mongodbClient.Database(mdb.dbName).Collection(name)
}

// WithTransaction runs fn inside a single multi-document transaction so
// cascading mutations commit or abort together. Requires a replica-set
// deployment; standalone servers reject transactions at runtime.
func (mdb *MongodbRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := mdb.mongodbClient.StartSession()
	if err != nil {
		return apperr.Store("start session", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
