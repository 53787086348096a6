package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	apperrors "github.com/umalmyha/ledger/internal/errors"
	"github.com/umalmyha/ledger/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultMongoDatabase   = "ledger"
	mongoCustomersCollName = "customers"
	mongoCountersCollName  = "counters"
)

type mongoCustomer struct {
	model.Customer `bson:",inline"`
	Seq            int64 `bson:"seq"`
}

type mongoCounter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

type mongoCustomerRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

// NewMongoCustomerRepository builds repository over customers collection, empty database means DefaultMongoDatabase
func NewMongoCustomerRepository(client *mongo.Client, database string) CustomerRepository {
	if database == "" {
		database = DefaultMongoDatabase
	}

	db := client.Database(database)
	return &mongoCustomerRepository{
		coll:     db.Collection(mongoCustomersCollName),
		counters: db.Collection(mongoCountersCollName),
	}
}

// nextSeq atomically increments persisted insertion counter
func (r *mongoCustomerRepository) nextSeq(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter mongoCounter
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": mongoCustomersCollName},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to increment customers sequence - %w", err)
	}
	return counter.Seq, nil
}

func (r *mongoCustomerRepository) FindAll(ctx context.Context) ([]model.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var docs []mongoCustomer
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	customers := make([]model.Customer, 0, len(docs))
	for _, d := range docs {
		customers = append(customers, d.Customer)
	}
	return customers, nil
}

func (r *mongoCustomerRepository) Create(ctx context.Context, nc model.NewCustomer) (model.Customer, error) {
	seq, err := r.nextSeq(ctx)
	if err != nil {
		return model.Customer{}, err
	}

	c := nc.WithID(uuid.NewString())
	if _, err := r.coll.InsertOne(ctx, mongoCustomer{Customer: c, Seq: seq}); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *mongoCustomerRepository) Update(ctx context.Context, id string, patch model.PatchCustomer) (model.Customer, error) {
	var doc mongoCustomer
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Customer{}, apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer %s not found", id))
		}
		return model.Customer{}, err
	}

	doc.Customer = doc.Customer.MergePatch(patch)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return model.Customer{}, err
	}

	if res.MatchedCount == 0 {
		return model.Customer{}, apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer %s not found", id))
	}
	return doc.Customer, nil
}

func (r *mongoCustomerRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}
