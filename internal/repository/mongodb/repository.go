package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

const dailyKegReportsCollection = "daily_keg_reports"

// Repository defines the interface for keg report storage.
type Repository interface {
	SaveDailyKegReport(ctx context.Context, report models.DailyKegReport) error
	ListDailyKegReports(ctx context.Context, limit int) ([]models.DailyKegReport, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: dailyKegReportsCollection,
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveDailyKegReport stores the report, replacing an earlier one for the same day.
func (r *MongoDBRepository) SaveDailyKegReport(ctx context.Context, report models.DailyKegReport) error {
	filter := bson.M{"date": report.Date}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection().ReplaceOne(ctx, filter, report, opts); err != nil {
		return fmt.Errorf("failed to save daily keg report: %w", err)
	}
	return nil
}

// ListDailyKegReports returns the latest reports, newest day first.
func (r *MongoDBRepository) ListDailyKegReports(ctx context.Context, limit int) ([]models.DailyKegReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily keg reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := make([]models.DailyKegReport, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode daily keg reports: %w", err)
	}
	return reports, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
