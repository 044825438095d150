package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/agritech/internal/domain/models"
)

// Repository defines the interface for dashboard snapshot storage.
type Repository interface {
	SaveSnapshot(ctx context.Context, snap models.DashboardSnapshot) error
	LatestSnapshots(ctx context.Context, limit int64) ([]models.DashboardSnapshot, error)
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

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "dashboard_snapshots",
	}, nil
}

type snapshotDoc struct {
	Date              string               `bson:"date"`
	InventoryItems    int                  `bson:"inventory_items"`
	InventoryUnits    int                  `bson:"inventory_units"`
	InventoryValue    primitive.Decimal128 `bson:"inventory_value"`
	LowStockItems     []string             `bson:"low_stock_items"`
	OutOfStockItems   []string             `bson:"out_of_stock_items"`
	LivestockHeads    int                  `bson:"livestock_heads"`
	LivestockByHealth map[string]int       `bson:"livestock_by_health"`
	CropQuantity      int                  `bson:"crop_quantity"`
	LowStockProducts  []string             `bson:"low_stock_products"`
	CreatedAt         time.Time            `bson:"created_at"`
}

func toDoc(snap models.DashboardSnapshot) (snapshotDoc, error) {
	value, err := primitive.ParseDecimal128(snap.InventoryValue.String())
	if err != nil {
		return snapshotDoc{}, fmt.Errorf("encode inventory value: %w", err)
	}
	return snapshotDoc{
		Date:              snap.Date.String(),
		InventoryItems:    snap.InventoryItems,
		InventoryUnits:    snap.InventoryUnits,
		InventoryValue:    value,
		LowStockItems:     snap.LowStockItems,
		OutOfStockItems:   snap.OutOfStockItems,
		LivestockHeads:    snap.LivestockHeads,
		LivestockByHealth: snap.LivestockByHealth,
		CropQuantity:      snap.CropQuantity,
		LowStockProducts:  snap.LowStockProducts,
		CreatedAt:         snap.CreatedAt,
	}, nil
}

func fromDoc(doc snapshotDoc) (models.DashboardSnapshot, error) {
	date, err := models.ParseDate(doc.Date)
	if err != nil {
		return models.DashboardSnapshot{}, err
	}
	value, err := decimal.NewFromString(doc.InventoryValue.String())
	if err != nil {
		return models.DashboardSnapshot{}, fmt.Errorf("decode inventory value: %w", err)
	}
	return models.DashboardSnapshot{
		Date:              date,
		InventoryItems:    doc.InventoryItems,
		InventoryUnits:    doc.InventoryUnits,
		InventoryValue:    value,
		LowStockItems:     doc.LowStockItems,
		OutOfStockItems:   doc.OutOfStockItems,
		LivestockHeads:    doc.LivestockHeads,
		LivestockByHealth: doc.LivestockByHealth,
		CropQuantity:      doc.CropQuantity,
		LowStockProducts:  doc.LowStockProducts,
		CreatedAt:         doc.CreatedAt,
	}, nil
}

// SaveSnapshot upserts the snapshot of its day.
func (r *MongoDBRepository) SaveSnapshot(ctx context.Context, snap models.DashboardSnapshot) error {
	doc, err := toDoc(snap)
	if err != nil {
		return err
	}

	collection := r.client.Database(r.dbName).Collection(r.collName)
	_, err = collection.ReplaceOne(ctx, bson.M{"date": doc.Date}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save dashboard snapshot: %w", err)
	}
	return nil
}

// LatestSnapshots returns up to limit snapshots, newest first.
func (r *MongoDBRepository) LatestSnapshots(ctx context.Context, limit int64) ([]models.DashboardSnapshot, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	collection := r.client.Database(r.dbName).Collection(r.collName)
	cur, err := collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard snapshots: %w", err)
	}
	defer cur.Close(ctx)

	var docs []snapshotDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard snapshots: %w", err)
	}

	out := make([]models.DashboardSnapshot, 0, len(docs))
	for _, doc := range docs {
		snap, err := fromDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
