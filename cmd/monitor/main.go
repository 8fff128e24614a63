package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Document size monitoring tool for the inventory_items collection.
// Items accumulate history_log entries over their lifetime; this tool
// flags documents approaching MongoDB's 16MB limit.

var (
	mongoURI  = flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	dbName    = flag.String("db", "edsis", "Database name")
	threshold = flag.Int("threshold", 1048576, "Alert threshold in bytes (default: 1MB)")
	limit     = flag.Int("limit", 50, "Maximum number of results to display")
)

const mb1 = 1048576

type documentSizeInfo struct {
	QRCode       string `bson:"qr_code"`
	ProductName  string `bson:"product_name"`
	Size         int    `bson:"size"`
	HistoryCount int    `bson:"historyCount"`
}

func main() {
	flag.Parse()

	log.Printf("Starting document size monitoring...")
	log.Printf("MongoDB URI: %s", *mongoURI)
	log.Printf("Database: %s", *dbName)
	log.Printf("Alert Threshold: %d bytes (%.2f MB)", *threshold, float64(*threshold)/mb1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(*mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB successfully")

	db := client.Database(*dbName)

	if err := analyzeCollection(context.Background(), db, "inventory_items"); err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
}

func analyzeCollection(ctx context.Context, db *mongo.Database, collectionName string) error {
	collection := db.Collection(collectionName)

	totalCount, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count documents: %w", err)
	}

	fmt.Printf("\n=== Collection: %s ===\n", collectionName)
	fmt.Printf("Total Documents: %d\n\n", totalCount)

	pipeline := []bson.M{
		{
			"$project": bson.M{
				"qr_code":      1,
				"product_name": 1,
				"size":         bson.M{"$bsonSize": "$$ROOT"},
				"historyCount": bson.M{"$size": bson.M{"$ifNull": []interface{}{"$history_log", []interface{}{}}}},
			},
		},
		{
			"$match": bson.M{
				"size": bson.M{"$gte": *threshold},
			},
		},
		{
			"$sort": bson.M{"size": -1},
		},
		{
			"$limit": int64(*limit),
		},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("failed to run aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var largeDocuments []documentSizeInfo
	if err := cursor.All(ctx, &largeDocuments); err != nil {
		return fmt.Errorf("failed to decode results: %w", err)
	}

	if len(largeDocuments) == 0 {
		fmt.Println("No documents above the alert threshold.")
		return nil
	}

	fmt.Printf("%-25s %-30s %12s %10s\n", "QR CODE", "PRODUCT", "SIZE (KB)", "HISTORY")
	for _, doc := range largeDocuments {
		fmt.Printf("%-25s %-30s %12.1f %10d\n",
			doc.QRCode, doc.ProductName, float64(doc.Size)/1024, doc.HistoryCount)
	}
	fmt.Printf("\n%d documents above threshold\n", len(largeDocuments))
	return nil
}
