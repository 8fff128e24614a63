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

	"github.com/edsis/inventory-service/internal/domain"
)

// Repair tool that recomputes the denormalized stock counters of every
// product from its inventory items. Useful after manual data edits or a
// crashed import.

var (
	mongoURI  = flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	dbName    = flag.String("db", "edsis", "Database name")
	dryRun    = flag.Bool("dry-run", true, "Dry run mode (no actual writes)")
	productID = flag.String("product", "", "Reconcile a single product ID (default: all)")
)

func main() {
	flag.Parse()

	log.Printf("Starting stock counter reconciliation...")
	log.Printf("MongoDB URI: %s", *mongoURI)
	log.Printf("Database: %s", *dbName)
	log.Printf("Dry Run: %v", *dryRun)

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

	if err := reconcileCounters(context.Background(), db); err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	log.Println("Reconciliation completed successfully!")
}

func reconcileCounters(ctx context.Context, db *mongo.Database) error {
	productsColl := db.Collection("products")
	itemsColl := db.Collection("inventory_items")

	filter := bson.M{}
	if *productID != "" {
		filter["_id"] = *productID
	}

	cursor, err := productsColl.Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var (
		totalProducts int
		drifted       int
	)

	for cursor.Next(ctx) {
		var product domain.Product
		if err := cursor.Decode(&product); err != nil {
			log.Printf("WARNING: Failed to decode product: %v", err)
			continue
		}
		totalProducts++

		itemCursor, err := itemsColl.Find(ctx, bson.M{"product_id": product.ID})
		if err != nil {
			return fmt.Errorf("failed to query items for %s: %w", product.ID, err)
		}

		var items []*domain.InventoryItem
		if err := itemCursor.All(ctx, &items); err != nil {
			return fmt.Errorf("failed to decode items for %s: %w", product.ID, err)
		}

		counts := domain.CountStock(items)
		if counts.Total == product.TotalStock &&
			counts.Booked == product.BookedStock &&
			counts.Sold == product.SoldStock {
			continue
		}

		drifted++
		log.Printf("DRIFT %s (%s): stored total=%d booked=%d sold=%d, actual total=%d booked=%d sold=%d",
			product.Code, product.ID,
			product.TotalStock, product.BookedStock, product.SoldStock,
			counts.Total, counts.Booked, counts.Sold)

		if *dryRun {
			continue
		}

		update := bson.M{"$set": bson.M{
			"total_stock":  counts.Total,
			"booked_stock": counts.Booked,
			"sold_stock":   counts.Sold,
		}}
		if _, err := productsColl.UpdateOne(ctx, bson.M{"_id": product.ID}, update); err != nil {
			return fmt.Errorf("failed to update counters for %s: %w", product.ID, err)
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("cursor error: %w", err)
	}

	log.Printf("Processed %d products, %d with drifted counters", totalProducts, drifted)
	if *dryRun && drifted > 0 {
		log.Println("Dry run: no counters were written. Re-run with -dry-run=false to repair.")
	}
	return nil
}
