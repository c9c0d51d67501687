// Package mongostore implements the ledger and catalog storage contracts on
// MongoDB. Documents keep the field names and labels of the existing collections
// (sales, installments, cash_flow, products) with amounts stored as doubles.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	salesCollection        = "sales"
	installmentsCollection = "installments"
	cashFlowCollection     = "cash_flow"
	productsCollection     = "products"
)

// Connect opens a client for uri and pings the primary before returning.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("unable to ping mongo: %w", err)
	}

	return client, nil
}

func findOptions(sortKey string, order int, limit int) *options.FindOptions {
	if limit <= 0 {
		limit = defaultLimit
	}
	return options.Find().
		SetSort(bsonSort(sortKey, order)).
		SetLimit(int64(limit))
}
