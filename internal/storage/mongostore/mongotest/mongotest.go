// Package mongotest hands repository tests a throwaway MongoDB database.
package mongotest

import (
	"Cook-App-Backend/internal/storage/mongostore"
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const EnvURI = "TEST_MONGO_URI"

// Database connects to TEST_MONGO_URI and returns a fresh database with the
// production indexes. The test is skipped when the variable is unset; the
// database is dropped on cleanup.
func Database(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv(EnvURI)
	if uri == "" {
		t.Skipf("%s not set; skipping mongo integration test", EnvURI)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, db, err := mongostore.Connect(ctx, uri, "cookapp_test_"+primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return db
}
