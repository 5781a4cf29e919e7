package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"podcast-archive/pkg/db"
	"podcast-archive/pkg/replication"
)

// One-shot replication of the episode archive into a Postgres replica
// for SQL reporting. Supply either a direct DSN or Supabase credentials.
func main() {
	var (
		mongoURI   = flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
		dbName     = flag.String("db", "podcastarchive", "MongoDB database name")
		collection = flag.String("collection", "episodes", "MongoDB collection for episodes")

		pgDSN = flag.String("pg-dsn", os.Getenv("REPLICA_DSN"), "Postgres DSN for the replica (takes precedence over Supabase)")

		supabaseURL  = flag.String("supabase-url", os.Getenv("SUPABASE_URL"), "Supabase project URL")
		supabaseKey  = flag.String("supabase-key", os.Getenv("SUPABASE_KEY"), "Supabase service key")
		supabasePass = flag.String("supabase-db-password", os.Getenv("SUPABASE_DB_PASSWORD"), "Supabase database password for direct connections")
	)
	flag.Parse()

	ctx := context.Background()

	dbClient := db.NewClient(*mongoURI, *dbName, *collection)
	if err := dbClient.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close(ctx)

	pg, err := connectReplica(ctx, *pgDSN, *supabaseURL, *supabaseKey, *supabasePass)
	if err != nil {
		log.Fatalf("Failed to connect to replica: %v", err)
	}

	replicator, err := replication.NewReplicator(replication.Config{
		Store:    dbClient,
		Postgres: pg,
	})
	if err != nil {
		log.Fatalf("Failed to create replicator: %v", err)
	}

	start := time.Now()
	if err := replicator.ReplicateEpisodesToPostgres(ctx); err != nil {
		log.Fatalf("Replication failed: %v", err)
	}
	log.Printf("Done. Duration: %s", time.Since(start))
}

func connectReplica(ctx context.Context, dsn, sbURL, sbKey, sbPass string) (db.DBProvider, error) {
	if dsn != "" {
		client := db.NewPostgresClient(db.PostgresConfig{DSN: dsn})
		if err := client.Connect(ctx); err != nil {
			return nil, err
		}
		return client, nil
	}

	client := db.NewSupabaseClient(db.SupabaseConfig{
		SupabaseURL: sbURL,
		SupabaseKey: sbKey,
		Password:    sbPass,
	})
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}
