package db

import (
	"context"
	"fmt"

	"podcast-archive/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxBatchOps is the backing store's limit on operations per batch write.
const maxBatchOps = 500

// Client wraps the MongoDB client and the episodes collection.
type Client struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	collection  *mongo.Collection
}

// NewClient creates a new episode store client.
func NewClient(connectionString, databaseName, collectionName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Client{}
	}

	database := mongoClient.Database(databaseName)
	collection := database.Collection(collectionName)

	return &Client{
		mongoClient: mongoClient,
		database:    database,
		collection:  collection,
	}
}

// Connect establishes connection to MongoDB
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// Ping reports whether the store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// storedEpisode pairs the store's own document handle with the episode
// fields. Episode.StoreID is kept out of the persisted document.
type storedEpisode struct {
	StoreID primitive.ObjectID `bson:"_id,omitempty"`
	Episode domain.Episode     `bson:",inline"`
}

// GetAll fetches every episode. orderBy names a field to sort by,
// descending, matching how the archive lists episodes; empty means
// store order.
func (c *Client) GetAll(ctx context.Context, orderBy string) ([]domain.Episode, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	findOpts := options.Find()
	if orderBy != "" {
		findOpts.SetSort(bson.D{{Key: orderBy, Value: -1}})
	}

	cursor, err := c.collection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeEpisodes(ctx, cursor)
}

// GetWhere fetches every episode whose field exactly equals the given value.
func (c *Client) GetWhere(ctx context.Context, field string, equals any) ([]domain.Episode, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	cursor, err := c.collection.Find(ctx, bson.M{field: equals})
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	return decodeEpisodes(ctx, cursor)
}

func decodeEpisodes(ctx context.Context, cursor *mongo.Cursor) ([]domain.Episode, error) {
	var episodes []domain.Episode
	for cursor.Next(ctx) {
		var doc storedEpisode
		if err := cursor.Decode(&doc); err != nil {
			continue // Skip invalid documents
		}
		ep := doc.Episode
		ep.StoreID = doc.StoreID.Hex()
		if ep.ID == "" {
			ep.ID = ep.StoreID
		}
		episodes = append(episodes, ep)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return episodes, nil
}

// Create inserts a new episode document and returns the store's handle.
func (c *Client) Create(ctx context.Context, episode *domain.Episode) (string, error) {
	if c.collection == nil {
		return "", fmt.Errorf("collection not initialized")
	}

	res, err := c.collection.InsertOne(ctx, episode)
	if err != nil {
		return "", fmt.Errorf("failed to insert episode: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

// UpdateFields applies a partial update to a single document. docID may be
// either the store's own handle or the derived logical id.
func (c *Client) UpdateFields(ctx context.Context, docID string, fields map[string]any) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	update := bson.M{"$set": bson.M(fields)}
	res, err := c.collection.UpdateOne(ctx, docFilter(docID), update)
	if err != nil {
		return fmt.Errorf("failed to update episode %s: %w", docID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("episode %s not found", docID)
	}
	return nil
}

// Delete removes a single document. Deletion is immediate and irreversible.
func (c *Client) Delete(ctx context.Context, docID string) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	res, err := c.collection.DeleteOne(ctx, docFilter(docID))
	if err != nil {
		return fmt.Errorf("failed to delete episode %s: %w", docID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("episode %s not found", docID)
	}
	return nil
}

// docFilter builds the filter for a document handle: store handles are
// hex object ids, anything else falls back to the logical id field.
func docFilter(docID string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(docID); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"id": docID}
}

// BatchOpKind selects what a BatchOp does.
type BatchOpKind int

const (
	BatchCreate BatchOpKind = iota
	BatchUpdate
	BatchDelete
)

// BatchOp is one operation in a batch write.
type BatchOp struct {
	Kind    BatchOpKind
	DocID   string          // update/delete target
	Episode *domain.Episode // create payload
	Fields  map[string]any  // update payload
}

// BatchWrite applies operations in chunks of at most 500, per the backing
// store's batch limits. A failing chunk aborts the remaining ones.
func (c *Client) BatchWrite(ctx context.Context, ops []BatchOp) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	for _, chunk := range ChunkOps(ops, maxBatchOps) {
		models := make([]mongo.WriteModel, 0, len(chunk))
		for _, op := range chunk {
			switch op.Kind {
			case BatchCreate:
				models = append(models, mongo.NewInsertOneModel().SetDocument(op.Episode))
			case BatchUpdate:
				models = append(models, mongo.NewUpdateOneModel().
					SetFilter(docFilter(op.DocID)).
					SetUpdate(bson.M{"$set": bson.M(op.Fields)}))
			case BatchDelete:
				models = append(models, mongo.NewDeleteOneModel().SetFilter(docFilter(op.DocID)))
			}
		}

		if _, err := c.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return fmt.Errorf("batch write failed: %w", err)
		}
	}

	return nil
}

// ChunkOps splits ops into chunks of at most size operations.
func ChunkOps(ops []BatchOp, size int) [][]BatchOp {
	if size <= 0 || len(ops) == 0 {
		return nil
	}
	chunks := make([][]BatchOp, 0, (len(ops)+size-1)/size)
	for start := 0; start < len(ops); start += size {
		end := start + size
		if end > len(ops) {
			end = len(ops)
		}
		chunks = append(chunks, ops[start:end])
	}
	return chunks
}
