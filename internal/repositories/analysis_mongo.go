package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alfredoptarigan/resume-ats/internal/models"
)

type analysisDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	JD      string             `bson:"jd"`
	Score   *string            `bson:"score"`
	Missing []string           `bson:"missing"`
	URL     *string            `bson:"url"`
	Date    time.Time          `bson:"date"`
}

func (d analysisDocument) toRecord() models.AnalysisRecord {
	return models.AnalysisRecord{
		ID:      d.ID.Hex(),
		JD:      d.JD,
		Score:   d.Score,
		Missing: d.Missing,
		URL:     d.URL,
		Date:    d.Date.UTC(),
	}
}

type mongoAnalysisRepository struct {
	collection *mongo.Collection
}

func NewMongoAnalysisRepository(collection *mongo.Collection) AnalysisRepository {
	return &mongoAnalysisRepository{collection: collection}
}

func (r *mongoAnalysisRepository) Create(ctx context.Context, record *models.AnalysisRecord) error {
	if record.Date.IsZero() {
		record.Date = time.Now().UTC()
	}

	doc := analysisDocument{
		JD:      record.JD,
		Score:   record.Score,
		Missing: record.Missing,
		URL:     record.URL,
		Date:    record.Date,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert analysis record: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAnalysisRepository) FindRecent(ctx context.Context, limit int) ([]models.AnalysisRecord, error) {
	limit = normalizeLimit(limit)

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent analyses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []analysisDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode analyses: %w", err)
	}

	records := make([]models.AnalysisRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.toRecord())
	}

	return newestFirst(records, limit), nil
}
