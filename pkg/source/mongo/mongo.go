// Package mongo loads tier documents from a MongoDB collection.
//
// Each record in the collection is one annotation:
//
//	{"document": "session-12", "tier": "words", "begin": 0, "end": 420, "value": "hello"}
//
// A document is assembled from all records with the same "document" field.
// Tiers appear in the order of their first record when sorted by tier name,
// so tier order is alphabetical. An index on {document: 1, tier: 1, begin: 1}
// serves the query.
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/interlinear/pkg/errors"
	"github.com/matzehuels/interlinear/pkg/source"
	"github.com/matzehuels/interlinear/pkg/tier"
)

// Record is the stored form of one annotation.
type Record struct {
	Document string `bson:"document"`
	Tier     string `bson:"tier"`
	Begin    int64  `bson:"begin"`
	End      int64  `bson:"end"`
	Value    string `bson:"value"`
}

// Finder is the part of *mongo.Collection the source needs.
type Finder interface {
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*driver.Cursor, error)
}

// Source reads one document from a collection.
type Source struct {
	coll     Finder
	document string
}

// New returns a source for the named document in coll.
func New(coll Finder, document string) *Source {
	return &Source{coll: coll, document: document}
}

func (s *Source) Kind() string { return "mongo" }
func (s *Source) Name() string { return s.document }

// Load queries every record of the document and assembles the tiers.
// A document without records yields a NOT_FOUND error.
func (s *Source) Load(ctx context.Context) (*tier.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "tier", Value: 1}, {Key: "begin", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{{Key: "document", Value: s.document}}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "query document %q", s.document)
	}
	defer cur.Close(ctx)

	var records []Record
	if err := cur.All(ctx, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode document %q", s.document)
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "document %q has no annotations", s.document)
	}
	return Build(s.document, records)
}

// Build assembles a document from records already sorted by tier and begin
// time. Consecutive records with the same tier form one tier.
func Build(name string, records []Record) (*tier.Document, error) {
	doc := tier.New(name)
	for i := 0; i < len(records); {
		j := i
		var anns []tier.Annotation
		for ; j < len(records) && records[j].Tier == records[i].Tier; j++ {
			r := records[j]
			anns = append(anns, tier.Annotation{Begin: r.Begin, End: r.End, Value: r.Value})
		}
		if _, err := doc.AddTier(records[i].Tier, anns); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "tier %q", records[i].Tier)
		}
		i = j
	}
	if err := doc.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "validate")
	}
	return doc, nil
}

// Connect opens a client and returns the named collection. The caller must
// disconnect the client.
func Connect(ctx context.Context, uri, database, collection string) (*driver.Client, *driver.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := driver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return client, client.Database(database).Collection(collection), nil
}

var (
	_ source.Source = (*Source)(nil)
	_ Finder        = (*driver.Collection)(nil)
)
