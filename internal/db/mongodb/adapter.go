package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payloadkit/internal/db"
	"payloadkit/internal/logging"
	"payloadkit/internal/schema"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"
)

const (
	DefaultDatabase   = "payload"
	GlobalsCollection = "globals"
)

var ErrNotConnected = errors.New("mongodb: not connected")

// Args повторяет форму mongooseAdapter({url}).
type Args struct {
	URL    string
	Logger *zap.Logger
}

type Adapter struct {
	args   Args
	log    *zap.Logger
	client *mongo.Client
	dbName string
}

var _ db.Adapter = (*Adapter)(nil)

func NewAdapter(args Args) *Adapter {
	return &Adapter{args: args, log: logging.OrNop(args.Logger).Named("mongodb")}
}

func (a *Adapter) Name() string { return string(db.KindMongoDB) }
func (a *Adapter) URL() string  { return a.args.URL }

// DatabaseName берёт имя базы из пути URI; без пути: DefaultDatabase.
func DatabaseName(uri string) (string, error) {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return "", err
	}
	if cs.Database == "" {
		return DefaultDatabase, nil
	}
	return cs.Database, nil
}

func (a *Adapter) Connect(ctx context.Context) error {
	if a.client != nil {
		return nil
	}
	name, err := DatabaseName(a.args.URL)
	if err != nil {
		return fmt.Errorf("mongodb connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.args.URL))
	if err != nil {
		return fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongodb ping: %w", err)
	}
	a.client = client
	a.dbName = name
	a.log.Info("connected", zap.String("database", name))
	return nil
}

// Migrate создаёт недостающие коллекции и уникальные индексы.
// Глобалы живут в одной коллекции GlobalsCollection, ключ: globalType.
func (a *Adapter) Migrate(ctx context.Context, s db.Schema) error {
	if a.client == nil {
		return ErrNotConnected
	}
	database := a.client.Database(a.dbName)

	existing, err := database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("mongodb list collections: %w", err)
	}
	have := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		have[n] = struct{}{}
	}

	for _, p := range Plan(s) {
		if _, ok := have[p.Collection]; !ok {
			if err := database.CreateCollection(ctx, p.Collection); err != nil && !isNamespaceExists(err) {
				return fmt.Errorf("mongodb create %s: %w", p.Collection, err)
			}
			have[p.Collection] = struct{}{}
		}
		if len(p.Indexes) == 0 {
			continue
		}
		names, err := database.Collection(p.Collection).Indexes().CreateMany(ctx, p.Indexes)
		if err != nil {
			return fmt.Errorf("mongodb indexes %s: %w", p.Collection, err)
		}
		a.log.Debug("indexes ensured", zap.String("collection", p.Collection), zap.Strings("indexes", names))
	}
	return nil
}

func (a *Adapter) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	err := a.client.Disconnect(ctx)
	a.client = nil
	return err
}

// CollectionPlan: что нужно иметь в базе для одной коллекции
type CollectionPlan struct {
	Collection string
	Indexes    []mongo.IndexModel
}

// Plan переводит логическую модель в список коллекций с индексами.
func Plan(s db.Schema) []CollectionPlan {
	out := make([]CollectionPlan, 0, len(s.Collections)+1)
	for _, c := range s.Collections {
		out = append(out, CollectionPlan{Collection: c.Slug, Indexes: uniqueIndexes(c.AllFields())})
	}
	if len(s.Globals) > 0 {
		out = append(out, CollectionPlan{
			Collection: GlobalsCollection,
			Indexes: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "globalType", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("globalType_1"),
			}},
		})
	}
	return out
}

func uniqueIndexes(fields []schema.Field) []mongo.IndexModel {
	var out []mongo.IndexModel
	for _, f := range fields {
		if !f.Unique {
			continue
		}
		out = append(out, mongo.IndexModel{
			Keys: bson.D{{Key: f.Name, Value: 1}},
			// sparse: у upload-записи filename появляется только после загрузки
			Options: options.Index().SetUnique(true).SetSparse(true).SetName(f.Name + "_1"),
		})
	}
	return out
}

// 48: NamespaceExists
func isNamespaceExists(err error) bool {
	var ce mongo.CommandError
	return errors.As(err, &ce) && ce.Code == 48
}
