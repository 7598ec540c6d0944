package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusfest/event-portal/internal/core/domain"
)

const collectionRegistrations = "registrations"

// RegistrationRepository implements ports.RegistrationRepository using MongoDB.
type RegistrationRepository struct {
	coll *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{coll: db.Collection(collectionRegistrations)}
}

type mongoRegistration struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       primitive.ObjectID `bson:"user_id"`
	EventID      primitive.ObjectID `bson:"event_id"`
	RegisteredAt time.Time          `bson:"registered_at"`
}

func (m mongoRegistration) toDomain() domain.Registration {
	return domain.Registration{
		ID:           m.ID.Hex(),
		UserID:       m.UserID.Hex(),
		EventID:      m.EventID.Hex(),
		RegisteredAt: m.RegisteredAt.UTC(),
	}
}

func parsePair(userID, eventID string) (uid, eid primitive.ObjectID, err error) {
	uid, err = primitive.ObjectIDFromHex(userID)
	if err != nil {
		return uid, eid, fmt.Errorf("user id %q: %w", userID, domain.ErrInvalidInput)
	}
	eid, err = primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return uid, eid, fmt.Errorf("event id %q: %w", eventID, domain.ErrInvalidInput)
	}
	return uid, eid, nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	uid, eid, err := parsePair(userID, eventID)
	if err != nil {
		return false, err
	}
	filter := bson.M{"user_id": uid, "event_id": eid}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count registrations: %w", err)
	}
	return n > 0, nil
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	uid, eid, err := parsePair(reg.UserID, reg.EventID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRegistration{
		UserID:       uid,
		EventID:      eid,
		RegisteredAt: reg.RegisteredAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	out := doc.toDomain()
	return &out, nil
}

// ListByUser returns registrations in insertion order.
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("user id %q: %w", userID, domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"user_id": uid}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	var docs []mongoRegistration
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list registrations: decode: %w", err)
	}

	out := make([]domain.Registration, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// EnsureIndexes creates the (user, event) uniqueness constraint.
func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "registered_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
