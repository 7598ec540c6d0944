package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/campusfest/event-portal/internal/core/domain"
	"github.com/campusfest/event-portal/internal/core/ports"
)

func duplicateKeyResponse() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error",
	})
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create returns generated id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user, err := repo.Create(context.Background(), &domain.User{
			Username: "alice", Email: "a@x.com", Phone: "123", PasswordHash: "hash", CreatedAt: time.Now(),
		})
		if err != nil {
			mt.Fatalf("create: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(user.ID); err != nil {
			mt.Fatalf("expected hex object id, got %q", user.ID)
		}
	})

	mt.Run("create maps duplicate key", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(duplicateKeyResponse())

		_, err := repo.Create(context.Background(), &domain.User{Username: "alice", Email: "a@x.com"})
		if !errors.Is(err, domain.ErrUserExists) {
			mt.Fatalf("expected ErrUserExists, got %v", err)
		}
	})

	mt.Run("find by username or email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "username", Value: "alice"},
			{Key: "email", Value: "a@x.com"},
			{Key: "phone", Value: "123"},
			{Key: "password_hash", Value: "hash"},
		}))

		user, err := repo.FindByUsernameOrEmail(context.Background(), "a@x.com", "a@x.com")
		if err != nil {
			mt.Fatalf("find: %v", err)
		}
		if user.ID != oid.Hex() || user.Username != "alice" || user.PasswordHash != "hash" {
			mt.Fatalf("unexpected user: %+v", user)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "find" {
			mt.Fatalf("expected find command, got %+v", started)
		}
		if _, err := started.Command.LookupErr("filter", "$or"); err != nil {
			mt.Fatalf("expected $or filter: %v", err)
		}
	})

	mt.Run("find maps no documents", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))

		if _, err := repo.FindByUsernameOrEmail(context.Background(), "ghost", "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestEventRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upsert inserted", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{
				{Key: "index", Value: 0},
				{Key: "_id", Value: primitive.NewObjectID()},
			}}},
		))

		res, err := repo.UpsertByName(context.Background(), domain.Event{Name: "Quiz", Category: domain.CategoryOther})
		if err != nil {
			mt.Fatalf("upsert: %v", err)
		}
		if res != ports.UpsertInserted {
			mt.Fatalf("expected UpsertInserted, got %v", res)
		}

		started := mt.GetStartedEvent()
		upsert, err := started.Command.LookupErr("updates", "0", "upsert")
		if err != nil || !upsert.Boolean() {
			mt.Fatalf("expected upsert flag on update, got %v (%v)", upsert, err)
		}
	})

	mt.Run("upsert updated and unchanged", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}),
		)

		if res, _ := repo.UpsertByName(context.Background(), domain.Event{Name: "Quiz"}); res != ports.UpsertUpdated {
			mt.Fatalf("expected UpsertUpdated, got %v", res)
		}
		if res, _ := repo.UpsertByName(context.Background(), domain.Event{Name: "Quiz"}); res != ports.UpsertUnchanged {
			mt.Fatalf("expected UpsertUnchanged, got %v", res)
		}
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.events", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: a}, {Key: "name", Value: "Hackathon"}, {Key: "category", Value: "Tech"}},
			bson.D{{Key: "_id", Value: b}, {Key: "name", Value: "Dance"}, {Key: "category", Value: "Cultural"}},
		))

		events, err := repo.List(context.Background())
		if err != nil {
			mt.Fatalf("list: %v", err)
		}
		if len(events) != 2 || events[0].ID != a.Hex() || events[1].Category != domain.CategoryCultural {
			mt.Fatalf("unexpected events: %+v", events)
		}
	})

	mt.Run("find by malformed id", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		if _, err := repo.FindByID(context.Background(), "not-hex"); !errors.Is(err, domain.ErrEventNotFound) {
			mt.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	mt.Run("find by ids skips malformed", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.events", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "name", Value: "Quiz"}, {Key: "category", Value: "Other"}},
		))

		got, err := repo.FindByIDs(context.Background(), []string{oid.Hex(), "bogus", oid.Hex()})
		if err != nil {
			mt.Fatalf("find by ids: %v", err)
		}
		if got[oid.Hex()].Name != "Quiz" || len(got) != 1 {
			mt.Fatalf("unexpected result: %+v", got)
		}
	})
}

func TestRegistrationRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	userID := primitive.NewObjectID().Hex()
	eventID := primitive.NewObjectID().Hex()

	mt.Run("exists", func(mt *mtest.T) {
		repo := NewRegistrationRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.registrations", mtest.FirstBatch, bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: 1}}),
			mtest.CreateCursorResponse(0, "db.registrations", mtest.FirstBatch),
		)

		if ok, err := repo.Exists(context.Background(), userID, eventID); err != nil || !ok {
			mt.Fatalf("expected existing registration, got %v %v", ok, err)
		}
		if ok, err := repo.Exists(context.Background(), userID, eventID); err != nil || ok {
			mt.Fatalf("expected no registration, got %v %v", ok, err)
		}
	})

	mt.Run("create maps duplicate key", func(mt *mtest.T) {
		repo := NewRegistrationRepository(mt.DB)
		mt.AddMockResponses(duplicateKeyResponse())

		_, err := repo.Create(context.Background(), &domain.Registration{UserID: userID, EventID: eventID, RegisteredAt: time.Now()})
		if !errors.Is(err, domain.ErrAlreadyRegistered) {
			mt.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
	})

	mt.Run("create rejects malformed ids", func(mt *mtest.T) {
		repo := NewRegistrationRepository(mt.DB)
		_, err := repo.Create(context.Background(), &domain.Registration{UserID: "x", EventID: eventID})
		if !errors.Is(err, domain.ErrInvalidInput) {
			mt.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	mt.Run("list by user", func(mt *mtest.T) {
		repo := NewRegistrationRepository(mt.DB)
		uid, _ := primitive.ObjectIDFromHex(userID)
		eid, _ := primitive.ObjectIDFromHex(eventID)
		at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.registrations", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "user_id", Value: uid},
				{Key: "event_id", Value: eid},
				{Key: "registered_at", Value: at},
			},
		))

		regs, err := repo.ListByUser(context.Background(), userID)
		if err != nil {
			mt.Fatalf("list: %v", err)
		}
		if len(regs) != 1 || regs[0].EventID != eventID || !regs[0].RegisteredAt.Equal(at) {
			mt.Fatalf("unexpected registrations: %+v", regs)
		}
	})
}
