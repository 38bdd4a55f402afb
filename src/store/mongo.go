package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusmatch/Backend-Study-Match/src/models"
)

// MongoStore persists users in a single "users" collection.
type MongoStore struct {
	users *mongo.Collection
	log   *slog.Logger
}

func NewMongoStore(db *mongo.Database, log *slog.Logger) *MongoStore {
	return &MongoStore{
		users: db.Collection("users"),
		log:   log,
	}
}

// EnsureIndexes creates the unique email index backing duplicate detection.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *MongoStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return s.scan(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, patch UserPatch) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.ProgramOfStudy != nil {
		set["programOfStudy"] = *patch.ProgramOfStudy
	}
	if patch.Interest != nil {
		set["interest"] = *patch.Interest
	}
	if patch.Skills != nil {
		set["skills"] = patch.Skills
	}
	if patch.ProjectIdea != nil {
		set["projectIdea"] = *patch.ProjectIdea
	}
	if patch.AvailabilityDate != nil {
		set["availabilityDate"] = *patch.AvailabilityDate
	}
	if patch.IsActive != nil {
		set["isActive"] = *patch.IsActive
	}
	if patch.LastLogin != nil {
		set["lastLogin"] = *patch.LastLogin
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &updated, nil
}

func (s *MongoStore) ActiveUsers(ctx context.Context) ([]models.User, error) {
	return s.scan(ctx, bson.M{"isActive": true})
}

func (s *MongoStore) ActiveStudents(ctx context.Context, exclude []primitive.ObjectID) ([]models.User, error) {
	filter := bson.M{
		"isActive": true,
		"role":     bson.M{"$ne": models.RoleAdmin},
	}
	if len(exclude) > 0 {
		filter["_id"] = bson.M{"$nin": exclude}
	}
	return s.scan(ctx, filter)
}

func (s *MongoStore) IDsWithPendingFrom(ctx context.Context, id primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"pendingConnections": id,
		"isActive":           true,
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := s.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find pending recipients: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			Id primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			s.log.Warn("skipping undecodable user document", "err", err)
			continue
		}
		ids = append(ids, doc.Id)
	}
	return ids, cursor.Err()
}

func (s *MongoStore) AddToSet(ctx context.Context, id primitive.ObjectID, field SetField, value primitive.ObjectID) error {
	return s.updateSet(ctx, id, bson.M{"$addToSet": bson.M{string(field): value}})
}

func (s *MongoStore) RemoveFromSet(ctx context.Context, id primitive.ObjectID, field SetField, value primitive.ObjectID) error {
	return s.updateSet(ctx, id, bson.M{"$pull": bson.M{string(field): value}})
}

func (s *MongoStore) updateSet(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update set field: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// scan decodes documents one by one so a single malformed record is skipped
// instead of failing the whole query.
func (s *MongoStore) scan(ctx context.Context, filter bson.M) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			s.log.Warn("skipping undecodable user document", "err", err)
			continue
		}
		users = append(users, user)
	}
	return users, cursor.Err()
}
