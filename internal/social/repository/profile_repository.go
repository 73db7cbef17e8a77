package repository

import (
	"context"
	"time"

	"devcollab/internal/social/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileRepository persistence for developer profiles
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	FindByUsername(ctx context.Context, username string) (*domain.Profile, error)
	UpdateFields(ctx context.Context, userID string, set bson.M) error
	AddFollower(ctx context.Context, targetID, followerID string) error
	RemoveFollower(ctx context.Context, targetID, followerID string) error
}

type profileRepository struct {
	profiles *mongo.Collection
}

// NewProfileRepository create profile repository on the profiles collection
func NewProfileRepository(db *mongo.Database) ProfileRepository {
	return &profileRepository{profiles: db.Collection("profiles")}
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	now := time.Now().UnixMilli()
	if profile.CreatedAt == 0 {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.profiles.ReplaceOne(ctx, bson.M{"_id": profile.UserID}, profile, opts)
	return err
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.profiles.FindOne(ctx, bson.M{"_id": userID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) FindByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.profiles.FindOne(ctx, bson.M{"username": username}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) UpdateFields(ctx context.Context, userID string, set bson.M) error {
	set["updated_at"] = time.Now().UnixMilli()
	_, err := r.profiles.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set})
	return err
}

// AddFollower record the follow on both sides. Two single-document updates,
// each idempotent via $addToSet; a crash in between leaves a one-sided edge a
// retried follow repairs.
func (r *profileRepository) AddFollower(ctx context.Context, targetID, followerID string) error {
	if _, err := r.profiles.UpdateOne(ctx,
		bson.M{"_id": targetID},
		bson.M{"$addToSet": bson.M{"followers": followerID}},
	); err != nil {
		return err
	}
	_, err := r.profiles.UpdateOne(ctx,
		bson.M{"_id": followerID},
		bson.M{"$addToSet": bson.M{"following": targetID}},
	)
	return err
}

func (r *profileRepository) RemoveFollower(ctx context.Context, targetID, followerID string) error {
	if _, err := r.profiles.UpdateOne(ctx,
		bson.M{"_id": targetID},
		bson.M{"$pull": bson.M{"followers": followerID}},
	); err != nil {
		return err
	}
	_, err := r.profiles.UpdateOne(ctx,
		bson.M{"_id": followerID},
		bson.M{"$pull": bson.M{"following": targetID}},
	)
	return err
}
