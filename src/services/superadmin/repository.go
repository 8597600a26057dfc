package superadmin

import (
	"context"
	"errors"
	"time"

	"PollSensei-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrFAQNotFound      = errors.New("faq not found")
	ErrTutorialNotFound = errors.New("tutorial not found")
)

// ContentRepository CRUD ของเอกสาร FAQ/Tutorial ที่มี _id, status, createdAt
type ContentRepository[T any] interface {
	Insert(ctx context.Context, doc *T) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter bson.M, p models.PaginationParams) ([]T, int64, error)
}

type mongoContentRepository[T any] struct {
	col      *mongo.Collection
	notFound error
}

func NewMongoFAQRepository(col *mongo.Collection) ContentRepository[models.FAQ] {
	return &mongoContentRepository[models.FAQ]{col: col, notFound: ErrFAQNotFound}
}

func NewMongoTutorialRepository(col *mongo.Collection) ContentRepository[models.Tutorial] {
	return &mongoContentRepository[models.Tutorial]{col: col, notFound: ErrTutorialNotFound}
}

func (r *mongoContentRepository[T]) Insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (r *mongoContentRepository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, r.notFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *mongoContentRepository[T]) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.notFound
	}
	return nil
}

func (r *mongoContentRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return r.notFound
	}
	return nil
}

func (r *mongoContentRepository[T]) List(ctx context.Context, filter bson.M, p models.PaginationParams) ([]T, int64, error) {
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(p.GetSkip()).
		SetLimit(int64(p.PageSize)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
