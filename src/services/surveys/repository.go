package surveys

import (
	"context"
	"errors"
	"regexp"
	"time"

	"PollSensei-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSurveyNotFound = errors.New("survey not found")

// SearchFilter ตัวกรองของ survey/search
type SearchFilter struct {
	SearchTerm string
	Status     string
}

// Repository persistence ที่ Service ต้องใช้
type Repository interface {
	Insert(ctx context.Context, s *models.Survey) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Survey, error)
	FindByShortURL(ctx context.Context, code string) (*models.Survey, error)
	Replace(ctx context.Context, s *models.Survey) error
	SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, userID primitive.ObjectID, filter SearchFilter, p models.PaginationParams) ([]models.Survey, int64, error)
}

type mongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository สร้าง repository บน collection surveys
func NewMongoRepository(col *mongo.Collection) Repository {
	return &mongoRepository{col: col}
}

func (r *mongoRepository) Insert(ctx context.Context, s *models.Survey) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	// sync inserted id (เผื่อไดรเวอร์คืนค่า id ใหม่)
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Survey, error) {
	var s models.Survey
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSurveyNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *mongoRepository) FindByShortURL(ctx context.Context, code string) (*models.Survey, error) {
	var s models.Survey
	if err := r.col.FindOne(ctx, bson.M{"short_url": code}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSurveyNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *mongoRepository) Replace(ctx context.Context, s *models.Survey) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSurveyNotFound
	}
	return nil
}

func (r *mongoRepository) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSurveyNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSurveyNotFound
	}
	return nil
}

func (r *mongoRepository) List(ctx context.Context, userID primitive.ObjectID, filter SearchFilter, p models.PaginationParams) ([]models.Survey, int64, error) {
	query := bson.M{"user_id": userID}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.SearchTerm != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.SearchTerm), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"topic": pattern},
			bson.M{"description": pattern},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(p.GetSkip()).
		SetLimit(int64(p.PageSize)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	surveys := []models.Survey{}
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, 0, err
	}
	return surveys, total, nil
}
