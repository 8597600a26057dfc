package responses

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

var ErrResponseNotFound = errors.New("response not found")

type Repository interface {
	Insert(ctx context.Context, r *models.Response) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Response, error)
	List(ctx context.Context, surveyID primitive.ObjectID, filter models.ResponseFilter, deleted bool, p models.PaginationParams) ([]models.Response, int64, error)
	AllBySurvey(ctx context.Context, surveyID primitive.ObjectID) ([]models.Response, error)
	SetAnswers(ctx context.Context, id primitive.ObjectID, answers []models.Answer) error
	SetDeleted(ctx context.Context, id primitive.ObjectID, deleted bool) error
	RespondentNames(ctx context.Context, surveyID primitive.ObjectID) ([]string, error)
}

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) Repository {
	return &mongoRepository{col: col}
}

// BuildFilterQuery แปลง ResponseFilter เป็น query ของ mongo
func BuildFilterQuery(surveyID primitive.ObjectID, f models.ResponseFilter, deleted bool) bson.M {
	query := bson.M{"survey_id": surveyID, "deleted": deleted}

	if len(f.Countries) > 0 {
		query["country"] = bson.M{"$in": f.Countries}
	}
	if f.Name != "" {
		query["respondent_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Name), Options: "i"}
	}
	if f.ResponseID != "" {
		oid, err := primitive.ObjectIDFromHex(f.ResponseID)
		if err != nil {
			// id ผิดรูปแบบต้องไม่ match อะไรเลย
			oid = primitive.NilObjectID
		}
		query["_id"] = oid
	}

	created := bson.M{}
	if f.Date != nil {
		day := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, f.Date.Location())
		created["$gte"] = day
		created["$lt"] = day.Add(24 * time.Hour)
	}
	// date มาก่อน ช่วง start/end ใช้เฉพาะตอนไม่มี date
	if f.Date == nil && f.StartDate != nil {
		created["$gte"] = *f.StartDate
	}
	if f.Date == nil && f.EndDate != nil {
		created["$lte"] = *f.EndDate
	}
	if len(created) > 0 {
		query["createdAt"] = created
	}

	elem := bson.M{}
	if f.Question != "" {
		elem["question"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Question), Options: "i"}
	}
	if f.QuestionType != "" {
		elem["question_type"] = f.QuestionType
	}
	if f.Answer != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Answer), Options: "i"}
		elem["$or"] = bson.A{
			bson.M{"content": pattern},
			bson.M{"selected_options": pattern},
		}
	}
	if len(elem) > 0 {
		query["answers"] = bson.M{"$elemMatch": elem}
	}
	return query
}

func (r *mongoRepository) Insert(ctx context.Context, resp *models.Response) error {
	if resp.ID.IsZero() {
		resp.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, resp)
	return err
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Response, error) {
	var resp models.Response
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&resp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (r *mongoRepository) List(ctx context.Context, surveyID primitive.ObjectID, filter models.ResponseFilter, deleted bool, p models.PaginationParams) ([]models.Response, int64, error) {
	query := BuildFilterQuery(surveyID, filter, deleted)

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(p.GetSkip()).
		SetLimit(int64(p.PageSize)).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []models.Response{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *mongoRepository) AllBySurvey(ctx context.Context, surveyID primitive.ObjectID) ([]models.Response, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"survey_id": surveyID, "deleted": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.Response{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoRepository) SetAnswers(ctx context.Context, id primitive.ObjectID, answers []models.Answer) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"answers": answers}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrResponseNotFound
	}
	return nil
}

func (r *mongoRepository) SetDeleted(ctx context.Context, id primitive.ObjectID, deleted bool) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"deleted": deleted}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrResponseNotFound
	}
	return nil
}

func (r *mongoRepository) RespondentNames(ctx context.Context, surveyID primitive.ObjectID) ([]string, error) {
	values, err := r.col.Distinct(ctx, "respondent_name", bson.M{"survey_id": surveyID, "deleted": false})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			names = append(names, s)
		}
	}
	return names, nil
}
