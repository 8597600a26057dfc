package analysis

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

var ErrReportNotFound = errors.New("analysis report not found")

type ReportRepository interface {
	Insert(ctx context.Context, r *models.AnalysisReport) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AnalysisReport, error)
	LatestForSurvey(ctx context.Context, surveyID primitive.ObjectID) (*models.AnalysisReport, error)
	Complete(ctx context.Context, id primitive.ObjectID, result map[string]interface{}) error
	Fail(ctx context.Context, id primitive.ObjectID, reason string) error
}

type mongoReportRepository struct {
	col *mongo.Collection
}

func NewMongoReportRepository(col *mongo.Collection) ReportRepository {
	return &mongoReportRepository{col: col}
}

func (r *mongoReportRepository) Insert(ctx context.Context, rep *models.AnalysisReport) error {
	if rep.ID.IsZero() {
		rep.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, rep)
	return err
}

func (r *mongoReportRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AnalysisReport, error) {
	var rep models.AnalysisReport
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rep); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (r *mongoReportRepository) LatestForSurvey(ctx context.Context, surveyID primitive.ObjectID) (*models.AnalysisReport, error) {
	var rep models.AnalysisReport
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := r.col.FindOne(ctx, bson.M{"survey_id": surveyID}, opts).Decode(&rep); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (r *mongoReportRepository) Complete(ctx context.Context, id primitive.ObjectID, result map[string]interface{}) error {
	return r.set(ctx, id, bson.M{"status": models.AnalysisCompleted, "result": result, "error": ""})
}

func (r *mongoReportRepository) Fail(ctx context.Context, id primitive.ObjectID, reason string) error {
	return r.set(ctx, id, bson.M{"status": models.AnalysisFailed, "error": reason})
}

func (r *mongoReportRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrReportNotFound
	}
	return nil
}
