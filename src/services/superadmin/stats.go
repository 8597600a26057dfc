package superadmin

import (
	"context"
	"time"

	"PollSensei-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DailyCount จำนวน survey ที่สร้างในแต่ละวันของเดือน
type DailyCount struct {
	Day   int   `bson:"_id" json:"day"`
	Count int64 `bson:"count" json:"count"`
}

// TypeCount จำนวน survey แยกตาม generated_by
type TypeCount struct {
	GeneratedBy string `bson:"_id" json:"generated_by"`
	Count       int64  `bson:"count" json:"count"`
}

// Stats ตัวเลขรวมที่อ่านจาก collection surveys/responses/users
type Stats interface {
	CountSurveys(ctx context.Context, filter bson.M) (int64, error)
	CountResponses(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CreationByDay(ctx context.Context, from, to time.Time) ([]DailyCount, error)
	TypeDistribution(ctx context.Context, from, to time.Time) ([]TypeCount, error)
}

type mongoStats struct {
	surveys, responses, users *mongo.Collection
}

func NewMongoStats(surveys, responses, users *mongo.Collection) Stats {
	return &mongoStats{surveys: surveys, responses: responses, users: users}
}

func (s *mongoStats) CountSurveys(ctx context.Context, filter bson.M) (int64, error) {
	return s.surveys.CountDocuments(ctx, filter)
}

func (s *mongoStats) CountResponses(ctx context.Context) (int64, error) {
	return s.responses.CountDocuments(ctx, bson.M{"deleted": false})
}

func (s *mongoStats) CountUsers(ctx context.Context) (int64, error) {
	return s.users.CountDocuments(ctx, bson.M{})
}

func rangeMatch(from, to time.Time) bson.D {
	return bson.D{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}}}}
}

func (s *mongoStats) CreationByDay(ctx context.Context, from, to time.Time) ([]DailyCount, error) {
	pipeline := mongo.Pipeline{
		rangeMatch(from, to),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.M{"$dayOfMonth": "$createdAt"}},
			{Key: "count", Value: bson.M{"$sum": 1}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := s.surveys.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []DailyCount{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *mongoStats) TypeDistribution(ctx context.Context, from, to time.Time) ([]TypeCount, error) {
	pipeline := mongo.Pipeline{
		rangeMatch(from, to),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$generated_by"},
			{Key: "count", Value: bson.M{"$sum": 1}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := s.surveys.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []TypeCount{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FillDays เติมวันที่ไม่มี survey ให้เป็น 0 เพื่อให้กราฟมีครบทุกวัน
func FillDays(month time.Month, year int, counts []DailyCount) []DailyCount {
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	byDay := make(map[int]int64, len(counts))
	for _, c := range counts {
		byDay[c.Day] = c.Count
	}
	out := make([]DailyCount, 0, days)
	for d := 1; d <= days; d++ {
		out = append(out, DailyCount{Day: d, Count: byDay[d]})
	}
	return out
}

// FillTypes ทั้ง ai และ manually ปรากฏเสมอ
func FillTypes(counts []TypeCount) []TypeCount {
	byType := map[string]int64{}
	for _, c := range counts {
		byType[c.GeneratedBy] += c.Count
	}
	return []TypeCount{
		{GeneratedBy: models.GeneratedByAI, Count: byType[models.GeneratedByAI]},
		{GeneratedBy: models.GeneratedByManually, Count: byType[models.GeneratedByManually]},
	}
}
