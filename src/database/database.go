package database

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"PollSensei-Backend/src/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client     *mongo.Client
	db         *mongo.Database
	once       sync.Once // ✅ ป้องกันการรัน ConnectMongoDB() ซ้ำ
	connectErr error

	SurveyCollection   *mongo.Collection
	ResponseCollection *mongo.Collection
	UserCollection     *mongo.Collection
	FAQCollection      *mongo.Collection
	TutorialCollection *mongo.Collection
	AnalysisCollection *mongo.Collection
)

// ConnectMongoDB เชื่อมต่อกับ MongoDB แค่ครั้งเดียว
func ConnectMongoDB() error {
	cfg := config.Load()
	if cfg.MongoURI == "" {
		return errors.New("MONGO_URI environment variable not set. Please create a .env file and set it")
	}

	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, connectErr = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if connectErr != nil {
			log.Println("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		// ตรวจสอบการเชื่อมต่อ
		if connectErr = client.Ping(ctx, readpref.Primary()); connectErr != nil {
			log.Println("❌ MongoDB ping failed:", connectErr)
			return
		}

		db = client.Database(cfg.MongoDB)
		SurveyCollection = db.Collection("surveys")
		ResponseCollection = db.Collection("responses")
		UserCollection = db.Collection("users")
		FAQCollection = db.Collection("faqs")
		TutorialCollection = db.Collection("tutorials")
		AnalysisCollection = db.Collection("analysis_reports")

		log.Println("✅ MongoDB connected successfully, db =", cfg.MongoDB)
		connectErr = ensureIndexes(ctx)
	})

	return connectErr
}

// Database คืน database หลัก (nil ถ้ายังไม่ได้เชื่อมต่อ)
func Database() *mongo.Database {
	return db
}

// GetCollection รับ Collection จาก MongoDB
func GetCollection(dbName, collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("❌ MongoDB client is nil")
	}
	return client.Database(dbName).Collection(collectionName)
}

// DisconnectMongoDB ปิดการเชื่อมต่อตอน shutdown
func DisconnectMongoDB(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func ensureIndexes(ctx context.Context) error {
	if _, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := SurveyCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "short_url", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}); err != nil {
		return err
	}
	_, err := ResponseCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "survey_id", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
