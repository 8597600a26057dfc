package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "PollSensei-Backend/docs"
	"PollSensei-Backend/src/config"
	"PollSensei-Backend/src/controllers"
	"PollSensei-Backend/src/database"
	"PollSensei-Backend/src/jobs"
	"PollSensei-Backend/src/routes"
	"PollSensei-Backend/src/services/ai"
	"PollSensei-Backend/src/services/analysis"
	"PollSensei-Backend/src/services/auth"
	"PollSensei-Backend/src/services/engine"
	"PollSensei-Backend/src/services/mail"
	"PollSensei-Backend/src/services/responses"
	"PollSensei-Backend/src/services/superadmin"
	"PollSensei-Backend/src/services/surveys"
	"PollSensei-Backend/src/services/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
)

// @title                       PollSensei API
// @version                     1.0
// @description                 Survey authoring, response validation and analysis backend.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	// เชื่อมต่อกับ MongoDB
	if err := database.ConnectMongoDB(); err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	// Redis ไม่บังคับ: ไม่มีก็ไม่มี cache / OTP / คิวงาน / แชท
	if err := database.InitRedis(); err != nil {
		log.Println("⚠️ Redis unavailable, continuing without it:", err)
		database.UseRedis(nil)
	}

	catalogue, err := analysis.LoadCatalogue(cfg.TestCatalogue)
	if err != nil {
		log.Fatalf("Error loading test catalogue: %v", err)
	}

	engineClient := engine.NewClient(cfg.EngineURL, cfg.EngineTimeout)
	mailer := mail.NewSenderFromConfig(cfg)

	surveyRepo := surveys.NewMongoRepository(database.SurveyCollection)
	responseRepo := responses.NewMongoRepository(database.ResponseCollection)
	reportRepo := analysis.NewMongoReportRepository(database.AnalysisCollection)
	userRepo := users.NewMongoRepository(database.UserCollection)

	var (
		queue         *jobs.Queue
		worker        *asynq.Server
		hub           *ai.Hub
		analysisQueue analysis.Enqueuer
		authQueue     auth.Enqueuer
		queueStats    controllers.QueueStatter
	)
	if database.RedisClient != nil {
		queue = jobs.NewQueue(database.RedisURI)
		analysisQueue, authQueue, queueStats = queue, queue, queue
		hub = ai.NewHub(database.RedisClient)

		worker, err = jobs.StartWorker(database.RedisURI, cfg.WorkerConcurrency, jobs.Deps{
			Reports: reportRepo,
			Runner:  engineClient,
			Mailer:  mailer,
		})
		if err != nil {
			log.Fatalf("Error starting asynq worker: %v", err)
		}
	}

	handlers := routes.Handlers{
		Auth:      controllers.NewAuthController(auth.NewService(userRepo, cfg.OTPTTL, authQueue, mailer)),
		Surveys:   controllers.NewSurveyController(surveys.NewService(surveyRepo, cfg.AppBaseURL, cfg.ListCacheTTL)),
		Responses: controllers.NewResponseController(responses.NewService(responseRepo, surveyRepo)),
		Analysis:  controllers.NewAnalysisController(analysis.NewService(surveyRepo, reportRepo, engineClient, analysisQueue, catalogue)),
		AI:        controllers.NewAIController(ai.NewService(engineClient, hub)),
		SuperAdmin: controllers.NewSuperAdminController(superadmin.NewService(
			superadmin.NewMongoFAQRepository(database.FAQCollection),
			superadmin.NewMongoTutorialRepository(database.TutorialCollection),
			userRepo,
			superadmin.NewMongoStats(database.SurveyCollection, database.ResponseCollection, database.UserCollection),
		), queueStats),
	}

	// สร้าง app instance
	app := fiber.New(fiber.Config{AppName: "PollSensei"})

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app, handlers)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Println("⚠️ fiber shutdown:", err)
		}
	}()

	log.Println("Server is running on port " + cfg.AppPort)
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(cfg.AppPort))); err != nil {
		log.Println("❌ listen:", err)
	}

	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		queue.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.DisconnectMongoDB(ctx); err != nil {
		log.Println("⚠️ mongo disconnect:", err)
	}
}
