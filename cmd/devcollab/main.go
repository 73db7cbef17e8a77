package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"devcollab/internal/activity"
	"devcollab/internal/api/handlers"
	"devcollab/internal/api/router"
	chatapp "devcollab/internal/chat/app"
	chatrepo "devcollab/internal/chat/repository"
	identityapp "devcollab/internal/identity/app"
	identitydomain "devcollab/internal/identity/domain"
	identityrepo "devcollab/internal/identity/repository"
	"devcollab/internal/media"
	socialapp "devcollab/internal/social/app"
	socialrepo "devcollab/internal/social/repository"
	"devcollab/pkg/config"
	"devcollab/pkg/database"
	"devcollab/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ServiceName, config.EnvConfig.LogPath)
	cfg := config.LoadConfig[config.DevCollab](config.EnvConfig.ServiceName, config.EnvConfig.YAMLPath)

	ctx := context.Background()

	// mongo holds chats, messages, profiles, posts and comments
	mongoURI := fmt.Sprintf("mongodb://%s:%s@%s:%d",
		cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    mongoURI,
			RetryCount:    cfg.Mongo.RetryCount,
			RetryInterval: time.Duration(cfg.Mongo.RetryInterval),
		},
		cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal("Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", mongoURI)),
			zap.Error(err))
	}
	defer mongo.Close(ctx)

	// postgres holds accounts
	pgConn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.PostgreSQL.User, cfg.PostgreSQL.Password,
		cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pgPool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    pgConn,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL database after retries", zap.Error(err))
	}
	defer pgPool.Close()

	// redis holds live sessions
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	sessionRepo := database.NewRedisRepository[identitydomain.UserSession](redisClient)

	// minio holds avatars and post media
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      cfg.MinIO.Endpoint,
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.Bucket,
		UseSSL:        cfg.MinIO.UseSSL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect minIO err : %v", err))
	}

	// kafka is optional; without brokers the producer degrades to a no-op
	var producer *activity.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		writer, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
			Brokers:       cfg.Kafka.Brokers,
			Topic:         cfg.Kafka.Topic,
			RetryCount:    cfg.Kafka.RetryCount,
			RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
		})
		if err != nil {
			logger.Log.Warn("kafka unavailable, activity records disabled", zap.Error(err))
		} else {
			producer = activity.NewProducer(writer)
			defer producer.Close()
		}
	}

	userRepo := identityrepo.NewUserRepository(pgPool)
	chatRepo := chatrepo.NewChatRepository(mongo.Client, mongo.Database)
	msgRepo := chatrepo.NewMessageRepository(mongo.Database)
	profileRepo := socialrepo.NewProfileRepository(mongo.Database)
	postRepo := socialrepo.NewPostRepository(mongo.Database)
	commentRepo := socialrepo.NewCommentRepository(mongo.Database)

	identityUC := identityapp.NewIdentityUseCase(userRepo, cfg.SessionTTL, sessionRepo)
	mediaStore := media.NewStore(minioClient)
	profileUC := socialapp.NewProfileUseCase(profileRepo, identityUC)
	postUC := socialapp.NewPostUseCase(postRepo, commentRepo, identityUC, mediaStore, producer)

	guard := chatapp.NewGuard(chatRepo)
	hub := chatapp.NewHub()
	chatUC := chatapp.NewChatUseCase(chatRepo, msgRepo, guard, identityUC)
	messageUC := chatapp.NewMessageUseCase(chatRepo, msgRepo, guard, identityUC, hub, producer)
	wsHandler := chatapp.NewWSHandler(hub, guard)

	app := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.LogPath),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	app.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(app,
		handlers.NewAuthHandler(identityUC, profileUC),
		handlers.NewChatHandler(chatUC),
		handlers.NewMessageHandler(messageUC),
		handlers.NewSocialHandler(profileUC, postUC),
		handlers.NewMediaHandler(mediaStore),
		wsHandler,
	)

	port := ":" + cfg.Port
	log.Printf("DevCollab listening on %s", port)
	if err := app.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
