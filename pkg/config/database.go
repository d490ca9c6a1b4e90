package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nested-comments/backend/internal/models"
	"github.com/nested-comments/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the connection of the configured store driver. Only one of
// Postgres and Mongo is set; both are nil for the memory driver.
type DB struct {
	Driver        string
	Postgres      *gorm.DB
	Mongo         *mongo.Client
	mongoDatabase string
}

// InitDB opens the connection required by cfg.StoreDriver
func InitDB(cfg *Config) (*DB, error) {
	db := &DB{Driver: cfg.StoreDriver, mongoDatabase: cfg.MongoDatabase}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
		}
		postgresDB, err := initPostgres(cfg.PostgresURL, cfg.IsProd())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		db.Postgres = postgresDB

	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable not set")
		}
		mongoClient, err := initMongo(cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		db.Mongo = mongoClient

	case DriverMemory:
		log.Println("Using in-memory store, data is lost on restart.")

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return db, nil
}

// Store migrates the schema of the open connection and returns the
// repositories bound to it.
func (db *DB) Store(ctx context.Context) (*repositories.Store, error) {
	switch {
	case db.Postgres != nil:
		if err := AutoMigrate(db.Postgres); err != nil {
			return nil, fmt.Errorf("failed to auto migrate models: %w", err)
		}
		log.Println("PostgreSQL auto-migrations completed for all models.")
		return repositories.NewPostgresStore(db.Postgres), nil

	case db.Mongo != nil:
		store, err := repositories.NewMongoStore(ctx, db.Mongo.Database(db.mongoDatabase))
		if err != nil {
			return nil, fmt.Errorf("failed to prepare MongoDB collections: %w", err)
		}
		log.Println("MongoDB indexes ensured.")
		return store, nil

	default:
		return repositories.NewMemoryStore(), nil
	}
}

// AutoMigrate creates or updates the tables of all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	)
}

// initPostgres initializes the PostgreSQL database connection using GORM
func initPostgres(connStr string, isProd bool) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}
	if isProd {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(connStr), gormConfig)
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to PostgreSQL!")
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			log.Printf("Error getting SQL DB from GORM: %v\n", err)
		} else {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Error closing PostgreSQL connection: %v\n", err)
			} else {
				log.Println("PostgreSQL connection closed.")
			}
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v\n", err)
		} else {
			log.Println("MongoDB connection closed.")
		}
	}
}
