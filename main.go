package main

import (
	"log"
	"net/http"
	"os"

	"flare_server/controllers"
	"flare_server/middleware"
	"flare_server/routes"
	"flare_server/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize DynamoDB client and stores
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	userStore := &services.DynamoUserStore{Dynamo: dynamoService}
	matchStore := &services.DynamoMatchStore{Dynamo: dynamoService}
	log.Println("DynamoDB client initialized.")

	// Optional redis-backed profile cache
	var cache services.ProfileCache
	if redisClient := services.NewRedisClient(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD")); redisClient != nil {
		cache = &services.RedisProfileCache{Client: redisClient}
		log.Println("Redis profile cache enabled.")
	}

	// Initialize Services
	userProfileService := &services.UserProfileService{Users: userStore, Cache: cache}
	interactionService := &services.InteractionService{Users: userStore, Matches: matchStore}
	accessService := &services.AccessService{Users: userStore}
	chatService := &services.ChatService{Matches: matchStore}
	matchService := &services.MatchService{Users: userStore, Matches: matchStore, Cache: cache}

	s3Service, err := services.InitializeS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	jwtManager := middleware.NewJWTManager(jwtSecret)

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize the router
	r := mux.NewRouter()
	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")

	// Authenticated API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(jwtManager))

	routes.RegisterUserProfileRoutes(api, userProfileService)
	routes.RegisterInteractionRoutes(api, interactionService)
	routes.RegisterAccessRoutes(api, accessService)
	routes.RegisterChatRoutes(api, chatService)
	routes.RegisterMatchRoutes(api, matchService)
	routes.RegisterS3Routes(api, s3Service)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
