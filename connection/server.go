package connection

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	authcontroller "taskhive/controller/auth"
	statscontroller "taskhive/controller/stats"
	streamcontroller "taskhive/controller/stream"
	taskcontroller "taskhive/controller/task"
	"taskhive/realtime"
	"taskhive/services"
)

func StartServer() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found or failed to load")
	}

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	store := newStore()

	hub := realtime.NewHub()
	defer hub.Close()

	var notifier realtime.Notifier = hub
	if url := os.Getenv("NATS_URL"); url != "" {
		nn, err := realtime.NewNATSNotifier(url, hub)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer nn.Close()
		notifier = nn
	}
	broadcaster := realtime.NewBroadcaster(notifier)

	authcontroller.AuthController(router, store)
	taskcontroller.TaskController(router, store, broadcaster)
	taskcontroller.CollaboratorController(router, store, broadcaster)
	statscontroller.StatsController(router, store)
	streamcontroller.StreamController(router, hub)

	router.Run()
}

// newStore picks Firestore when credentials are configured and falls back to
// the in-memory store for local runs.
func newStore() services.Store {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		log.Println("Warning: GOOGLE_APPLICATION_CREDENTIALS not set, using in-memory store")
		return services.NewMemoryStore()
	}

	fb, err := FBConnection()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	if err := services.MigrateLegacyCollaborators(context.Background(), fb); err != nil {
		log.Fatalf("Failed to migrate legacy collaborators: %v", err)
	}
	return services.NewFirestoreStore(fb)
}
