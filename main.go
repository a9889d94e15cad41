package main

import (
	"log"
	"os"
	"time"

	"advisory-app/config"
	"advisory-app/database"
	"advisory-app/internal/api/availability"
	routes "advisory-app/internal/app/http"
	"advisory-app/internal/infra/daily"
	rzp "advisory-app/internal/infra/razorpay"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	db, err := database.Connect(config.DB_URL)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	sweep := availability.StartExpirySweep(db)
	defer sweep.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		DB:            db,
		Gateway:       rzp.NewClient(config.RAZORPAY_KEY_ID, config.RAZORPAY_KEY_SECRET),
		Rooms:         daily.NewClient(config.DAILY_API_KEY),
		WebhookSecret: config.RAZORPAY_WEBHOOK_SECRET,
	})

	r.Run(":" + config.PORT)
}
