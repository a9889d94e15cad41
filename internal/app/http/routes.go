package routes

import (
	adminapi "advisory-app/internal/api/admin"
	advisorsapi "advisory-app/internal/api/advisors"
	assessmentsapi "advisory-app/internal/api/assessments"
	authapi "advisory-app/internal/api/auth"
	availabilityapi "advisory-app/internal/api/availability"
	bookingsapi "advisory-app/internal/api/bookings"
	chatapi "advisory-app/internal/api/chat"
	paymentsapi "advisory-app/internal/api/payments"
	razorpaywebhooks "advisory-app/internal/api/razorpaywebhook"
	reviewsapi "advisory-app/internal/api/reviews"
	videoapi "advisory-app/internal/api/video"
	"advisory-app/internal/app/http/middleware"
	rzp "advisory-app/internal/infra/razorpay"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is everything the route tree needs; handlers receive their
// dependencies here instead of reaching for globals.
type Deps struct {
	DB            *gorm.DB
	Gateway       rzp.Gateway
	Rooms         videoapi.RoomCreator
	WebhookSecret string
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	authH := authapi.NewHandler(deps.DB)
	advisorsH := advisorsapi.NewHandler(deps.DB)
	availabilityH := availabilityapi.NewHandler(deps.DB)
	bookingsH := bookingsapi.NewHandler(deps.DB)
	paymentsH := paymentsapi.NewHandler(deps.DB, deps.Gateway)
	webhookH := razorpaywebhooks.NewHandler(deps.DB, deps.WebhookSecret)
	reviewsH := reviewsapi.NewHandler(deps.DB)
	chatH := chatapi.NewHandler(deps.DB)
	videoH := videoapi.NewHandler(deps.DB, deps.Rooms)
	assessmentsH := assessmentsapi.NewHandler(deps.DB)
	adminH := adminapi.NewHandler(deps.DB)

	// The webhook sees its raw body; no sanitation, no auth middleware.
	r.POST("/webhook/razorpay", webhookH.HandleWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/advisors", advisorsH.ListAdvisors)
	r.GET("/advisors/:id", advisorsH.GetAdvisor)
	r.GET("/advisors/:id/slots", availabilityH.ListSlots)
	r.GET("/advisors/:id/reviews", reviewsH.ListForAdvisor)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authH.Register)
	public.POST("/login", authH.Login)
	public.GET("/verify", authH.VerifyEmail)
	public.POST("/resend-verification", authH.ResendVerification)
	public.POST("/request-password-reset", authH.RequestPasswordReset)
	public.POST("/reset-password", authH.ResetPassword)

	public.GET("/auth/google", authH.GoogleStart)
	public.GET("/auth/google/callback", authH.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.POST("/change-password", authH.ChangePassword)

	auth.POST("/availability/reserve", availabilityH.Reserve)
	auth.DELETE("/availability/reserve", availabilityH.Release)

	auth.POST("/bookings", bookingsH.Create)
	auth.GET("/bookings", bookingsH.List)
	auth.POST("/bookings/:id/cancel", bookingsH.Cancel)
	auth.POST("/bookings/:id/complete", bookingsH.Complete)

	auth.POST("/payments/order", paymentsH.CreateOrder)
	auth.POST("/payments/verify", paymentsH.VerifyPayment)
	auth.GET("/payments", paymentsH.GetPaymentHistory)

	auth.POST("/reviews", reviewsH.Create)

	auth.POST("/bookings/:id/messages", chatH.Send)
	auth.GET("/bookings/:id/messages", chatH.List)

	auth.POST("/bookings/:id/video-room", videoH.GetOrCreateRoom)

	auth.POST("/assessments", assessmentsH.Submit)
	auth.GET("/assessments/latest", assessmentsH.Latest)

	// Approved advisors
	advisor := auth.Group("/advisor")
	advisor.Use(middleware.RequireApprovedAdvisor(deps.DB))
	advisor.POST("/slots", availabilityH.CreateSlot)
	advisor.PUT("/profile", advisorsH.UpdateOwnProfile)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminH.AdminDashboard)
	admin.GET("/users", adminH.ListAllUsers)
	admin.GET("/payments", adminH.ListAllPayments)
	admin.GET("/user/:id", adminH.GetUserDetails)
	admin.GET("/advisors/pending", adminH.ListPendingAdvisors)
	admin.POST("/advisors/:id/approve", adminH.ApproveAdvisor)
}
