package main

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/monteeverest/backend/internal/config"
	"github.com/monteeverest/backend/internal/infra/database"
	"github.com/monteeverest/backend/internal/infra/http/handlers"
	"github.com/monteeverest/backend/internal/infra/http/middleware"
	"github.com/monteeverest/backend/internal/infra/integration/pagarme"
	"github.com/monteeverest/backend/internal/infra/mail"
	"github.com/monteeverest/backend/internal/infra/queue"
	"github.com/monteeverest/backend/internal/infra/worker"
	"github.com/monteeverest/backend/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 1. Repositórios
	professionalRepo := database.NewProfessionalRepository(db)
	planRepo := database.NewPlanRepository(db)
	paymentRepo := database.NewPaymentRepository(db)
	configRepo := database.NewSystemConfigRepository(db)

	// 2. Gateways e Adapters
	gateway := pagarme.NewClient(cfg.PagarmeURL, cfg.PagarmeAPIKey, configRepo)
	mailSender := mail.NewEmailSender(
		cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword,
		cfg.MailFrom, cfg.FrontendURL+"/login",
	)

	// 3. Fila de notificações (opcional: sem RabbitMQ o envio é inline)
	var notificationQueue usecase.NotificationQueue
	var rabbitMQ *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Close()
		notificationQueue = queue.NewProducer(rabbitMQ.Ch)

		notificationWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
		notificationWorker.Start(queue.QueueName)
	} else {
		log.Println("⚠️ RABBITMQ_URL não configurada, emails serão enviados inline")
	}

	// 4. UseCases
	checkoutUC := usecase.NewCreateCheckoutUseCase(professionalRepo, planRepo, gateway, cfg.SuccessURL)
	registerUC := usecase.NewRegisterProfessionalUseCase(professionalRepo, planRepo, checkoutUC)
	webhookUC := usecase.NewProcessWebhookUseCase(professionalRepo, paymentRepo, planRepo, notificationQueue, mailSender)
	webhookUC.RecordPayment = middleware.RecordPayment
	webhookUC.RecordActivation = middleware.RecordActivation
	expireUC := usecase.NewExpireSubscriptionsUseCase(professionalRepo)

	// 5. Workers de manutenção
	ctx := context.Background()
	go worker.NewExpiryWorker(expireUC).Start(ctx)
	go worker.NewRegistrationReaper(professionalRepo).Start(ctx)

	// 6. Handlers
	paymentHandler := handlers.NewPaymentHandler(registerUC, checkoutUC, professionalRepo)
	webhookHandler := handlers.NewWebhookHandler(webhookUC)
	planHandler := handlers.NewPlanHandler(planRepo, gateway)
	configHandler := handlers.NewConfigHandler(configRepo)
	authHandler := handlers.NewAuthHandler(professionalRepo, cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword)
	var rabbitConn *amqp091.Connection
	if rabbitMQ != nil {
		rabbitConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.FrontendURL, "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Get("/plans", planHandler.HandleList)

		r.Route("/payments", func(r chi.Router) {
			r.Post("/webhook", webhookHandler.Handle)
			r.Post("/register-with-checkout", paymentHandler.HandleRegisterWithCheckout)
			r.Get("/status/{professionalId}", paymentHandler.HandleGetStatus)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTSecret))
				r.Post("/create-checkout", paymentHandler.HandleCreateCheckout)
				r.Post("/create-pix", paymentHandler.HandleCreatePix)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Use(middleware.AdminOnly)
			r.Post("/plans/{id}/sync-pagarme", planHandler.HandleSyncPagarme)
			r.Get("/config", configHandler.HandleGet)
			r.Put("/config", configHandler.HandleSet)
		})
	})

	addr := ":" + strconv.Itoa(cfg.Port)
	log.Printf("🔥 Monte Everest API rodando na porta %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
