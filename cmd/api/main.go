package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/cezarfreitas/completa-hub/internal/config"
	"github.com/cezarfreitas/completa-hub/internal/infra/database"
	"github.com/cezarfreitas/completa-hub/internal/infra/http/handlers"
	"github.com/cezarfreitas/completa-hub/internal/infra/http/middleware"
	"github.com/cezarfreitas/completa-hub/internal/infra/integration/completa"
	"github.com/cezarfreitas/completa-hub/internal/infra/integration/geocode"
	"github.com/cezarfreitas/completa-hub/internal/infra/integration/n8n"
	"github.com/cezarfreitas/completa-hub/internal/infra/mail"
	"github.com/cezarfreitas/completa-hub/internal/infra/queue"
	"github.com/cezarfreitas/completa-hub/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	adminPassword := cfg.AdminPassword
	if adminPassword == "" && !cfg.IsProduction() {
		adminPassword = "admin"
	}

	// 1. Repositórios
	integrationRepo := database.NewIntegrationRepository(db)
	logRepo := database.NewVerificationLogRepository(db)

	// 2. Gateways
	geocoder := geocode.NewClient(cfg.GoogleGeocodeAPIKey)
	completaClient := completa.NewClient()
	n8nClient := n8n.NewClient()

	// 3. Fila + Worker. Sem RabbitMQ o serviço roda, só perde o
	// encaminhamento assíncrono (webhook n8n e email de lead).
	var producer usecase.QueueProducerInterface
	var rabbitConn *amqp.Connection
	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Printf("⚠️ RabbitMQ indisponível, encaminhamento assíncrono desativado: %v", err)
	} else {
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		var mailer queue.LeadNotifier
		if cfg.MailHost != "" {
			mailer = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass)
		}

		worker := queue.NewWorker(rabbitMQ.Ch, n8nClient, mailer)
		go worker.Start(queue.QueueName)
	}

	// 4. UseCases
	verificationUC := usecase.NewVerificationUseCase(geocoder, completaClient, cfg.GoogleGeocodeAPIKey)
	dashboardUC := usecase.NewDashboardUseCase(integrationRepo, logRepo)

	// 5. Handlers
	verificationHandler := handlers.NewVerificationHandler(integrationRepo, logRepo, verificationUC, producer)
	documentationHandler := handlers.NewDocumentationHandler(integrationRepo, logRepo)
	integrationHandler := handlers.NewIntegrationHandler(integrationRepo)
	logsHandler := handlers.NewLogsHandler(logRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	authHandler := handlers.NewAuthHandler(cfg.AdminUser, adminPassword, cfg.IsProduction())
	seedHandler := handlers.NewSeedHandler(integrationRepo)
	configProxyHandler := handlers.NewConfigProxyHandler(n8nClient)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, cfg.GoogleGeocodeAPIKey)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Origin"},
	}))

	r.Get("/api/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/auth/login", authHandler.HandleLogin)
	r.Post("/api/auth/logout", authHandler.HandleLogout)
	r.Post("/api/seed", seedHandler.Handle)
	r.Get("/api/dashboard/stats", dashboardHandler.Handle)
	r.Get("/api/config-proxy", configProxyHandler.Handle)

	// Rotas administrativas: exigem o cookie de sessão
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Get("/api/integrations", integrationHandler.HandleList)
		r.Post("/api/integrations", integrationHandler.HandleCreate)
		r.Get("/api/integrations/{id}", integrationHandler.HandleGet)
		r.Put("/api/integrations/{id}", integrationHandler.HandleUpdate)
		r.Delete("/api/integrations/{id}", integrationHandler.HandleDelete)
		r.Get("/api/logs", logsHandler.Handle)
	})

	// Webhooks públicos por cliente. Chi resolve rotas estáticas antes de
	// {slug}, então as rotas administrativas acima não colidem.
	r.Post("/api/{slug}", verificationHandler.Handle)
	r.Post("/api/{slug}/viabilidade", verificationHandler.Handle)
	r.Post("/api/{slug}/documentacao", documentationHandler.Handle)

	addr := ":" + cfg.ServerPort
	log.Printf("🔥 Completa Hub rodando na porta %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
