package routes

import (
	"log/slog"

	"gamehub/internal/clients/ollama"
	"gamehub/internal/config"
	"gamehub/internal/controllers"
	authmw "gamehub/internal/middleware"
	"gamehub/internal/services"
	"gamehub/internal/storage/mysql"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRouter(
	log *slog.Logger,
	storage *mysql.Storage,
	llm *ollama.Client,
	auth *authmw.AuthMiddleware,
	cfg *config.Config,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Cors,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	userService := services.NewUserService(storage, log)
	gameService := services.NewGameService(storage, log)
	voteService := services.NewVoteService(storage, log)
	reportService := services.NewReportService(storage, log)
	commentService := services.NewCommentService(storage, log)

	authController := controllers.NewAuthController(userService, log, cfg.Auth.Secret, cfg.Auth.TokenTTL)
	gameController := controllers.NewGameController(gameService, reportService, log)
	voteController := controllers.NewVoteController(voteService, log)
	commentController := controllers.NewCommentController(commentService, log)
	aiController := controllers.NewAIController(gameService, llm, log)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authController.Register)
		r.Post("/login", authController.Login)
		r.With(auth.ValidateToken).Get("/me", authController.Me)
	})

	r.Route("/api/games", func(r chi.Router) {
		r.Use(auth.ValidateToken)

		r.Get("/", gameController.List)
		r.Post("/", gameController.Create)
		r.Get("/mine", gameController.GetMine)
		r.With(auth.RequireAdmin).Get("/reported", gameController.GetReported)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", gameController.GetByID)
			r.Delete("/", gameController.Delete)
			r.Post("/vote", voteController.Cast)
			r.Post("/report", gameController.Report)

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", commentController.List)
				r.Post("/", commentController.Create)
			})
		})
	})

	r.With(auth.ValidateToken).Delete("/api/comments/{id}", commentController.Delete)
	r.With(auth.ValidateToken).Post("/api/ai/chat", aiController.Chat)

	return r
}
