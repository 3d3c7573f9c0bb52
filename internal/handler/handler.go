package handler

import (
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/config"
	"github.com/HarmoniApp/backend-sub000/internal/repository"
	"github.com/HarmoniApp/backend-sub000/internal/scheduler"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate            *validator.Validate
	config              *config.Config
	repository          *repository.Repository
	translator          ut.Translator
	notificationChannel *amqp.Channel
	redisClient         *redis.Client
	batches             *scheduler.BatchRegistry

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notificationCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:            validate,
		config:              cfg,
		repository:          repo,
		translator:          trans,
		notificationChannel: notificationCh,
		redisClient:         rdb,
		batches:             scheduler.NewBatchRegistry(time.Duration(cfg.Scheduler.BatchExpiration) * time.Second),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/schedules", func(r chi.Router) {
		r.Post("/generate", h.GenerateSchedule)
		r.Get("/", h.GetShifts)
		r.Route("/{handle}", func(r chi.Router) {
			r.Use(h.batchHandle)
			r.Post("/revoke", h.RevokeSchedule)
			r.Post("/publish", h.PublishSchedule)
		})
	})

	// read-only catalogs the scheduling callers build their requests from
	h.Mux.Get("/roles", h.GetAllRoles)
	h.Mux.Get("/predefined-shifts", h.GetAllPredefinedShifts)
}
