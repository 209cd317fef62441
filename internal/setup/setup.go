package setup

import (
	"github.com/redis/go-redis/v9"

	"github.com/blogcore-dev/blogcore/internal/captcha"
	"github.com/blogcore-dev/blogcore/internal/config"
	"github.com/blogcore-dev/blogcore/internal/handler"
	"github.com/blogcore-dev/blogcore/internal/jwt"
	"github.com/blogcore-dev/blogcore/internal/logger"
	"github.com/blogcore-dev/blogcore/internal/notify"
	"github.com/blogcore-dev/blogcore/internal/ratelimit"
	"github.com/blogcore-dev/blogcore/internal/service"
	"github.com/blogcore-dev/blogcore/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Storage *pg.Storage
	Handler *handler.Handler
	Jwt     jwt.JwtService
}

// rateLimitStore picks redis when an address is configured, otherwise the
// in-process store. Single instance deployments do not need redis.
func rateLimitStore(cfg *config.Config) ratelimit.Store {
	if cfg.Public.Redis.Addr == "" {
		logger.Log.Info("using in-memory rate limit store")
		return ratelimit.NewMemoryStore()
	}
	logger.Log.Info("using redis rate limit store", "addr", cfg.Public.Redis.Addr)
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Public.Redis.Addr,
		DB:   cfg.Public.Redis.Db,
	})
	return ratelimit.NewRedisStore(client)
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.New(rateLimitStore(cfg))
	verifier := captcha.New(cfg.Private.CaptchaSecret, cfg.Public.Captcha.ScoreThreshold, cfg.Public.Captcha.Testing)
	notifier := notify.New(notify.NewSMTPSender(&cfg.Private.Email), cfg.Private.Email.AdminEmail)
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	limits := cfg.Public.RateLimits
	submission := service.NewSubmission(storage, limiter, verifier, notifier, limits.CommentAdd)
	comment := service.NewComment(storage)
	moderation := service.NewModeration(storage, notifier)
	contact := service.NewContact(limiter, verifier, notifier, limits.ContactForm)
	search := service.NewSearch(storage, limiter, limits.BlogSearch)
	auth := service.NewAuth(storage, jwtService, limiter, limits.UserSignup)

	h := handler.New(submission, comment, moderation, contact, search, auth, limiter, storage, cfg)

	return &Dependencies{
		Config:  cfg,
		Storage: storage,
		Handler: h,
		Jwt:     jwtService,
	}, nil
}
