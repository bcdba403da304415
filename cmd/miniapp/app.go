package main

import (
	"context"
	"fmt"
	"time"

	"course-miniapp/internal/common/config"
	"course-miniapp/internal/common/logger"
	"course-miniapp/internal/features/access"
	"course-miniapp/internal/features/achievements"
	"course-miniapp/internal/features/certificates"
	"course-miniapp/internal/features/challenges"
	"course-miniapp/internal/features/communities"
	"course-miniapp/internal/features/courses"
	"course-miniapp/internal/features/favorites"
	"course-miniapp/internal/features/lessons"
	"course-miniapp/internal/features/leaderboard"
	"course-miniapp/internal/features/payments"
	"course-miniapp/internal/features/profile"
	"course-miniapp/internal/features/progress"
	"course-miniapp/internal/features/reviews"
	"course-miniapp/internal/features/support"
	"course-miniapp/internal/identity"
	"course-miniapp/internal/platform/apiclient"
	platformbadger "course-miniapp/internal/platform/badger"
	platformredis "course-miniapp/internal/platform/redis"
	badgerstore "course-miniapp/internal/storage/badger"
	"course-miniapp/internal/storage/memory"
	redisstore "course-miniapp/internal/storage/redis"
)

// app holds one wired client and a facade per resource.
type app struct {
	resolver *identity.Resolver
	client   *apiclient.Client
	closers  []func() error

	access       *access.Service
	achievements *achievements.Service
	certificates *certificates.Service
	challenges   *challenges.Service
	communities  *communities.Service
	courses      *courses.Service
	favorites    *favorites.Service
	lessons      *lessons.Service
	leaderboard  *leaderboard.Service
	payments     *payments.Service
	profile      *profile.Service
	progress     *progress.Service
	reviews      *reviews.Service
	support      *support.Service
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.resolver = identity.NewResolver(store, cfg.Telegram.DevDefaultID, logger.Component("identity"))

	baseURL, err := cfg.BaseURL()
	if err != nil {
		a.close()
		return nil, err
	}
	origin, err := cfg.OriginURL()
	if err != nil {
		a.close()
		return nil, err
	}

	a.client, err = apiclient.New(baseURL, a.resolver,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithLaunch(identity.LaunchContext{InitData: cfg.Telegram.InitData}),
		apiclient.WithHost(identity.HostContext{Hostname: origin.Hostname(), DevFlag: cfg.App.DevMode}),
		apiclient.WithRateLimit(cfg.API.RateLimitRPS, cfg.API.RateLimitBurst),
		apiclient.WithLogger(logger.Component("apiclient")),
	)
	if err != nil {
		a.close()
		return nil, err
	}

	a.access = access.NewService(a.client)
	a.achievements = achievements.NewService(a.client)
	a.certificates = certificates.NewService(a.client)
	a.challenges = challenges.NewService(a.client)
	a.communities = communities.NewService(a.client)
	a.courses = courses.NewService(a.client)
	a.favorites = favorites.NewService(a.client)
	a.lessons = lessons.NewService(a.client)
	a.leaderboard = leaderboard.NewService(a.client)
	a.payments = payments.NewService(a.client)
	a.profile = profile.NewService(a.client)
	a.progress = progress.NewService(a.client)
	a.reviews = reviews.NewService(a.client)
	a.support = support.NewService(a.client)

	logger.Debug().
		Str("base_url", baseURL).
		Str("store", cfg.Store.Driver).
		Bool("dev_host", identity.HostContext{Hostname: origin.Hostname(), DevFlag: cfg.App.DevMode}.IsDevHost()).
		Msg("Client initialized")
	return a, nil
}

func (a *app) openStore(ctx context.Context, cfg *config.Config) (identity.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return memory.New(), nil

	case config.StoreRedis:
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		client, err := platformredis.Open(pingCtx, platformredis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("redis open: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return redisstore.New(client.Client), nil

	case config.StoreBadger:
		db, err := platformbadger.Open(cfg.Badger.Dir)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return badgerstore.New(db), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn().Err(err).Msg("Failed to close store")
		}
	}
	a.closers = nil
}
