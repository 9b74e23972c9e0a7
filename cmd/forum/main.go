package main

import (
	"context"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/example/forum-api/internal/forum"
	"github.com/example/forum-api/internal/handlers"
	"github.com/example/forum-api/internal/platform/auth"
	"github.com/example/forum-api/internal/platform/config"
	"github.com/example/forum-api/internal/platform/db"
	"github.com/example/forum-api/internal/platform/events"
	"github.com/example/forum-api/internal/platform/httpserver"
	"github.com/example/forum-api/internal/platform/logging"
	"github.com/example/forum-api/internal/platform/natsconn"
	"github.com/example/forum-api/internal/platform/run"
	"github.com/example/forum-api/internal/store"
	"github.com/example/forum-api/internal/tokens"
)

// stores bundles one backend's implementation of every port.
type stores struct {
	Users    store.UserStore
	Auths    store.AuthenticationStore
	Threads  store.ThreadStore
	Comments store.CommentStore
	Replies  store.ReplyStore
	Likes    store.LikeStore
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	st, ready, closePool := initStores(log)
	if closePool != nil {
		defer closePool()
	}

	svc := forum.Service{
		Threads:  st.Threads,
		Comments: st.Comments,
		Replies:  st.Replies,
		Likes:    st.Likes,
	}
	ts := tokens.Service{
		Secret:          cfg.Auth.JWTSecret,
		AccessTokenTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}
	verifier := auth.JWTVerifier{Secret: cfg.Auth.JWTSecret}

	pub, closeNATS := initEvents(log)
	if closeNATS != nil {
		defer closeNATS()
	}

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{ReadyFunc: ready})

	r.Post("/users", handlers.Register(st.Users, pub))
	r.Post("/authentications", handlers.Login(st.Users, st.Auths, ts, pub))
	r.Put("/authentications", handlers.RefreshToken(st.Auths, ts))
	r.Delete("/authentications", handlers.Logout(st.Auths))
	r.Get("/threads/{thread_id}", handlers.GetThread(svc))

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))
		r.Post("/threads", handlers.CreateThread(svc, pub))
		r.Post("/threads/{thread_id}/comments", handlers.CreateComment(svc, pub))
		r.Delete("/threads/{thread_id}/comments/{comment_id}", handlers.DeleteComment(svc, pub))
		r.Post("/threads/{thread_id}/comments/{comment_id}/replies", handlers.CreateReply(svc, pub))
		r.Delete("/threads/{thread_id}/comments/{comment_id}/replies/{reply_id}", handlers.DeleteReply(svc, pub))
		r.Put("/threads/{thread_id}/comments/{comment_id}/likes", handlers.ToggleLike(svc, pub))
	})

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(context.Background())
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

// initStores selects the storage backend. In production (APP_ENV=production)
// it requires a working Postgres connection and terminates the process
// otherwise; in development it falls back to in-memory stores.
func initStores(log *zap.Logger) (stores, func() error, func()) {
	isProd := strings.EqualFold(strings.TrimSpace(os.Getenv("APP_ENV")), "production")

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		if isProd {
			log.Error("DATABASE_URL is required in production")
			_ = log.Sync()
			os.Exit(1)
		}
		log.Warn("DATABASE_URL not set, using in-memory stores (development only)")
		return memoryStores(), nil, nil
	}

	pool, err := db.Open(context.Background(), dsn)
	if err != nil {
		if isProd {
			log.Error("postgres is required in production but unavailable", zap.Error(err))
			_ = log.Sync()
			os.Exit(1)
		}
		log.Warn("postgres unavailable, falling back to in-memory stores", zap.Error(err))
		return memoryStores(), nil, nil
	}

	log.Info("stores: postgres")
	st := stores{
		Users:    store.NewPostgresUserStore(pool),
		Auths:    store.NewPostgresAuthenticationStore(pool),
		Threads:  store.NewPostgresThreadStore(pool),
		Comments: store.NewPostgresCommentStore(pool),
		Replies:  store.NewPostgresReplyStore(pool),
		Likes:    store.NewPostgresLikeStore(pool),
	}
	ready := func() error { return pool.Ping(context.Background()) }
	return st, ready, pool.Close
}

func memoryStores() stores {
	users := store.NewInMemoryUserStore()
	return stores{
		Users:    users,
		Auths:    store.NewInMemoryAuthenticationStore(),
		Threads:  store.NewInMemoryThreadStore(users),
		Comments: store.NewInMemoryCommentStore(users),
		Replies:  store.NewInMemoryReplyStore(users),
		Likes:    store.NewInMemoryLikeStore(),
	}
}

// initEvents connects to NATS JetStream for the activity event stream.
// NATS is optional; without it the publisher is a no-op.
func initEvents(log *zap.Logger) (*events.Publisher, func()) {
	nc, err := natsconn.Connect(natsconn.Options{})
	if err != nil {
		log.Warn("nats unavailable, activity events disabled", zap.Error(err))
		return nil, nil
	}
	js, err := nc.JetStream()
	if err != nil {
		log.Warn("jetstream unavailable, activity events disabled", zap.Error(err))
		nc.Close()
		return nil, nil
	}
	log.Info("activity events: nats jetstream")
	return events.New(js, log), nc.Close
}
