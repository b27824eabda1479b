package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"anoa.com/filmorate/internal/config"
	"anoa.com/filmorate/internal/middleware"
	"anoa.com/filmorate/pkg/logger"
	"anoa.com/filmorate/pkg/validator"

	catalogHttp "anoa.com/filmorate/internal/modules/catalog/delivery/http"
	catalogRepo "anoa.com/filmorate/internal/modules/catalog/repository"
	catalogService "anoa.com/filmorate/internal/modules/catalog/service"

	directorHttp "anoa.com/filmorate/internal/modules/director/delivery/http"
	directorRepo "anoa.com/filmorate/internal/modules/director/repository"
	directorService "anoa.com/filmorate/internal/modules/director/service"

	feedHttp "anoa.com/filmorate/internal/modules/feed/delivery/http"
	feedRepo "anoa.com/filmorate/internal/modules/feed/repository"
	feedService "anoa.com/filmorate/internal/modules/feed/service"

	filmHttp "anoa.com/filmorate/internal/modules/film/delivery/http"
	filmRepo "anoa.com/filmorate/internal/modules/film/repository"
	filmService "anoa.com/filmorate/internal/modules/film/service"

	friendHttp "anoa.com/filmorate/internal/modules/friend/delivery/http"
	friendRepo "anoa.com/filmorate/internal/modules/friend/repository"
	friendService "anoa.com/filmorate/internal/modules/friend/service"

	recHttp "anoa.com/filmorate/internal/modules/recommendation/delivery/http"
	recRepo "anoa.com/filmorate/internal/modules/recommendation/repository"
	recService "anoa.com/filmorate/internal/modules/recommendation/service"

	reviewHttp "anoa.com/filmorate/internal/modules/review/delivery/http"
	reviewRepo "anoa.com/filmorate/internal/modules/review/repository"
	reviewService "anoa.com/filmorate/internal/modules/review/service"

	searchService "anoa.com/filmorate/internal/modules/search/service"

	userHttp "anoa.com/filmorate/internal/modules/user/delivery/http"
	userRepo "anoa.com/filmorate/internal/modules/user/repository"
	userService "anoa.com/filmorate/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the external clients the server runs against. Redis and
// Meilisearch are optional.
type Deps struct {
	DB          *gorm.DB
	RedisClient *redis.Client
	MeiliClient meilisearch.ServiceManager
}

type Server struct {
	engine      *gin.Engine
	cfg         *config.Config
	limiter     *middleware.RateLimiter
	stopLimiter chan struct{}
}

func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	if err := validator.Register(); err != nil {
		return nil, err
	}

	db := deps.DB
	userRepo := userRepo.NewUserRepository(db)
	genreRepo := catalogRepo.NewGenreRepository(db)
	mpaRepo := catalogRepo.NewMpaRepository(db)
	directorRepo := directorRepo.NewDirectorRepository(db)
	filmRepo := filmRepo.NewRepository(db, filmRepo.NewAssociationLoader(db))

	// Feed Module
	feedSvc := feedService.NewFeedService(feedRepo.NewFeedRepository(db), userRepo, deps.RedisClient)
	feedHandler := feedHttp.NewFeedHandler(feedSvc, deps.RedisClient)

	var index searchService.FilmIndex
	if deps.MeiliClient != nil {
		index = searchService.NewMeiliFilmIndex(deps.MeiliClient)
	}
	syncer := searchService.NewSyncer(index, filmRepo)
	if err := syncer.Backfill(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("film index backfill failed, search falls back to the database on index errors")
	}

	userHandler := userHttp.NewUserHandler(userService.NewUserService(userRepo, syncer))

	friendSvc := friendService.NewFriendService(friendRepo.NewFriendRepository(db), userRepo, feedSvc)
	friendHandler := friendHttp.NewFriendHandler(friendSvc)

	catalogHandler := catalogHttp.NewCatalogHandler(catalogService.NewCatalogService(genreRepo, mpaRepo))
	directorHandler := directorHttp.NewDirectorHandler(directorService.NewDirectorService(directorRepo, syncer))

	filmSvc := filmService.NewService(filmRepo, userRepo, genreRepo, mpaRepo, directorRepo, feedSvc, index)
	filmHandler := filmHttp.NewFilmHandler(filmSvc)

	reviewSvc := reviewService.NewReviewService(reviewRepo.NewReviewRepository(db), userRepo, filmRepo, feedSvc)
	reviewHandler := reviewHttp.NewReviewHandler(reviewSvc)

	recSvc := recService.NewRecommendationService(recRepo.NewRecommendationRepository(db), userRepo, filmRepo)
	recHandler := recHttp.NewRecommendationHandler(recSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger("/users/:id/feed/ws"))

	s := &Server{engine: router, cfg: cfg}
	if cfg.RateLimitRPS > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		s.stopLimiter = make(chan struct{})
		go s.limiter.Run(10*time.Minute, s.stopLimiter)
		router.Use(s.limiter.Middleware())
	}

	users := router.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.PUT("", userHandler.UpdateUser)
		users.GET("", userHandler.GetAllUsers)
		users.GET("/:id", userHandler.GetUser)
		users.DELETE("/:id", userHandler.DeleteUser)

		users.PUT("/:id/friends/:friendId", friendHandler.AddFriend)
		users.DELETE("/:id/friends/:friendId", friendHandler.RemoveFriend)
		users.GET("/:id/friends", friendHandler.GetFriends)
		users.GET("/:id/friends/common/:otherId", friendHandler.GetCommonFriends)

		users.GET("/:id/feed", feedHandler.GetFeed)
		users.GET("/:id/feed/ws", feedHandler.Stream)
		users.GET("/:id/recommendations", recHandler.GetRecommendations)
	}

	films := router.Group("/films")
	{
		films.POST("", filmHandler.CreateFilm)
		films.PUT("", filmHandler.UpdateFilm)
		films.GET("", filmHandler.GetAllFilms)
		films.GET("/popular", filmHandler.GetPopular)
		films.GET("/search", filmHandler.Search)
		films.GET("/common", filmHandler.GetCommon)
		films.GET("/director/:directorId", filmHandler.GetByDirector)
		films.GET("/:id", filmHandler.GetFilm)
		films.DELETE("/:id", filmHandler.DeleteFilm)
		films.PUT("/:id/like/:userId", filmHandler.AddLike)
		films.DELETE("/:id/like/:userId", filmHandler.RemoveLike)
	}

	reviews := router.Group("/reviews")
	{
		reviews.POST("", reviewHandler.CreateReview)
		reviews.PUT("", reviewHandler.UpdateReview)
		reviews.GET("", reviewHandler.GetReviews)
		reviews.GET("/:id", reviewHandler.GetReview)
		reviews.DELETE("/:id", reviewHandler.DeleteReview)
		reviews.PUT("/:id/like/:userId", reviewHandler.AddLike)
		reviews.PUT("/:id/dislike/:userId", reviewHandler.AddDislike)
		reviews.DELETE("/:id/like/:userId", reviewHandler.RemoveReaction)
		reviews.DELETE("/:id/dislike/:userId", reviewHandler.RemoveReaction)
	}

	directors := router.Group("/directors")
	{
		directors.POST("", directorHandler.CreateDirector)
		directors.PUT("", directorHandler.UpdateDirector)
		directors.GET("", directorHandler.GetAllDirectors)
		directors.GET("/:id", directorHandler.GetDirector)
		directors.DELETE("/:id", directorHandler.DeleteDirector)
	}

	router.GET("/genres", catalogHandler.GetAllGenres)
	router.GET("/genres/:id", catalogHandler.GetGenre)
	router.GET("/mpa", catalogHandler.GetAllMpa)
	router.GET("/mpa/:id", catalogHandler.GetMpa)

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.stop()
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.stop()
	return err
}

func (s *Server) stop() {
	if s.stopLimiter != nil {
		close(s.stopLimiter)
		s.stopLimiter = nil
	}
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
