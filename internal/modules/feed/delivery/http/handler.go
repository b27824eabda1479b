package handler

import (
	"net/http"

	feed "anoa.com/filmorate/internal/modules/feed/service"
	"anoa.com/filmorate/pkg/logger"
	"anoa.com/filmorate/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

type FeedHandler struct {
	service     feed.FeedService
	redisClient *redis.Client
	upgrader    websocket.Upgrader
}

func NewFeedHandler(service feed.FeedService, redisClient *redis.Client) *FeedHandler {
	return &FeedHandler{
		service:     service,
		redisClient: redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	events, err := h.service.GetFeed(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// Stream pushes the user's new feed events over a websocket as they are
// published on redis.
func (h *FeedHandler) Stream(c *gin.Context) {
	userID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if h.redisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live feed requires redis"})
		return
	}
	if err := h.service.EnsureUser(c.Request.Context(), userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	ctx := c.Request.Context()
	log := logger.Ctx(ctx)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	pubsub := h.redisClient.Subscribe(ctx, feed.Channel(userID))
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		log.Error().Err(err).Msg("feed subscribe failed")
		return
	}
	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Debug().Err(err).Msg("websocket write failed")
				return
			}
		case <-clientClosed:
			return
		case <-ctx.Done():
			return
		}
	}
}
