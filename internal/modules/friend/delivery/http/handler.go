package handler

import (
	"net/http"

	friend "anoa.com/filmorate/internal/modules/friend/service"
	"anoa.com/filmorate/pkg/response"
	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	service friend.FriendService
}

func NewFriendHandler(service friend.FriendService) *FriendHandler {
	return &FriendHandler{service: service}
}

func (h *FriendHandler) AddFriend(c *gin.Context) {
	userID, friendID, ok := pair(c, "friendId")
	if !ok {
		return
	}

	if err := h.service.AddFriend(c.Request.Context(), userID, friendID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID, friendID, ok := pair(c, "friendId")
	if !ok {
		return
	}

	if err := h.service.RemoveFriend(c.Request.Context(), userID, friendID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FriendHandler) GetFriends(c *gin.Context) {
	userID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	friends, err := h.service.GetFriends(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, friends)
}

func (h *FriendHandler) GetCommonFriends(c *gin.Context) {
	userID, otherID, ok := pair(c, "otherId")
	if !ok {
		return
	}

	friends, err := h.service.GetCommonFriends(c.Request.Context(), userID, otherID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, friends)
}

func pair(c *gin.Context, second string) (int64, int64, bool) {
	first, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return 0, 0, false
	}
	other, err := response.ParamID(c, second)
	if err != nil {
		response.ResponseError(c, err)
		return 0, 0, false
	}
	return first, other, true
}
