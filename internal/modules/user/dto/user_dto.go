package dto

import (
	"anoa.com/filmorate/internal/entity"
	commonDto "anoa.com/filmorate/pkg/dto"
)

type CreateUserRequest struct {
	Email    string         `json:"email" binding:"required,email"`
	Login    string         `json:"login" binding:"required,nospaces"`
	Name     string         `json:"name"`
	Birthday commonDto.Date `json:"birthday" binding:"required,notfuture"`
}

type UpdateUserRequest struct {
	ID int64 `json:"id" binding:"required,gt=0"`
	CreateUserRequest
}

type UserResponse struct {
	ID       int64          `json:"id"`
	Email    string         `json:"email"`
	Login    string         `json:"login"`
	Name     string         `json:"name"`
	Birthday commonDto.Date `json:"birthday"`
}

func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: commonDto.NewDate(u.Birthday),
	}
}

func NewUserResponses(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
