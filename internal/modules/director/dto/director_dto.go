package dto

type CreateDirectorRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type UpdateDirectorRequest struct {
	ID   int64  `json:"id" binding:"required,gt=0"`
	Name string `json:"name" binding:"required,max=255"`
}
