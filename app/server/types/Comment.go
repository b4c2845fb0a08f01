package types

import "time"

type CommentInput struct {
	Body   string `json:"body" validate:"required,notblank,max=250000"`
	ObjRef string `json:"objRef" validate:"required,max=32"`
	ObjID  uint   `json:"objId" validate:"required"`
}

type CommentUpdateInput struct {
	Body string `json:"body" validate:"required,notblank,max=250000"`
}

type CommentListParams struct {
	ObjRef string `param:"objRef" validate:"required,max=32"`
	ObjID  uint   `param:"objId" validate:"required"`
	Limit  int    `query:"limit" validate:"required,min=1,max=20"`
	Skip   int    `query:"skip" validate:"min=0"`
}

type CommentInfo struct {
	ID        uint      `json:"id"`
	ObjRef    string    `json:"objRef"`
	ObjID     uint      `json:"objId"`
	Author    UserBrief `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
