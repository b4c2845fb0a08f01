package types

type VoteInput struct {
	ObjRef string `json:"objRef" validate:"required,max=32"`
	ObjID  uint   `json:"objId" validate:"required"`
	Dir    int    `json:"dir" validate:"required,oneof=1 -1"`
}

type VoteResult struct {
	Dir       int   `json:"dir"`
	UpVotes   int64 `json:"upVotes"`
	DownVotes int64 `json:"downVotes"`
}
