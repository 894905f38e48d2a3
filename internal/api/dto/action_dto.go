package dto

// ReactionReq applies a like or dislike; Action takes 1 (like) or 2
// (dislike).
type ReactionReq struct {
	TargetID uint64 `json:"targetId" binding:"required"`
	Action   int8   `json:"action" binding:"required,oneof=1 2"`
}

type TargetReq struct {
	TargetID uint64 `json:"targetId" binding:"required"`
}

type PostActionStateResp struct {
	Reaction    *int8 `json:"reaction"`
	IsFavorited bool  `json:"isFavorited"`
}
