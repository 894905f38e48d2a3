package consts

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

const (
	// MaxFollowingCount caps how many users a single account may follow.
	MaxFollowingCount = 1000
)
