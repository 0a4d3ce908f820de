package consts

const (
	TokenRevokedKey = "auth:token:revoked:"
)
