package constants

// 返回给客户端的消息 key ，前端据此翻译
const (
	MsgDocumentDoesNotExist = "general.documentDoesNotExist"
	MsgNotAllowed           = "not-allowed"
	MsgUsernameExists       = "username-exists"
	MsgValidationError      = "validation-error"
	MsgUpdateSuccess        = "update-success"
	MsgDeleteSuccess        = "delete-success"
	MsgChainUnavailable     = "chain.unavailable"
	MsgOAuthUnavailable     = "oauth.unavailable"
	MsgInvalidToken         = "invalid-token"
)

const (
	MsgLanguageNotSupported = "general.languageNotSupported"
)
