package internal

const (
	COOKIE_ACCESS_TOKEN_NAME  = "edv_access_token"
	COOKIE_DRAFT_SESSION_NAME = "edv_draft_session"
)
