package clients

const (
	USER_AGENT         = "commentsense-client/1.0 (+https://github.com/spacesedan/commentsense)"
	MAX_RESPONSE_BYTES = 10 << 20
	PREVIEW_LENGTH     = 50
)
