package shared

// Asynq task types
const (
	TypeSendWelcomeEmail       = "email:welcome"
	TypeSendPostPublishedEmail = "email:post_published"
)

// Queue names
const (
	QueueEmail = "email"
)

// Context keys dùng chung giữa middleware và handler
const (
	ContextKeyAuthorID  = "authorID"
	ContextKeyRequestID = "request_id"
)
