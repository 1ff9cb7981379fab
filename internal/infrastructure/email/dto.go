package email

// WelcomeEmailData - payload của task email:welcome
type WelcomeEmailData struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PostPublishedEmailData - payload của task email:post_published
type PostPublishedEmailData struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	PostID    string `json:"postId"`
	PostTitle string `json:"postTitle"`
}

// EmailRequest là một message đã render, sẵn sàng gửi qua SMTP
type EmailRequest struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}
