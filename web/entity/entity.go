// Package entity defines the form payloads exchanged between the browser and
// the controllers.
package entity

// LoginForm is posted by the login page.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// SignUpForm is posted by the registration page.
type SignUpForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// PostForm is posted by the write page. Every field may be empty; an empty
// title gets a timestamp slug.
type PostForm struct {
	Title    string `form:"title"`
	Subtitle string `form:"subtitle"`
	Author   string `form:"author"`
	Body     string `form:"body"`
}

// Health is the /healthz response body.
type Health struct {
	Status       string   `json:"status"`
	Version      string   `json:"version"`
	RecentErrors []string `json:"recentErrors"`
}
