package model

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TrashActionRequest struct {
	Action string `json:"action"`
}

type CreateJobPostRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	Tags           []string `json:"tags"`
}

type CreateThreadRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type CreateThreadPostRequest struct {
	Body string `json:"body"`
}

type TrashListData struct {
	Items []TrashRecord `json:"items"`
}
