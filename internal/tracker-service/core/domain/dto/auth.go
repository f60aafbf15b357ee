package dto

type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	CollegeID   string `json:"collegeId"`
	RouteNumber string `json:"routeNumber"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID          int64   `json:"id"`
	UID         string  `json:"uid"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	CollegeID   *string `json:"collegeId"`
	RouteNumber *string `json:"routeNumber"`
	RouteID     *int64  `json:"routeId"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}
