package model

import "github.com/golang-jwt/jwt/v5"

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type ResponseApi struct {
	ApiMessage string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// Claims is the JWT payload. The username travels in the subject.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller as seen by handlers.
type Principal struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type WhoAmI struct {
	Principal
	SSN         *string `json:"ssn"`
	LedProjects []int   `json:"led_projects"`
}
