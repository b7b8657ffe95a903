package model

import "strings"

const (
	RoleAdmin    = "admin"
	RoleLeader   = "leader"
	RoleEmployee = "employee"
)

// User is a login credential. PasswordHash holds either a bcrypt hash or a
// legacy plaintext password.
type User struct {
	UserID       int    `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

func (u User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

// UserWithEmployee is a credential paired with its best-guess employee.
type UserWithEmployee struct {
	Username   string  `json:"username"`
	Role       string  `json:"role"`
	SSN        *string `json:"ssn"`
	FullName   *string `json:"full_name"`
	Department *string `json:"department"`
}

type CreateEmployeeRequest struct {
	SSN      string `json:"ssn" binding:"required,max=9"`
	Fname    string `json:"fname"`
	Lname    string `json:"lname"`
	Dno      int    `json:"dno"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateEmployeeResponse struct {
	Employee Employee `json:"employee"`
	Username string   `json:"username,omitempty"`
	Role     string   `json:"role,omitempty"`
	Password string   `json:"password,omitempty"`
}

type AssignLeaderRequest struct {
	LeaderSSN string `json:"leader_ssn" binding:"required"`
	Username  string `json:"username"`
}
