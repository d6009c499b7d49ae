package model

import "github.com/golang-jwt/jwt/v5"

// SupervisorClaims are JWT claims for supervisor authentication
type SupervisorClaims struct {
	SupervisorID string `json:"supervisorId"`
	jwt.RegisteredClaims
}

// RespondentClaims are JWT claims for a respondent-scoped token
type RespondentClaims struct {
	RespondentID string `json:"respondentId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for supervisor login
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token        string `json:"token"`
	SupervisorID string `json:"supervisorId"`
}
