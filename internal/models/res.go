package models

import "github.com/devconnect-app/server/internal/apperr"

// Response envelopes for the JSON surface. Successful resource endpoints
// return the raw document; these cover the remaining shapes.

type MsgResponse struct {
	Msg string `json:"msg"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ErrorsResponse struct {
	Errors []apperr.FieldError `json:"errors"`
}

func Msg(msg string) MsgResponse {
	return MsgResponse{Msg: msg}
}

func Errors(fields []apperr.FieldError) ErrorsResponse {
	return ErrorsResponse{Errors: fields}
}
