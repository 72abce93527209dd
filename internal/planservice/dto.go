package planservice

import "github.com/dekarrin/shrdlite/internal/blocks"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type sessionResponse struct {
	ID      string            `json:"id"`
	State   blocks.WorldState `json:"state"`
	History []string          `json:"history"`
}

type commandRequest struct {
	Utterance string `json:"utterance"`
}

type commandResponse struct {
	ID      string            `json:"id"`
	Plan    []string          `json:"plan"`
	State   blocks.WorldState `json:"state"`
	History []string          `json:"history"`
}
