package controllers

import "github.com/calderhq/syncline/internal/eventlog"

// recordReq is the body of POST /v1/events.
type recordReq struct {
	Resource     string         `json:"resource"`
	ResourceType string         `json:"resource_type"`
	Action       string         `json:"action"`
	User         string         `json:"user,omitempty"`
	Parent       *eventlog.Ref  `json:"parent,omitempty"`
	Change       map[string]any `json:"change,omitempty"`
}

// recordResp echoes the recorded event's position.
type recordResp struct {
	ID   uint64 `json:"id"`
	Sync string `json:"sync"`
}

// tokenResp carries a resource's current sync token.
type tokenResp struct {
	Sync string `json:"sync"`
}
