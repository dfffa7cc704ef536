package domain

import (
	"context"
	"errors"
	"time"
)

// GenerationStatus tracks the one generation request a session may have.
type GenerationStatus string

const (
	StatusIdle       GenerationStatus = "idle"
	StatusGenerating GenerationStatus = "generating"
	StatusSuccess    GenerationStatus = "success"
	StatusError      GenerationStatus = "error"
)

// Workspace is the per-session state: the current course, if any, and the status of
// the latest generation request.
type Workspace struct {
	SessionID string           `json:"sessionId"`
	Status    GenerationStatus `json:"status"`
	Course    *Course          `json:"course,omitempty"`
	Warnings  []Issue          `json:"warnings,omitempty"`
	Error     string           `json:"error,omitempty"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewWorkspace returns an idle workspace with no course.
func NewWorkspace(sessionID string) *Workspace {
	return &Workspace{
		SessionID: sessionID,
		Status:    StatusIdle,
		UpdatedAt: time.Now(),
	}
}

// ErrWorkspaceNotFound is returned by stores for unknown sessions.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// WorkspaceStore keeps workspaces between requests.
type WorkspaceStore interface {
	// Load returns ErrWorkspaceNotFound if the session has no workspace.
	Load(ctx context.Context, sessionID string) (*Workspace, error)
	Save(ctx context.Context, ws *Workspace) error
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}
