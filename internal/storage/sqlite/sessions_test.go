package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/hostelhub/hostelctl/internal/storage"
)

func TestSaveSession(t *testing.T) {
	s := setupTestStorage(t)

	expiresAt := time.Now().Add(24 * time.Hour)
	session, err := s.SaveSession(t.Context(), "token-123", "Ada", "admin", expiresAt)
	if err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	if session.Token() != "token-123" {
		t.Errorf("Expected token 'token-123', got '%s'", session.Token())
	}
	if !session.IsAdmin() {
		t.Error("Expected admin session")
	}
	if session.CreatedAt().IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	got, err := s.GetSession(t.Context())
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if got.UserName() != "Ada" {
		t.Errorf("Expected user name 'Ada', got '%s'", got.UserName())
	}
	if got.ExpiresAt().Unix() != expiresAt.Unix() {
		t.Errorf("Expected expiry %v, got %v", expiresAt, got.ExpiresAt())
	}
}

func TestSaveSessionReplaces(t *testing.T) {
	s := setupTestStorage(t)

	expiresAt := time.Now().Add(time.Hour)
	if _, err := s.SaveSession(t.Context(), "old", "Ada", "admin", expiresAt); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if _, err := s.SaveSession(t.Context(), "new", "Grace", "student", expiresAt); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	got, err := s.GetSession(t.Context())
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if got.Token() != "new" {
		t.Errorf("Expected token 'new', got '%s'", got.Token())
	}
	if got.IsAdmin() {
		t.Error("Expected non-admin session")
	}
}

func TestGetSessionExpired(t *testing.T) {
	s := setupTestStorage(t)

	if _, err := s.SaveSession(t.Context(), "stale", "Ada", "admin", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	_, err := s.GetSession(t.Context())

	var notFound *storage.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError for expired session, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	s := setupTestStorage(t)

	if _, err := s.SaveSession(t.Context(), "token", "Ada", "admin", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	if err := s.DeleteSession(t.Context()); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	_, err := s.GetSession(t.Context())
	var notFound *storage.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError after delete, got %v", err)
	}
}
