package firebase

import (
	"context"
	"testing"
)

func TestClientsCloseReturnsNilWhenFirestoreNil(t *testing.T) {
	c := &Clients{}
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestInitializeClientsMissingCredentialsFile(t *testing.T) {
	_, err := InitializeClients(context.Background(), Config{
		ProjectID:                    "demo-portal",
		GoogleApplicationCredentials: t.TempDir() + "/missing.json",
	})
	if err == nil {
		t.Fatal("expected error for missing credentials file")
	}
}
