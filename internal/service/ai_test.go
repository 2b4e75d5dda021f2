package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/model"
)

// ===== RECOMMEND TESTS =====

func TestAIService_Recommend(t *testing.T) {
	requests := &fakeAIRequestRepo{}
	completer := &fakeCompleter{reply: "Try Hollow Knight."}
	svc := NewAIService(requests, completer, testLogger())

	req, err := svc.Recommend(context.Background(), "user-1", "something like Dark Souls but 2D")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if req.Response != "Try Hollow Knight." {
		t.Errorf("wrong response: %q", req.Response)
	}
	if completer.prompt != "something like Dark Souls but 2D" {
		t.Errorf("provider got wrong prompt: %q", completer.prompt)
	}
	if len(requests.requests) != 1 {
		t.Errorf("expected 1 persisted request, got %d", len(requests.requests))
	}
}

func TestAIService_Recommend_EmptyPrompt(t *testing.T) {
	svc := NewAIService(&fakeAIRequestRepo{}, &fakeCompleter{}, testLogger())

	for _, prompt := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Recommend(context.Background(), "user-1", prompt); !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("prompt %q: expected ErrValidation, got %v", prompt, err)
		}
	}
}

func TestAIService_Recommend_NoProvider(t *testing.T) {
	svc := NewAIService(&fakeAIRequestRepo{}, nil, testLogger())

	_, err := svc.Recommend(context.Background(), "user-1", "anything")
	if !errors.Is(err, apperror.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestAIService_Recommend_ProviderKeyRejected(t *testing.T) {
	completer := &fakeCompleter{err: apperror.InvalidProviderKey()}
	requests := &fakeAIRequestRepo{}
	svc := NewAIService(requests, completer, testLogger())

	_, err := svc.Recommend(context.Background(), "user-1", "anything")
	if !errors.Is(err, apperror.ErrProviderKey) {
		t.Errorf("expected ErrProviderKey, got %v", err)
	}
	if len(requests.requests) != 0 {
		t.Error("failed generation must not be persisted")
	}
}

func TestAIService_Recommend_ProviderError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("model overloaded")}
	requests := &fakeAIRequestRepo{}
	svc := NewAIService(requests, completer, testLogger())

	if _, err := svc.Recommend(context.Background(), "user-1", "anything"); err == nil {
		t.Fatal("expected an error")
	}
	if len(requests.requests) != 0 {
		t.Error("failed generation must not be persisted")
	}
}

// ===== HISTORY TESTS =====

func seedHistory(requests *fakeAIRequestRepo, userID string, n int) {
	for i := 0; i < n; i++ {
		requests.requests = append(requests.requests, model.AIRequest{
			ID:     fmt.Sprintf("req-%s-%d", userID, i),
			UserID: userID,
			Prompt: fmt.Sprintf("prompt %d", i),
		})
	}
}

func TestAIService_History_NewestFirstAndScoped(t *testing.T) {
	requests := &fakeAIRequestRepo{}
	seedHistory(requests, "user-1", 3)
	seedHistory(requests, "user-2", 2)
	svc := NewAIService(requests, nil, testLogger())

	page, err := svc.History(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}

	if page.Total != 3 {
		t.Errorf("expected total 3, got %d", page.Total)
	}
	if len(page.Requests) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(page.Requests))
	}
	if page.Requests[0].Prompt != "prompt 2" {
		t.Errorf("expected newest first, got %q", page.Requests[0].Prompt)
	}
	for _, r := range page.Requests {
		if r.UserID != "user-1" {
			t.Errorf("history leaked request of %s", r.UserID)
		}
	}
}

func TestAIService_History_Pagination(t *testing.T) {
	requests := &fakeAIRequestRepo{}
	seedHistory(requests, "user-1", 5)
	svc := NewAIService(requests, nil, testLogger())

	page, err := svc.History(context.Background(), "user-1", 1, 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}

	if page.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", page.TotalPages)
	}
	if len(page.Requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(page.Requests))
	}
	// Newest first overall is [4 3 2 1 0]; page 1 of size 2 is [2 1].
	if page.Requests[0].Prompt != "prompt 2" || page.Requests[1].Prompt != "prompt 1" {
		t.Errorf("wrong page contents: %q, %q", page.Requests[0].Prompt, page.Requests[1].Prompt)
	}
}

func TestAIService_History_Empty(t *testing.T) {
	svc := NewAIService(&fakeAIRequestRepo{}, nil, testLogger())

	page, err := svc.History(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if page.Total != 0 || page.TotalPages != 0 || len(page.Requests) != 0 {
		t.Errorf("expected empty page, got %+v", page)
	}
}

// ===== DELETE TESTS =====

func TestAIService_Delete(t *testing.T) {
	requests := &fakeAIRequestRepo{}
	seedHistory(requests, "user-1", 1)
	svc := NewAIService(requests, nil, testLogger())

	if err := svc.Delete(context.Background(), "user-1", "req-user-1-0"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(requests.requests) != 0 {
		t.Error("expected request to be removed")
	}

	// Deleting it again is a 404.
	err := svc.Delete(context.Background(), "user-1", "req-user-1-0")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// An existing entry owned by someone else is forbidden, not hidden.
func TestAIService_Delete_OtherUsers(t *testing.T) {
	requests := &fakeAIRequestRepo{}
	seedHistory(requests, "user-1", 1)
	svc := NewAIService(requests, nil, testLogger())

	err := svc.Delete(context.Background(), "user-2", "req-user-1-0")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if len(requests.requests) != 1 {
		t.Error("owner's request must survive")
	}
}
