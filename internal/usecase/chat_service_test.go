package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cinda/backend/internal/domain"
)

// mockCache is an in-memory CacheRepository that records writes
type mockCache struct {
	data     map[string]string
	setCalls int
	setErr   error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]string)}
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return value, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// mockChatClient returns a canned reply and records what it was sent
type mockChatClient struct {
	reply        string
	err          error
	calls        int
	lastMessages []domain.ChatMessage
}

func (m *mockChatClient) CreateChatCompletion(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	m.calls++
	m.lastMessages = messages
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func newTestChatService(cache *mockCache, llm *mockChatClient) *ChatService {
	catalog := stubCatalog{shoes: filterTestShoes()}
	contextService := NewContextService(newTestExtractor(), catalog)
	return NewChatService(cache, llm, catalog, contextService, NewFilterService(), ChatServiceConfig{})
}

func TestNewChatService(t *testing.T) {
	t.Run("defaults cache TTL when zero", func(t *testing.T) {
		svc := newTestChatService(newMockCache(), &mockChatClient{})
		if svc.cacheTTL != 1*time.Hour {
			t.Errorf("cacheTTL = %v, want 1h (default)", svc.cacheTTL)
		}
	})
}

func TestChat(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects nil request", func(t *testing.T) {
		svc := newTestChatService(newMockCache(), &mockChatClient{})
		_, err := svc.Chat(ctx, nil)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("rejects empty message", func(t *testing.T) {
		svc := newTestChatService(newMockCache(), &mockChatClient{})
		_, err := svc.Chat(ctx, &domain.ChatRequest{Message: ""})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("returns model reply with context", func(t *testing.T) {
		cache := newMockCache()
		llm := &mockChatClient{reply: "Try the Novablast 4!"}
		svc := newTestChatService(cache, llm)

		response, err := svc.Chat(ctx, &domain.ChatRequest{
			Message: "I'm marathon training and want something soft and neutral",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if response.Reply != "Try the Novablast 4!" {
			t.Errorf("Reply = %q, want mock reply", response.Reply)
		}
		if response.Source != "OpenAI" {
			t.Errorf("Source = %q, want OpenAI", response.Source)
		}
		if response.FollowUp != "" {
			t.Errorf("FollowUp = %q, want empty for complete context", response.FollowUp)
		}
		if response.Context == nil || response.Context.Goal != "marathon" {
			t.Errorf("Context = %+v, want goal marathon", response.Context)
		}
		if cache.setCalls != 1 {
			t.Errorf("cache setCalls = %d, want 1", cache.setCalls)
		}
	})

	t.Run("second identical turn is served from cache", func(t *testing.T) {
		cache := newMockCache()
		llm := &mockChatClient{reply: "Here you go"}
		svc := newTestChatService(cache, llm)

		request := &domain.ChatRequest{Message: "marathon training, soft and neutral please"}

		first, err := svc.Chat(ctx, request)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.Chat(ctx, request)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if first.Source != "OpenAI" {
			t.Errorf("first Source = %q, want OpenAI", first.Source)
		}
		if second.Source != "Cache" {
			t.Errorf("second Source = %q, want Cache", second.Source)
		}
		if second.Reply != first.Reply {
			t.Errorf("cached Reply = %q, want %q", second.Reply, first.Reply)
		}
		if llm.calls != 1 {
			t.Errorf("llm calls = %d, want 1", llm.calls)
		}
	})

	t.Run("follow-up question rides along with the user turn", func(t *testing.T) {
		llm := &mockChatClient{reply: "ok"}
		svc := newTestChatService(newMockCache(), llm)

		response, err := svc.Chat(ctx, &domain.ChatRequest{Message: "hi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if response.FollowUp != goalQuestion {
			t.Errorf("FollowUp = %q, want goal question", response.FollowUp)
		}

		last := llm.lastMessages[len(llm.lastMessages)-1]
		if last.Role != "user" || !strings.Contains(last.Content, goalQuestion) {
			t.Errorf("final prompt message = %+v, want follow-up appended", last)
		}
	})

	t.Run("system prompt carries the filtered catalog", func(t *testing.T) {
		llm := &mockChatClient{reply: "ok"}
		svc := newTestChatService(newMockCache(), llm)

		_, err := svc.Chat(ctx, &domain.ChatRequest{
			Message: "marathon training, soft and neutral, I didn't like the Pegasus 41",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		system := llm.lastMessages[0]
		if system.Role != "system" {
			t.Fatalf("first message role = %q, want system", system.Role)
		}
		if !strings.Contains(system.Content, "Cinda") {
			t.Error("system prompt missing persona")
		}
		if strings.Contains(system.Content, "Pegasus 41") {
			t.Error("disliked shoe leaked into the system prompt")
		}
		if !strings.Contains(system.Content, "Novablast 4") {
			t.Error("expected surviving shoe in the system prompt")
		}
	})

	t.Run("history is replayed in order", func(t *testing.T) {
		llm := &mockChatClient{reply: "ok"}
		svc := newTestChatService(newMockCache(), llm)

		history := []domain.ChatMessage{
			{Role: "user", Content: "I'm marathon training"},
			{Role: "assistant", Content: "Nice, what feel do you like?"},
		}
		_, err := svc.Chat(ctx, &domain.ChatRequest{
			Message:     "soft and neutral",
			ChatHistory: history,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(llm.lastMessages) != 4 {
			t.Fatalf("got %d messages, want 4 (system + history + user)", len(llm.lastMessages))
		}
		if llm.lastMessages[1].Content != history[0].Content || llm.lastMessages[2].Content != history[1].Content {
			t.Error("history not replayed in order")
		}
	})

	t.Run("rate limit sentinel survives the turn", func(t *testing.T) {
		llm := &mockChatClient{err: domain.ErrRateLimited}
		svc := newTestChatService(newMockCache(), llm)

		_, err := svc.Chat(ctx, &domain.ChatRequest{Message: "marathon training, soft and neutral"})
		if !errors.Is(err, domain.ErrRateLimited) {
			t.Errorf("error = %v, want ErrRateLimited", err)
		}
		if errors.Is(err, domain.ErrOpenAIFailure) {
			t.Errorf("error = %v, should not be rewrapped as ErrOpenAIFailure", err)
		}
	})

	t.Run("wraps model failures", func(t *testing.T) {
		llm := &mockChatClient{err: errors.New("connection refused")}
		svc := newTestChatService(newMockCache(), llm)

		_, err := svc.Chat(ctx, &domain.ChatRequest{Message: "marathon training, soft and neutral"})
		if !errors.Is(err, domain.ErrOpenAIFailure) {
			t.Errorf("error = %v, want ErrOpenAIFailure", err)
		}
	})

	t.Run("cache write failure does not fail the turn", func(t *testing.T) {
		cache := newMockCache()
		cache.setErr = errors.New("cache unavailable")
		llm := &mockChatClient{reply: "still fine"}
		svc := newTestChatService(cache, llm)

		response, err := svc.Chat(ctx, &domain.ChatRequest{Message: "marathon training, soft and neutral"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if response.Reply != "still fine" {
			t.Errorf("Reply = %q, want mock reply", response.Reply)
		}
	})
}

func TestNormalizeForCacheKey(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Hello World", "hello world"},
		{"I didn't like it!", "i didnt like it"},
		{"  spaced   out  ", "spaced out"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := normalizeForCacheKey(tc.input)
			if got != tc.want {
				t.Errorf("normalizeForCacheKey(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
