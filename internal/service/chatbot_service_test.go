package service

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"jarvina-be/internal/constant"
	"jarvina-be/internal/dto"
	"jarvina-be/internal/model"
	"jarvina-be/internal/pkg/logger"
	"jarvina-be/internal/repository/unitofwork"
	"jarvina-be/pkg/assistant/reply"
	"jarvina-be/pkg/database"
	"jarvina-be/pkg/events"
	"jarvina-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	turns    []llm.Message
	options  *llm.Options
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.turns = history
	f.options = llm.NewOptions(opts...)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}

type staticContext string

func (s staticContext) Build(ctx context.Context) string { return string(s) }

type chatFixture struct {
	factory   unitofwork.RepositoryFactory
	llm       *fakeLLM
	publisher *recordingPublisher
	service   IChatbotService
}

var fixedNow = time.Date(2024, time.March, 5, 15, 4, 9, 0, time.Local)

func newChatFixture(t *testing.T, provider llm.LLMProvider, entries ...reply.Entry) *chatFixture {
	t.Helper()

	db, err := database.NewQuietGormDB(database.DriverSQLite, filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, model.All()...))

	f := &chatFixture{
		factory:   unitofwork.NewRepositoryFactory(db),
		publisher: &recordingPublisher{},
	}
	if fake, ok := provider.(*fakeLLM); ok {
		f.llm = fake
	}
	f.service = NewChatbotService(
		f.factory,
		reply.NewTable(entries),
		staticContext("be brief"),
		provider,
		f.publisher,
		logger.NewNopLogger(),
		ChatbotOptions{HistoryLimit: 20, Temperature: constant.DefaultTemperature, Clock: func() time.Time { return fixedNow }},
	)
	return f
}

func (f *chatFixture) history(t *testing.T) []string {
	t.Helper()
	ctx := context.Background()
	entries, err := f.factory.NewUnitOfWork(ctx).ConversationRepository().FindRecent(ctx, 100)
	require.NoError(t, err)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Role+": "+e.Content)
	}
	return lines
}

func (f *chatFixture) notes(t *testing.T) []string {
	t.Helper()
	ctx := context.Background()
	notes, err := f.factory.NewUnitOfWork(ctx).NoteRepository().FindRecent(ctx, 100)
	require.NoError(t, err)
	contents := make([]string, 0, len(notes))
	for _, n := range notes {
		contents = append(contents, n.Content)
	}
	return contents
}

func send(t *testing.T, svc IChatbotService, prompt string) *dto.SendChatResponse {
	t.Helper()
	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Prompt: prompt})
	require.NoError(t, err)
	return res
}

func TestSendChatCurrentTime(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{response: "unused"})

	res := send(t, f.service, "current time")

	assert.Equal(t, constant.ChatSourceCommand, res.Source)
	assert.Regexp(t, regexp.MustCompile(`^The current time is \d{2}:\d{2}:\d{2} (AM|PM) on `), res.Response)
	assert.Equal(t, "The current time is 03:04:09 PM on Tuesday, March 05, 2024.", res.Response)
	assert.NotEmpty(t, res.RequestId)
	assert.Equal(t, []string{"user: current time", "assistant: " + res.Response}, f.history(t))
	assert.Zero(t, f.llm.calls)
}

func TestSendChatCommandBeatsCannedReply(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{response: "unused"},
		reply.Entry{Response: "canned", Phrases: []string{"clear history"}},
	)
	send(t, f.service, "hello there")
	send(t, f.service, "save: buy milk")

	res := send(t, f.service, "Clear History!")

	assert.Equal(t, constant.ChatSourceCommand, res.Source)
	assert.Equal(t, constant.ClearHistoryConfirmation, res.Response)
	assert.Equal(t, []string{"assistant: " + constant.ClearHistoryConfirmation}, f.history(t))
	assert.Equal(t, []string{"buy milk"}, f.notes(t))
	assert.Contains(t, f.publisher.types(), events.TypeHistoryCleared)
}

func TestSendChatSaveNote(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{})

	res := send(t, f.service, "save:   buy milk  ")
	assert.Equal(t, `Note saved: "buy milk"`, res.Response)
	assert.Equal(t, []string{"buy milk"}, f.notes(t))
	assert.Contains(t, f.publisher.types(), events.TypeNoteSaved)

	res = send(t, f.service, "save:   ")
	assert.Equal(t, constant.EmptyNoteGuidance, res.Response)
	assert.Equal(t, []string{"buy milk"}, f.notes(t))

	res = send(t, f.service, "clear notes")
	assert.Equal(t, constant.ClearNotesConfirmation, res.Response)
	assert.Empty(t, f.notes(t))
	assert.Len(t, f.history(t), 6)
}

func TestSendChatCannedReply(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{response: "unused"},
		reply.Entry{Response: "I am Jarvina.", Phrases: []string{"whats your name"}},
	)

	res := send(t, f.service, "What's your name?")

	assert.Equal(t, constant.ChatSourceReply, res.Source)
	assert.Equal(t, "I am Jarvina.", res.Response)
	assert.Equal(t, []string{"user: What's your name?", "assistant: I am Jarvina."}, f.history(t))
	assert.Zero(t, f.llm.calls)
}

func TestSendChatModelUsesPersistedHistory(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{response: "first answer"})
	send(t, f.service, "tell me a joke")

	f.llm.response = "second answer"
	res := send(t, f.service, "another one")

	assert.Equal(t, constant.ChatSourceModel, res.Source)
	assert.Equal(t, "second answer", res.Response)

	require.Len(t, f.llm.turns, 5)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: constant.InstructionsMarker + "be brief"}, f.llm.turns[0])
	assert.Equal(t, llm.Message{Role: llm.RoleModel, Content: constant.InstructionsAcknowledgement}, f.llm.turns[1])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "tell me a joke"}, f.llm.turns[2])
	assert.Equal(t, llm.Message{Role: llm.RoleModel, Content: "first answer"}, f.llm.turns[3])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "another one"}, f.llm.turns[4])
	assert.Equal(t, constant.DefaultTemperature, f.llm.options.Temperature)

	assert.Equal(t, []string{
		"user: tell me a joke",
		"assistant: first answer",
		"user: another one",
		"assistant: second answer",
	}, f.history(t))
}

func TestSendChatModelUsesRequestMessages(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{response: "ok"})
	temperature := 0.2
	maxTokens := 128

	_, err := f.service.SendChat(context.Background(), &dto.SendChatRequest{
		Prompt: "and now?",
		Messages: []dto.ChatMessageDTO{
			{Role: "system", Content: "ignored"},
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
			{Role: "user", Content: ""},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	require.NoError(t, err)

	require.Len(t, f.llm.turns, 5)
	assert.Equal(t, "hi", f.llm.turns[2].Content)
	assert.Equal(t, llm.RoleModel, f.llm.turns[3].Role)
	assert.Equal(t, "and now?", f.llm.turns[4].Content)
	assert.Equal(t, 0.2, f.llm.options.Temperature)
	assert.Equal(t, 128, f.llm.options.MaxTokens)
}

func TestSendChatZeroConfiguredTemperature(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{response: "ok"})
	f.service = NewChatbotService(
		f.factory,
		reply.NewTable(nil),
		staticContext("be brief"),
		f.llm,
		f.publisher,
		logger.NewNopLogger(),
		ChatbotOptions{Temperature: 0},
	)

	send(t, f.service, "hello")

	require.NotNil(t, f.llm.options)
	assert.Equal(t, 0.0, f.llm.options.Temperature)
}

func TestSendChatBlankPromptWithMessages(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{response: "ok"})

	_, err := f.service.SendChat(context.Background(), &dto.SendChatRequest{
		Prompt:   "   ",
		Messages: []dto.ChatMessageDTO{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)

	require.Len(t, f.llm.turns, 3)
	last := f.llm.turns[len(f.llm.turns)-1]
	assert.Equal(t, llm.RoleUser, last.Role)
	assert.Equal(t, "hi", last.Content)
	assert.Equal(t, []string{"assistant: ok"}, f.history(t))
}

func TestSendChatMessagesOnly(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{response: "ok"})

	res, err := f.service.SendChat(context.Background(), &dto.SendChatRequest{
		Messages: []dto.ChatMessageDTO{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, constant.ChatSourceModel, res.Source)
	require.Len(t, f.llm.turns, 3)
	assert.Equal(t, []string{"assistant: ok"}, f.history(t))
}

func TestSendChatGenerationFailure(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{err: errors.New("quota exceeded")})

	_, err := f.service.SendChat(context.Background(), &dto.SendChatRequest{Prompt: "write a poem"})

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "AI generation failed: quota exceeded", err.Error())
	assert.Equal(t, 500, genErr.StatusCode())
	assert.Equal(t, []string{"user: write a poem"}, f.history(t))
}

func TestSendChatDegenerateRequest(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{response: "unused"})

	for _, req := range []*dto.SendChatRequest{
		{},
		{Prompt: "   "},
		{Messages: []dto.ChatMessageDTO{{Role: "system", Content: "only system"}}},
	} {
		_, err := f.service.SendChat(context.Background(), req)
		assert.ErrorIs(t, err, ErrDegenerateRequest)
	}
	assert.Empty(t, f.history(t))
	assert.Zero(t, f.llm.calls)
}

func TestSendChatRejectsUnknownRole(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{response: "unused"})

	_, err := f.service.SendChat(context.Background(), &dto.SendChatRequest{
		Prompt:   "hi",
		Messages: []dto.ChatMessageDTO{{Role: "robot", Content: "beep"}},
	})
	assert.ErrorIs(t, err, ErrInvalidHistory)
	assert.Zero(t, f.llm.calls)
}

func TestSendChatDegradedMode(t *testing.T) {
	f := newChatFixture(t, nil, reply.Entry{Response: "Hi!", Phrases: []string{"hello"}})
	assert.False(t, f.service.ModelReady())

	_, err := f.service.SendChat(context.Background(), &dto.SendChatRequest{Prompt: "write a poem"})
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	assert.Equal(t, "Hi!", send(t, f.service, "Hello").Response)
	assert.Equal(t, constant.ChatSourceCommand, send(t, f.service, "save: still works").Source)
	assert.Equal(t, []string{"still works"}, f.notes(t))
}

func TestSendChatConcurrentRequests(t *testing.T) {
	f := newChatFixture(t, &fakeLLM{response: "ok"})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.SendChat(context.Background(), &dto.SendChatRequest{Prompt: "save: note"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, f.notes(t), 10)
	assert.Len(t, f.history(t), 20)
}
