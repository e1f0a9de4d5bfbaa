package chat

import (
	"errors"
	"fmt"
	"testing"

	perrors "github.com/zhubert/parley/internal/errors"
)

// memBackend is an in-memory storage backend for tests.
type memBackend struct {
	data    []byte
	saves   int
	loadErr error
	saveErr error
}

func (m *memBackend) Load() ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data, nil
}

func (m *memBackend) Save(data []byte) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

func TestOpen_FirstRun(t *testing.T) {
	backend := &memBackend{}
	store := Open(backend)

	sessions := store.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 default session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.ID != 1 || s.Title != "Chat 1" {
		t.Errorf("default session = id %d title %q, want id 1 title \"Chat 1\"", s.ID, s.Title)
	}
	if len(s.Messages) != 1 {
		t.Fatalf("expected 1 welcome message, got %d", len(s.Messages))
	}
	if s.Messages[0].From != SenderBot || s.Messages[0].Text != WelcomeText {
		t.Errorf("welcome message = %+v, want bot %q", s.Messages[0], WelcomeText)
	}
	if backend.data == nil {
		t.Error("expected default session to be persisted on first run")
	}
}

func TestOpen_CorruptBlob(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", "{{{{"},
		{"wrong shape", `{"id":1}`},
		{"truncated", `[{"id":1,"ti`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &memBackend{data: []byte(tt.blob)}
			store := Open(backend)

			sessions := store.Sessions()
			if len(sessions) != 1 || sessions[0].Title != "Chat 1" {
				t.Errorf("expected default session after corrupt blob, got %+v", sessions)
			}
		})
	}
}

func TestOpen_LoadError(t *testing.T) {
	backend := &memBackend{loadErr: errors.New("disk on fire")}
	store := Open(backend)

	if got := store.Count(); got != 1 {
		t.Errorf("expected default session after load error, got %d sessions", got)
	}
}

func TestOpen_RoundTrip(t *testing.T) {
	backend := &memBackend{}
	store := Open(backend)
	store.Create()
	msg, err := store.NewUserMessage("hello there")
	if err != nil {
		t.Fatalf("NewUserMessage returned error: %v", err)
	}
	store.Append(2, msg)

	reopened := Open(backend)
	sessions := reopened.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions after reopen, got %d", len(sessions))
	}
	last := sessions[1].Messages[len(sessions[1].Messages)-1]
	if last.Text != "hello there" || last.From != SenderUser {
		t.Errorf("last message after reopen = %+v, want user \"hello there\"", last)
	}
}

func TestOpen_EmptyListStaysEmpty(t *testing.T) {
	backend := &memBackend{data: []byte(`[]`)}
	store := Open(backend)

	if got := store.Count(); got != 0 {
		t.Errorf("persisted empty list should stay empty, got %d sessions", got)
	}
}

func TestCreate(t *testing.T) {
	store := Open(&memBackend{})

	id := store.Create()
	if id != 2 {
		t.Errorf("Create() = %d, want 2", id)
	}

	s, ok := store.Get(2)
	if !ok {
		t.Fatal("Get(2) not found after Create")
	}
	if s.Title != "Chat 2" {
		t.Errorf("new session title = %q, want \"Chat 2\"", s.Title)
	}
	if len(s.Messages) != 1 || s.Messages[0].Text != WelcomeText {
		t.Errorf("new session should start with the welcome message, got %+v", s.Messages)
	}
}

func TestDelete_Reindexes(t *testing.T) {
	store := Open(&memBackend{})
	store.Create() // 2
	store.Create() // 3

	// Tag each session so content can be tracked across re-indexing.
	for id := 1; id <= 3; id++ {
		msg, err := store.NewUserMessage(fmt.Sprintf("marker %d", id))
		if err != nil {
			t.Fatalf("NewUserMessage returned error: %v", err)
		}
		store.Append(id, msg)
	}

	if !store.Delete(2) {
		t.Fatal("Delete(2) = false, want true")
	}

	sessions := store.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions after delete, got %d", len(sessions))
	}
	for i, s := range sessions {
		want := i + 1
		if s.ID != want {
			t.Errorf("session %d has id %d, want %d", i, s.ID, want)
		}
		if s.Title != fmt.Sprintf("Chat %d", want) {
			t.Errorf("session %d has title %q, want \"Chat %d\"", i, s.Title, want)
		}
	}

	// Survivors keep their messages in order: former 1 and former 3.
	if got := sessions[0].Messages[len(sessions[0].Messages)-1].Text; got != "marker 1" {
		t.Errorf("first survivor's last message = %q, want \"marker 1\"", got)
	}
	if got := sessions[1].Messages[len(sessions[1].Messages)-1].Text; got != "marker 3" {
		t.Errorf("second survivor's last message = %q, want \"marker 3\"", got)
	}
}

func TestDelete_LastSession(t *testing.T) {
	store := Open(&memBackend{})

	if !store.Delete(1) {
		t.Fatal("Delete(1) = false, want true")
	}
	if got := store.Count(); got != 0 {
		t.Errorf("expected 0 sessions, got %d", got)
	}
}

func TestDelete_Absent(t *testing.T) {
	backend := &memBackend{}
	store := Open(backend)
	savesBefore := backend.saves

	if store.Delete(99) {
		t.Error("Delete(99) = true, want false")
	}
	if backend.saves != savesBefore {
		t.Error("no-op delete should not persist")
	}
}

func TestAppend(t *testing.T) {
	store := Open(&memBackend{})

	msg, err := store.NewUserMessage("first")
	if err != nil {
		t.Fatalf("NewUserMessage returned error: %v", err)
	}
	if !store.Append(1, msg) {
		t.Fatal("Append(1, ...) = false, want true")
	}

	s, _ := store.Get(1)
	if len(s.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(s.Messages))
	}
	if s.Messages[1].Text != "first" {
		t.Errorf("appended message text = %q, want \"first\"", s.Messages[1].Text)
	}
}

func TestAppend_AbsentSession(t *testing.T) {
	store := Open(&memBackend{})
	msg := store.NewBotMessage("lost")

	if store.Append(42, msg) {
		t.Error("Append to absent session = true, want false")
	}
}

func TestClear(t *testing.T) {
	store := Open(&memBackend{})

	if !store.Clear(1) {
		t.Fatal("Clear(1) = false, want true")
	}
	s, _ := store.Get(1)
	if len(s.Messages) != 0 {
		t.Errorf("expected 0 messages after clear, got %d", len(s.Messages))
	}

	if store.Clear(42) {
		t.Error("Clear on absent session = true, want false")
	}
}

func TestDeleteMessage(t *testing.T) {
	store := Open(&memBackend{})
	msg, err := store.NewUserMessage("delete me")
	if err != nil {
		t.Fatalf("NewUserMessage returned error: %v", err)
	}
	store.Append(1, msg)

	if !store.DeleteMessage(1, msg.ID) {
		t.Fatal("DeleteMessage = false, want true")
	}
	s, _ := store.Get(1)
	for _, m := range s.Messages {
		if m.ID == msg.ID {
			t.Error("deleted message still present")
		}
	}

	if store.DeleteMessage(1, msg.ID) {
		t.Error("second DeleteMessage = true, want false")
	}
	if store.DeleteMessage(42, msg.ID) {
		t.Error("DeleteMessage on absent session = true, want false")
	}
}

func TestNewUserMessage_RejectsBlank(t *testing.T) {
	store := Open(&memBackend{})

	tests := []string{"", "   ", "\t", "\n  \n"}
	for _, input := range tests {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			_, err := store.NewUserMessage(input)
			if err == nil {
				t.Fatal("expected error for blank text")
			}
			if !perrors.Is(err, perrors.KindInvalid) {
				t.Errorf("error kind = %v, want KindInvalid", perrors.GetKind(err))
			}
		})
	}
}

func TestNewUserMessage_KeepsTextVerbatim(t *testing.T) {
	store := Open(&memBackend{})

	msg, err := store.NewUserMessage("  padded  ")
	if err != nil {
		t.Fatalf("NewUserMessage returned error: %v", err)
	}
	if msg.Text != "  padded  " {
		t.Errorf("message text = %q, want input verbatim", msg.Text)
	}
	if msg.From != SenderUser {
		t.Errorf("message sender = %q, want %q", msg.From, SenderUser)
	}
}

func TestMessageIDs_StrictlyIncreasing(t *testing.T) {
	store := Open(&memBackend{})

	var prev int64
	for i := 0; i < 1000; i++ {
		msg := store.NewBotMessage("tick")
		if msg.ID <= prev {
			t.Fatalf("message id %d not greater than previous %d", msg.ID, prev)
		}
		prev = msg.ID
	}
}

func TestMessageIDs_GuardSurvivesReopen(t *testing.T) {
	backend := &memBackend{}
	store := Open(backend)
	// Force an ID far in the future, as if the clock had jumped back.
	msg := store.NewBotMessage("future")
	future := msg.ID + int64(1e18)
	store.Append(1, Message{ID: future, From: SenderBot, Text: "future"})

	reopened := Open(backend)
	next := reopened.NewBotMessage("after")
	if next.ID <= future {
		t.Errorf("id %d after reopen not greater than persisted max %d", next.ID, future)
	}
}

func TestMutations_PersistImmediately(t *testing.T) {
	backend := &memBackend{}
	store := Open(backend)

	check := func(step string) {
		t.Helper()
		fresh := Open(backend)
		if got, want := fresh.Count(), store.Count(); got != want {
			t.Errorf("%s: reopened store has %d sessions, live store has %d", step, got, want)
		}
	}

	store.Create()
	check("Create")
	msg, _ := store.NewUserMessage("hi")
	store.Append(2, msg)
	check("Append")
	store.Clear(2)
	check("Clear")
	store.Delete(2)
	check("Delete")
}

func TestPersistFailure_DoesNotRollBack(t *testing.T) {
	backend := &memBackend{}
	store := Open(backend)

	backend.saveErr = errors.New("disk full")
	id := store.Create()

	if _, ok := store.Get(id); !ok {
		t.Error("session missing from memory after persist failure")
	}
}
