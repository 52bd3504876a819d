package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"walletwatcher/internal/core"
)

func TestBuildPrompt(t *testing.T) {
	txs := []core.Transaction{
		{Type: core.Expense, Description: "Lunch", Category: "Food", Amount: core.Money{Cents: 1250}, Date: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)},
		{Type: core.Revenue, Description: "Salary", Category: "Revenue", Amount: core.Money{Cents: 300000}, Date: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)},
	}

	prompt := BuildPrompt(txs, "Where does my money go?")
	for _, want := range []string{
		"EXPENSE: Lunch (Food) - $12.50 on 1/15/2024\nREVENUE: Salary (Revenue) - $3000.00 on 11/1/2024",
		`User's Question: "Where does my money go?"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	empty := BuildPrompt(nil, "Anything?")
	if !strings.Contains(empty, "Transactions Data:\nThere are no transactions for this period.") {
		t.Errorf("empty prompt missing placeholder:\n%s", empty)
	}
}

// fakeGenerator records the conversation state at call time and replays chunks.
type fakeGenerator struct {
	conv    *Conversation
	chunks  []string
	err     error
	seen    []Message
	prompt  string
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeGenerator) Stream(ctx context.Context, prompt string, onChunk func(string)) error {
	f.prompt = prompt
	if f.conv != nil {
		f.seen = f.conv.Messages()
	}
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for _, c := range f.chunks {
		onChunk(c)
	}
	return f.err
}

func TestConversationStartsWithGreeting(t *testing.T) {
	msgs := NewConversation().Messages()
	if len(msgs) != 1 || msgs[0].Author != AuthorAssistant || msgs[0].Text != Greeting {
		t.Fatalf("unexpected initial messages %+v", msgs)
	}
}

func TestConversationAsk(t *testing.T) {
	conv := NewConversation()
	gen := &fakeGenerator{conv: conv, chunks: []string{"You spend ", "most on ", "food."}}

	answer, err := conv.Ask(context.Background(), gen, nil, "Where does my money go?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if answer != "You spend most on food." {
		t.Fatalf("unexpected answer %q", answer)
	}

	// the question is logged before the generator runs
	if len(gen.seen) != 3 || gen.seen[1].Author != AuthorUser || gen.seen[1].Text != "Where does my money go?" {
		t.Fatalf("user message not appended before request: %+v", gen.seen)
	}
	if gen.seen[2].Author != AuthorAssistant || gen.seen[2].Text != "" {
		t.Fatalf("expected empty assistant message during request: %+v", gen.seen[2])
	}

	msgs := conv.Messages()
	if len(msgs) != 3 || msgs[2].Text != "You spend most on food." {
		t.Fatalf("unexpected log %+v", msgs)
	}
	if !strings.Contains(gen.prompt, noTransactions) {
		t.Fatalf("prompt not built from transactions: %s", gen.prompt)
	}
}

func TestConversationRejectsBlankQuestion(t *testing.T) {
	conv := NewConversation()
	if _, err := conv.Ask(context.Background(), &fakeGenerator{}, nil, "   "); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(conv.Messages()) != 1 {
		t.Fatalf("blank question changed the log")
	}
}

func TestConversationGeneratorFailure(t *testing.T) {
	tests := []struct {
		name     string
		chunks   []string
		wantLast []string
	}{
		{name: "before any chunk", wantLast: []string{"Where?", FailureReply}},
		{name: "after partial answer", chunks: []string{"Partly"}, wantLast: []string{"Where?", "Partly", FailureReply}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewConversation()
			gen := &fakeGenerator{chunks: tt.chunks, err: errors.New("connection refused")}

			if _, err := conv.Ask(context.Background(), gen, nil, "Where?"); err == nil {
				t.Fatalf("expected error")
			}
			msgs := conv.Messages()[1:]
			if len(msgs) != len(tt.wantLast) {
				t.Fatalf("got %d messages, want %d: %+v", len(msgs), len(tt.wantLast), msgs)
			}
			for i, want := range tt.wantLast {
				if msgs[i].Text != want {
					t.Errorf("message %d: got %q, want %q", i, msgs[i].Text, want)
				}
			}
		})
	}
}

func TestConversationBusy(t *testing.T) {
	conv := NewConversation()
	gen := &fakeGenerator{block: make(chan struct{}), entered: make(chan struct{}), chunks: []string{"ok"}}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := conv.Ask(context.Background(), gen, nil, "first"); err != nil {
			t.Errorf("first ask: %v", err)
		}
	}()

	<-gen.entered
	if _, err := conv.Ask(context.Background(), &fakeGenerator{}, nil, "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	close(gen.block)
	wg.Wait()

	if _, err := conv.Ask(context.Background(), &fakeGenerator{}, nil, "third"); err != nil {
		t.Fatalf("ask after completion: %v", err)
	}
}

func TestConversationCancel(t *testing.T) {
	conv := NewConversation()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &fakeGenerator{block: make(chan struct{})}
	if _, err := conv.Ask(ctx, gen, nil, "Where?"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
