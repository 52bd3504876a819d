package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"walletwatcher/internal/core"
)

// Greeting opens every conversation.
const Greeting = "Hello! How can I help you analyze your finances for this period?"

// FailureReply is appended when the generator fails.
const FailureReply = "Sorry, I encountered an error. Please check your API Key and try again."

// ErrBusy is returned when a question is asked while another is streaming.
var ErrBusy = errors.New("assistant is still answering")

// Generator streams the answer to a prompt, calling onChunk for each piece
// of text as it arrives.
type Generator interface {
	Stream(ctx context.Context, prompt string, onChunk func(string)) error
}

type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

type Message struct {
	Author Author
	Text   string
}

// Conversation is the message log shown in the assistant view.
type Conversation struct {
	mu       sync.Mutex
	messages []Message
	busy     bool
}

func NewConversation() *Conversation {
	return &Conversation{messages: []Message{{Author: AuthorAssistant, Text: Greeting}}}
}

// Messages returns a snapshot of the log.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Ask records question and an empty assistant message before calling the
// generator, then grows that message as chunks arrive. On failure a partial
// answer is kept, an empty one dropped, and the failure reply appended.
func (c *Conversation) Ask(ctx context.Context, gen Generator, txs []core.Transaction, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", core.NewValidationError("question", "cannot be empty")
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return "", ErrBusy
	}
	c.busy = true
	c.messages = append(c.messages,
		Message{Author: AuthorUser, Text: question},
		Message{Author: AuthorAssistant},
	)
	reply := len(c.messages) - 1
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	var answer strings.Builder
	err := gen.Stream(ctx, BuildPrompt(txs, question), func(chunk string) {
		c.mu.Lock()
		defer c.mu.Unlock()
		answer.WriteString(chunk)
		c.messages[reply].Text += chunk
	})
	if err != nil {
		c.mu.Lock()
		if c.messages[reply].Text == "" {
			c.messages = c.messages[:reply]
		}
		c.messages = append(c.messages, Message{Author: AuthorAssistant, Text: FailureReply})
		c.mu.Unlock()
		return answer.String(), fmt.Errorf("generate answer: %w", err)
	}
	return answer.String(), nil
}
