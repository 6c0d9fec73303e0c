package tonlaunch

import "context"

// Batch collects messages that go out in one wallet transaction.
type Batch struct {
	messages []*Message
	cfg      *batchConfig
}

// NewBatch creates an empty batch.
func NewBatch(opts ...BatchOption) *Batch {
	b := &Batch{
		messages: make([]*Message, 0, DefaultMaxMessages),
		cfg:      defaultBatchConfig(),
	}
	for _, opt := range opts {
		opt(b.cfg)
	}
	return b
}

// Add appends msg and returns the batch for chaining. Nil messages are ignored.
func (b *Batch) Add(msg *Message) *Batch {
	if msg != nil {
		b.messages = append(b.messages, msg)
	}
	return b
}

// Len returns the number of messages in the batch.
func (b *Batch) Len() int {
	return len(b.messages)
}

// MessageAt returns the message at index i, or nil if out of range.
func (b *Batch) MessageAt(i int) *Message {
	if i < 0 || i >= len(b.messages) {
		return nil
	}
	return b.messages[i]
}

// ForEachMessage iterates over the batch. Return false to stop iteration.
func (b *Batch) ForEachMessage(fn func(int, *Message) bool) {
	for i, m := range b.messages {
		if !fn(i, m) {
			return
		}
	}
}

// MaxMessages returns the per-transaction limit enforced by Plan.
func (b *Batch) MaxMessages() int {
	return b.cfg.maxMessages
}

// Plan validates every message and returns them in send order.
func (b *Batch) Plan() ([]*Message, error) {
	if len(b.messages) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(b.messages) > b.cfg.maxMessages {
		return nil, &BatchError{MessageIndex: b.cfg.maxMessages, Op: b.messages[b.cfg.maxMessages].Op(), Err: ErrTooManyMessages}
	}

	out := make([]*Message, len(b.messages))
	for i, m := range b.messages {
		if err := m.Validate(); err != nil {
			return nil, &BatchError{MessageIndex: i, Op: m.Op(), Err: err}
		}
		out[i] = m
	}
	return out, nil
}

// Send plans the batch and hands it to via as one transaction.
func (b *Batch) Send(ctx context.Context, via Sender) error {
	msgs, err := b.Plan()
	if err != nil {
		return err
	}
	return via.Send(ctx, msgs...)
}
