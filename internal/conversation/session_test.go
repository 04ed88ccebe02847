package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibespecs/vibespecs/internal/export"
	"github.com/vibespecs/vibespecs/internal/gateway"
	"github.com/vibespecs/vibespecs/internal/prd"
)

// stubGenerator returns a canned document or error; blockUntil, when set,
// holds the call open so tests can observe the generating state.
type stubGenerator struct {
	doc        *prd.Document
	err        error
	blockUntil chan struct{}
	started    chan struct{}
}

func (g *stubGenerator) Generate(ctx context.Context, idea string, advanced bool) (*prd.Document, error) {
	if g.started != nil {
		close(g.started)
	}
	if g.blockUntil != nil {
		select {
		case <-g.blockUntil:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if g.err != nil {
		return nil, g.err
	}
	return g.doc, nil
}

func TestSubmit(t *testing.T) {
	t.Run("successful turn appends user then assistant", func(t *testing.T) {
		session := NewSession(&stubGenerator{doc: prd.Sample("a budgeting app")})

		message, err := session.Submit(context.Background(), "a budgeting app", false)
		require.NoError(t, err)
		require.NotNil(t, message.PRD)
		assert.Equal(t, RoleAssistant, message.Role)

		messages := session.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, RoleUser, messages[0].Role)
		assert.Equal(t, "a budgeting app", messages[0].Content)
		assert.Equal(t, RoleAssistant, messages[1].Role)
		assert.Equal(t, StateIdle, session.State())
	})

	t.Run("failure leaves an unanswered user turn", func(t *testing.T) {
		genErr := &gateway.GenerationError{Kind: gateway.KindRateLimited, StatusCode: 429, Message: "slow down"}
		session := NewSession(&stubGenerator{err: genErr})

		_, err := session.Submit(context.Background(), "an app", false)
		require.Error(t, err)
		assert.Equal(t, gateway.KindRateLimited, gateway.KindOf(err))

		messages := session.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, RoleUser, messages[0].Role)
		assert.Equal(t, StateIdle, session.State())
	})

	t.Run("session recovers after a failed turn", func(t *testing.T) {
		generator := &stubGenerator{err: errors.New("boom")}
		session := NewSession(generator)

		_, err := session.Submit(context.Background(), "first", false)
		require.Error(t, err)

		generator.err = nil
		generator.doc = prd.Sample("second")
		message, err := session.Submit(context.Background(), "second", false)
		require.NoError(t, err)
		assert.NotNil(t, message.PRD)
		assert.Len(t, session.Messages(), 3)
	})

	t.Run("concurrent submission is rejected", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		session := NewSession(&stubGenerator{
			doc:        prd.Sample("an app"),
			blockUntil: release,
			started:    started,
		})

		done := make(chan error, 1)
		go func() {
			_, err := session.Submit(context.Background(), "first", false)
			done <- err
		}()

		<-started
		assert.Equal(t, StateGenerating, session.State())

		_, err := session.Submit(context.Background(), "second", false)
		assert.ErrorIs(t, err, ErrGenerationInFlight)

		close(release)
		require.NoError(t, <-done)
		assert.Equal(t, StateIdle, session.State())

		// The rejected submission left no trace in the log.
		messages := session.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, "first", messages[0].Content)
	})

	t.Run("cancel abandons the pending result", func(t *testing.T) {
		started := make(chan struct{})
		session := NewSession(&stubGenerator{
			doc:        prd.Sample("an app"),
			blockUntil: make(chan struct{}),
			started:    started,
		})

		done := make(chan error, 1)
		go func() {
			_, err := session.Submit(context.Background(), "an idea", false)
			done <- err
		}()

		<-started
		session.Cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("submit did not return after cancel")
		}

		messages := session.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, RoleUser, messages[0].Role)
		assert.Equal(t, StateIdle, session.State())
	})

	t.Run("cancel when idle is a no-op", func(t *testing.T) {
		session := NewSession(&stubGenerator{doc: prd.Sample("an app")})
		session.Cancel()
		assert.Equal(t, StateIdle, session.State())
	})
}

func TestMessagesReturnsCopy(t *testing.T) {
	session := NewSession(&stubGenerator{doc: prd.Sample("an app")})
	_, err := session.Submit(context.Background(), "an app", false)
	require.NoError(t, err)

	messages := session.Messages()
	messages[0].Content = "mutated"
	assert.Equal(t, "an app", session.Messages()[0].Content)
}

// End-to-end shape of a turn: the attached document flows through to the
// export surfaces unchanged.
func TestTurnProducesExportableDocument(t *testing.T) {
	session := NewSession(&stubGenerator{doc: prd.Sample("a carpool coordination app")})

	message, err := session.Submit(context.Background(), "a carpool coordination app", false)
	require.NoError(t, err)
	require.NotNil(t, message.PRD)
	assert.Equal(t, "a carpool coordination app", message.PRD.ProjectSummary.WhatUserWants)

	markdown, err := export.Render(message.PRD, export.FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, markdown, "# Product Requirements Document")
	assert.Contains(t, markdown, "a carpool coordination app")
}
