package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/greengrowth-cpas/tax-agent/client"
	"github.com/greengrowth-cpas/tax-agent/dto"
	"github.com/greengrowth-cpas/tax-agent/session"
	"go.uber.org/zap"
)

const generalSystemPrompt = "You are a friendly tax assistant for an online W-2 tax filing tool. " +
	"Guide the user through the steps: upload their W-2 PDF, review the extracted fields, " +
	"choose a filing status and any additional deductions, run the calculation, and download " +
	"the return summary. Answer general tax questions plainly and remind the user this tool " +
	"produces an estimate, not professional tax advice."

const dataAwareSystemPrompt = "You are a tax assistant. The user has already uploaded a W-2 and " +
	"calculated a return summary. Answer their question using ONLY the extracted W-2 data and " +
	"computed summary provided below. If the answer is not in the data, say so."

const cleanupSystemPrompt = "You clean up model outputs by fixing spacing, punctuation, and formatting."

// ChatService routes a user question to one of two response strategies based
// on whether a tax summary exists in the session, and appends both turns to
// the transcript. It never raises: collaborator failures become formatted
// user-visible text.
type ChatService struct {
	llm            Completer
	cleanupEnabled bool
	logger         *zap.Logger
}

func NewChatService(llm Completer, cleanupEnabled bool, logger *zap.Logger) *ChatService {
	return &ChatService{
		llm:            llm,
		cleanupEnabled: cleanupEnabled,
		logger:         logger,
	}
}

// Respond answers one user question. The mode predicate is evaluated per call,
// not per session: a summary computed between two questions switches the
// second one to the data-aware strategy.
func (s *ChatService) Respond(ctx context.Context, sess *session.Session, question string) string {
	var reply string
	var err error

	if summary := sess.Summary(); summary != nil {
		reply, err = s.answerFromData(ctx, sess.Fields(), summary, question)
	} else {
		reply, err = s.answerGeneral(ctx, sess.History(), question)
	}

	if err != nil {
		reply = formatChatFailure(err)
		s.logger.Warn("chat completion failed", zap.Error(err))
	} else if s.cleanupEnabled {
		reply = s.cleanupReply(ctx, reply)
	}

	sess.AppendMessage(dto.RoleUser, question)
	sess.AppendMessage(dto.RoleAssistant, reply)

	return reply
}

// answerGeneral includes the full transcript so the model keeps conversational
// context while walking the user through the flow.
func (s *ChatService) answerGeneral(ctx context.Context, history []dto.ChatMessage, question string) (string, error) {
	messages := make([]client.Message, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, client.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, client.Message{Role: dto.RoleUser, Content: question})

	return s.llm.Complete(ctx, generalSystemPrompt, messages)
}

// answerFromData embeds the structured session data instead of the transcript.
// Trading history for data keeps the prompt inside the context window.
func (s *ChatService) answerFromData(ctx context.Context, fields dto.ExtractedFields, summary *dto.TaxSummary, question string) (string, error) {
	fieldsJSON, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		fieldsJSON = []byte("{}")
	}
	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		summaryJSON = []byte("{}")
	}

	content := fmt.Sprintf("Extracted W-2 data:\n%s\n\nComputed tax summary:\n%s\n\nQuestion: %s",
		fieldsJSON, summaryJSON, question)

	return s.llm.Complete(ctx, dataAwareSystemPrompt, []client.Message{
		{Role: dto.RoleUser, Content: content},
	})
}

// cleanupReply re-spaces and re-punctuates a reply without altering content.
// Cleanup failures keep the original reply; the error is logged, never shown
// as if it were the answer.
func (s *ChatService) cleanupReply(ctx context.Context, reply string) string {
	prompt := "Clean and reformat the following text so that words and numbers are properly spaced, " +
		"punctuation is correct, and paragraphs are separated clearly. Do not add or remove information.\n\n" +
		"Fix this:\n\n" + reply

	cleaned, err := s.llm.Complete(ctx, cleanupSystemPrompt, []client.Message{
		{Role: dto.RoleUser, Content: prompt},
	})
	if err != nil {
		s.logger.Warn("cleanup pass failed, keeping original reply", zap.Error(err))
		return reply
	}
	return cleaned
}

// formatChatFailure converts a collaborator error into the user-visible text
// that stands in for the assistant reply.
func formatChatFailure(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("The chat service failed: %d - %s", apiErr.Status, apiErr.Body)
	}
	return fmt.Sprintf("The chat service is unavailable right now: %v", err)
}
