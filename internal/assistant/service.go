// Package assistant answers business questions: it classifies the
// question, assembles the grounding payload and hands both to the language
// model, or renders the payload directly when no model is configured.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/bizpulse/internal/board"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/intent"
	"github.com/alexanderramin/bizpulse/internal/llm"
	"github.com/alexanderramin/bizpulse/internal/report"
	"github.com/alexanderramin/bizpulse/internal/store"
)

// HistoryTurns is how many prior turns accompany a question.
const HistoryTurns = 6

// LeadershipQuestion is asked on behalf of the report command.
const LeadershipQuestion = "Prepare a leadership update with key metrics"

// Answer sources.
const (
	SourceLLM           = "llm"
	SourceDeterministic = "deterministic"
)

// Data is the record store as the assistant uses it.
type Data interface {
	report.Tables
	Summary(ctx context.Context) (store.Summary, error)
	Invalidate()
}

// Answer is the reply to one question plus what it was grounded on.
type Answer struct {
	Text           string
	Source         string
	Model          string
	Intent         intent.Intent
	Analysis       *report.Analysis
	Leadership     *report.LeadershipUpdate
	Clarifications []string
}

// Service answers questions over the two boards.
type Service struct {
	data       Data
	assembler  *report.Assembler
	classifier *intent.Classifier
	client     llm.LLMClient
	observer   UseCaseObserver
}

// NewService wires the assistant. client may be nil, in which case answers
// are rendered from the payload without a model.
func NewService(data Data, assembler *report.Assembler, classifier *intent.Classifier, client llm.LLMClient, observer UseCaseObserver) *Service {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &Service{
		data:       data,
		assembler:  assembler,
		classifier: classifier,
		client:     client,
		observer:   observer,
	}
}

// UsesLLM reports whether answers are generated by a model.
func (s *Service) UsesLLM() bool { return s.client != nil }

// Refresh drops cached boards so the next question refetches them.
func (s *Service) Refresh() { s.data.Invalidate() }

// Answer responds to question given the prior conversation, oldest first.
// Only the last HistoryTurns turns are sent to the model.
func (s *Service) Answer(ctx context.Context, question string, history []domain.Turn) (*Answer, error) {
	in := s.classifier.Classify(question)
	return s.answer(ctx, "answer_question", question, in, history)
}

// Report produces the leadership update whatever the wording.
func (s *Service) Report(ctx context.Context) (*Answer, error) {
	in := s.classifier.Classify(LeadershipQuestion)
	in.Flow = intent.FlowLeadership
	return s.answer(ctx, "leadership_update", LeadershipQuestion, in, nil)
}

func (s *Service) answer(ctx context.Context, name, question string, in intent.Intent, history []domain.Turn) (ans *Answer, err error) {
	start := time.Now()
	defer func() {
		fields := map[string]any{
			"flow":    string(in.Flow),
			"sources": joinSources(in.Sources),
		}
		if in.Sector != "" {
			fields["sector"] = in.Sector
		}
		if in.Quarter != nil {
			fields["quarter"] = in.Quarter.String()
		}
		if ans != nil {
			fields["answer_source"] = ans.Source
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			Duration:  time.Since(start),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
			StartedAt: start,
		})
	}()

	ans = &Answer{Intent: in, Clarifications: intent.Clarifications(question)}

	ans.Analysis, err = s.assembler.Analyze(ctx, in)
	if err != nil {
		return nil, err
	}
	heading, payload := "Data Analysis Results", any(ans.Analysis)
	task := llm.TaskAnswer
	if in.Flow == intent.FlowLeadership {
		ans.Leadership, err = s.assembler.LeadershipUpdate(ctx)
		if err != nil {
			return nil, err
		}
		heading, payload = "Leadership Update Data", ans.Leadership
		task = llm.TaskReport
	}

	if s.client == nil {
		ans.Source = SourceDeterministic
		if ans.Leadership != nil {
			ans.Text = RenderLeadership(ans.Leadership)
		} else {
			ans.Text = RenderAnalysis(ans.Analysis)
		}
		return ans, nil
	}

	sum, err := s.data.Summary(ctx)
	if err != nil {
		return nil, err
	}
	userPrompt, err := buildUserPrompt(question, heading, payload)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: buildSystemPrompt(sum, s.classifier.Reference()),
		History:      toMessages(domain.RecentTurns(history, HistoryTurns)),
		UserPrompt:   userPrompt,
	})
	if err != nil {
		return nil, err
	}
	ans.Text = resp.Text
	ans.Model = resp.Model
	ans.Source = SourceLLM
	return ans, nil
}

func toMessages(turns []domain.Turn) []llm.Message {
	out := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		role := llm.RoleUser
		if t.Role == domain.RoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: t.Content})
	}
	return out
}

func joinSources(srcs []domain.Source) string {
	parts := make([]string, len(srcs))
	for i, s := range srcs {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

// FailureMessage turns an answer failure into the text shown to the user.
func FailureMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, llm.ErrUnauthorized):
		return "Error: the language model API key is invalid or missing. Please check your configuration."
	case errors.Is(err, board.ErrIngestion):
		return fmt.Sprintf("I couldn't load data from monday.com: %v\n\nPlease check the board IDs and MONDAY_API_TOKEN, then try /refresh.", err)
	case errors.Is(err, llm.ErrTimeout), errors.Is(err, llm.ErrUnavailable):
		return fmt.Sprintf("The language model did not respond: %v\n\nPlease try again in a moment.", err)
	default:
		return fmt.Sprintf("I encountered an error while processing your question: %v\n\nPlease try rephrasing your question or check the data connection.", err)
	}
}
