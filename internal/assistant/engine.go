package assistant

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks github.com/TruLie13/El-Paso-AI/internal/assistant Engine

import (
	"context"
	"strings"

	"github.com/TruLie13/El-Paso-AI/internal/contextutil"
	"github.com/TruLie13/El-Paso-AI/internal/llm"
)

// NoEvidenceAnswer is returned without calling the generator when round-1
// retrieval finds nothing.
const NoEvidenceAnswer = "No relevant section of the El Paso municipal code was found for this question. " +
	"Try rephrasing it or naming a specific code section."

// Engine answers questions about the municipal code.
type Engine interface {
	// Ask runs the bounded two-round retrieve/generate/assess protocol for
	// one question. Only generation failures surface as errors; retrieval
	// problems degrade to smaller evidence sets.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// Options tunes the engine. Zero values select defaults.
type Options struct {
	// TopK caps the evidence set passed to the generator.
	TopK int
	// PerQueryK is the chunk count requested per retrieval query.
	PerQueryK int
	// Temperature for generation calls.
	Temperature float32
}

// codeEngine implements Engine. It holds only read-only backend handles and
// keeps no state between questions, so concurrent Ask calls are independent.
type codeEngine struct {
	retriever   *Retriever
	generator   llm.Generator
	checker     Checker
	topK        int
	perQueryK   int
	temperature float32
}

// NewEngine creates the session engine. The retriever and generator are
// shared read-only across sessions; checker may be nil for the default
// heuristic.
func NewEngine(retriever *Retriever, generator llm.Generator, checker Checker, opts Options) Engine {
	if checker == nil {
		checker = &HeuristicChecker{}
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	perQueryK := opts.PerQueryK
	if perQueryK <= 0 {
		perQueryK = 4
	}
	return &codeEngine{
		retriever:   retriever,
		generator:   generator,
		checker:     checker,
		topK:        topK,
		perQueryK:   perQueryK,
		temperature: opts.Temperature,
	}
}

// Ask drives the session state machine:
//
//	START → ROUND1_RETRIEVE → ROUND1_GENERATE → ASSESS → DONE
//	                                          ↘ ROUND2_RETRIEVE → ROUND2_GENERATE → DONE
//
// The correction loop is hard-capped at one extra round, so a session never
// issues more than two generation calls.
func (e *codeEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return AskResponse{}, WrapError(ErrInvalidInput, "question is empty")
	}

	sess := &session{question: question, round: 1}

	// ROUND1_RETRIEVE
	sess.queries = Expand(question)
	candidates := e.retriever.Retrieve(ctx, question, sess.queries, e.perQueryK)
	sess.evidence1 = Score(question, candidates, e.topK)

	logger.InfoContext(ctx, "round 1 retrieval completed",
		"queries", len(sess.queries), "evidence", len(sess.evidence1))

	// Empty evidence short-circuits: answering with no context would only
	// invite hallucinated citations.
	if len(sess.evidence1) == 0 {
		logger.InfoContext(ctx, "no evidence found, returning fixed answer")
		return AskResponse{
			Answer:         NoEvidenceAnswer,
			Citations:      []string{},
			Evidence:       []EvidenceRef{},
			EvidenceRounds: 1,
		}, nil
	}

	// ROUND1_GENERATE
	draft, err := e.generate(ctx, question, sess.evidence1)
	if err != nil {
		return AskResponse{}, err
	}
	sess.draft = draft

	// ASSESS
	if !e.checker.NeedsMoreContext(draft) {
		logger.InfoContext(ctx, "answer accepted after round 1")
		return e.respond(sess, draft, sess.evidence1), nil
	}

	// ROUND2_RETRIEVE: targeted queries straight from the draft, no
	// re-expansion.
	sess.round = 2
	targets := ExtractTargets(draft, question)
	if len(targets) == 0 {
		// A malformed extraction must never abort the session; reuse the
		// round-1 queries instead.
		logger.WarnContext(ctx, "target extraction returned nothing, reusing round 1 queries")
		targets = sess.queries
	}

	logger.InfoContext(ctx, "draft answer flagged insufficient, running targeted round",
		"targets", len(targets))

	candidates2 := e.retriever.Retrieve(ctx, question, targets, e.perQueryK)
	sess.evidence2 = Score(question, candidates2, e.topK)
	merged := Merge(sess.evidence1, sess.evidence2, e.topK)

	// ROUND2_GENERATE: final regardless of its own quality; the loop is
	// bounded at one correction round.
	final, err := e.generate(ctx, question, merged)
	if err != nil {
		return AskResponse{}, err
	}

	logger.InfoContext(ctx, "answer generated after targeted round",
		"merged_evidence", len(merged))
	return e.respond(sess, final, merged), nil
}

// generate formats the prompt and invokes the generation backend. Backend
// failures are mapped to ErrGenerationUnavailable for the caller.
func (e *codeEngine) generate(ctx context.Context, question string, evidence EvidenceSet) (string, error) {
	answer, err := e.generator.Complete(ctx, buildMessages(question, evidence), llm.ChatParams{
		Temperature: e.temperature,
	})
	if err != nil {
		logger := contextutil.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "generation call failed", "error", err)
		return "", WrapError(ErrGenerationUnavailable, err.Error())
	}
	return answer, nil
}

// respond assembles the caller-facing result from the session's final state.
func (e *codeEngine) respond(sess *session, answer string, evidence EvidenceSet) AskResponse {
	refs := make([]EvidenceRef, 0, len(evidence))
	for _, c := range evidence {
		if c.Section == nil {
			continue
		}
		refs = append(refs, EvidenceRef{
			SectionNumber: c.Section.SectionNumber,
			Title:         c.Section.Title,
			Score:         c.Score,
		})
	}

	return AskResponse{
		Answer:         answer,
		Citations:      evidence.Citations(),
		Evidence:       refs,
		EvidenceRounds: sess.round,
	}
}
