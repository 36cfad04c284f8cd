package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/TruLie13/El-Paso-AI/internal/assistant"
	assistantmocks "github.com/TruLie13/El-Paso-AI/internal/assistant/mocks"
)

func TestAskHandler(t *testing.T) {
	answer := assistant.AskResponse{
		Answer:    "Per Section 12.4.3, parking within 15 feet of a fire hydrant is prohibited.",
		Citations: []string{"12.4.3"},
		Evidence: []assistant.EvidenceRef{
			{SectionNumber: "12.4.3", Title: "Fire Lane Obstructions", Score: 12.5},
		},
		EvidenceRounds: 1,
	}

	tests := []struct {
		name       string
		method     string
		body       string
		engine     func(m *assistantmocks.MockEngine)
		wantStatus int
	}{
		{
			name:   "successful ask",
			method: http.MethodPost,
			body:   `{"question": "Can I park near a fire hydrant?"}`,
			engine: func(m *assistantmocks.MockEngine) {
				m.EXPECT().
					Ask(gomock.Any(), assistant.AskRequest{Question: "Can I park near a fire hydrant?"}).
					Return(answer, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid json",
			method:     http.MethodPost,
			body:       `{"question": `,
			engine:     func(m *assistantmocks.MockEngine) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty question",
			method:     http.MethodPost,
			body:       `{"question": ""}`,
			engine:     func(m *assistantmocks.MockEngine) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "engine rejects question",
			method: http.MethodPost,
			body:   `{"question": "   "}`,
			engine: func(m *assistantmocks.MockEngine) {
				m.EXPECT().
					Ask(gomock.Any(), gomock.Any()).
					Return(assistant.AskResponse{}, assistant.ErrInvalidInput)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "generation unavailable",
			method: http.MethodPost,
			body:   `{"question": "Can I park near a fire hydrant?"}`,
			engine: func(m *assistantmocks.MockEngine) {
				m.EXPECT().
					Ask(gomock.Any(), gomock.Any()).
					Return(assistant.AskResponse{}, assistant.ErrGenerationUnavailable)
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			body:       "",
			engine:     func(m *assistantmocks.MockEngine) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			engine := assistantmocks.NewMockEngine(ctrl)
			tt.engine(engine)

			req := httptest.NewRequest(tt.method, "/api/v1/ask", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			NewAskHandler(engine).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var resp AskResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Answer != answer.Answer {
					t.Errorf("answer = %q, want %q", resp.Answer, answer.Answer)
				}
				if len(resp.Citations) != 1 || resp.Citations[0] != "12.4.3" {
					t.Errorf("citations = %v, want [12.4.3]", resp.Citations)
				}
				if len(resp.Evidence) != 1 || resp.Evidence[0].SectionNumber != "12.4.3" {
					t.Errorf("evidence = %v, want 12.4.3 ref", resp.Evidence)
				}
				if resp.EvidenceRounds != 1 {
					t.Errorf("evidence_rounds = %d, want 1", resp.EvidenceRounds)
				}
				if resp.AnswerHTML != "" {
					t.Error("answer_html present without format=html")
				}
			}
		})
	}
}

func TestAskHandlerHTMLFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := assistantmocks.NewMockEngine(ctrl)
	engine.EXPECT().
		Ask(gomock.Any(), gomock.Any()).
		Return(assistant.AskResponse{
			Answer:    "Parking near a hydrant is **prohibited** per Section 12.4.3.",
			Citations: []string{"12.4.3"},
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask?format=html",
		strings.NewReader(`{"question": "Can I park near a fire hydrant?"}`))
	rec := httptest.NewRecorder()

	NewAskHandler(engine).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp AskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.AnswerHTML, "<strong>prohibited</strong>") {
		t.Errorf("answer_html = %q, want rendered markdown", resp.AnswerHTML)
	}
}
