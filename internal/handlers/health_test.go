package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	storagemocks "github.com/TruLie13/El-Paso-AI/internal/storage/mocks"
)

// stubChecker is a CollectionChecker with a canned answer.
type stubChecker struct {
	exists bool
	err    error
}

func (s *stubChecker) CollectionExists(context.Context, string) (bool, error) {
	return s.exists, s.err
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checker    *stubChecker
		sections   func(m *storagemocks.MockSectionStore)
		wantStatus int
		wantHealth string
	}{
		{
			name:    "all dependencies up",
			checker: &stubChecker{exists: true},
			sections: func(m *storagemocks.MockSectionStore) {
				m.EXPECT().Count(gomock.Any()).Return(1840, nil)
			},
			wantStatus: http.StatusOK,
			wantHealth: "healthy",
		},
		{
			name:    "vector store down",
			checker: &stubChecker{err: errors.New("connection refused")},
			sections: func(m *storagemocks.MockSectionStore) {
				m.EXPECT().Count(gomock.Any()).Return(1840, nil)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
		},
		{
			name:    "collection missing",
			checker: &stubChecker{exists: false},
			sections: func(m *storagemocks.MockSectionStore) {
				m.EXPECT().Count(gomock.Any()).Return(0, nil)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
		},
		{
			name:    "section store down",
			checker: &stubChecker{exists: true},
			sections: func(m *storagemocks.MockSectionStore) {
				m.EXPECT().Count(gomock.Any()).Return(0, errors.New("db closed"))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sections := storagemocks.NewMockSectionStore(ctrl)
			tt.sections(sections)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			rec := httptest.NewRecorder()

			NewHealthHandler(tt.checker, sections, "code").ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantHealth {
				t.Errorf("health status = %q, want %q", resp.Status, tt.wantHealth)
			}
			if tt.wantHealth == "healthy" && resp.SectionCount != 1840 {
				t.Errorf("section_count = %d, want 1840", resp.SectionCount)
			}
		})
	}
}

func TestHealthHandlerMethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewHealthHandler(&stubChecker{exists: true}, storagemocks.NewMockSectionStore(ctrl), "code")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
