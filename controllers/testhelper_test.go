package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/nguynqun376/MindGuardAI/config"
	"github.com/nguynqun376/MindGuardAI/models"
	"github.com/nguynqun376/MindGuardAI/routes"
	"github.com/nguynqun376/MindGuardAI/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testUserID = "test-user"

// stubAI 确定性的AI替身
type stubAI struct {
	reply    string
	greeting string
	err      error
	analysis *models.JournalAnalysis
}

func (s *stubAI) AnalyzeJournal(ctx context.Context, text string) models.JournalAnalysis {
	if s.analysis != nil {
		return *s.analysis
	}
	return services.FallbackAnalysis()
}

func (s *stubAI) GenerateChatReply(ctx context.Context, history []models.ChatMessage, message string, moodLevel int, moodTag string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubAI) GenerateGreeting(ctx context.Context, moodLevel int) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.greeting, nil
}

func setupServer(t *testing.T, ai services.AIClient) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Logger = zap.NewNop().Sugar()

	db, err := config.InitDB(config.Config{DBPath: ":memory:"})
	require.NoError(t, err)

	r := gin.New()
	routes.RegisterRoutes(r, config.Config{UserEmail: "user@example.com"}, db, nil, ai)
	return r, db
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, withIdentity bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if withIdentity {
		req.Header.Set("x-user-id", testUserID)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
