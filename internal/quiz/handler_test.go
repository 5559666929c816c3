package quiz_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmatos-dev/quizforge/internal/auth"
	"github.com/dmatos-dev/quizforge/internal/quiz"
	"github.com/dmatos-dev/quizforge/internal/quizgen"
)

// quizServer mounts the quiz routes behind a stub identity, the way the
// application router mounts them behind the JWT middleware.
func quizServer(t *testing.T, db *gorm.DB, generator quizgen.Service, userID uuid.UUID) *httptest.Server {
	t.Helper()

	c := quiz.NewQuizContainer(db, generator)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			claims := &auth.UserClaims{UserID: userID.String(), Plan: "pro"}
			next.ServeHTTP(w, req.WithContext(auth.ContextWithClaims(req.Context(), claims)))
		})
	})
	r.Mount("/", quiz.Routes(c.Handler))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestSaveQuizHandler(t *testing.T) {
	db := testDB(t)
	userID := uuid.New()
	server := quizServer(t, db, nil, userID)

	t.Run("Created", func(t *testing.T) {
		body, err := json.Marshal(generatedQuiz())
		require.NoError(t, err)

		resp, err := http.Post(server.URL+"/", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var saved quiz.Quiz
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
		assert.Equal(t, userID, saved.UserID)
		assert.Equal(t, float64(5), saved.TotalPoints)
	})

	t.Run("EmptyQuestions", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/", "application/json", bytes.NewReader([]byte(`{"title": "Empty", "questions": []}`)))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/", "application/json", bytes.NewReader([]byte(`{broken`)))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListAndGetQuizHandlers(t *testing.T) {
	db := testDB(t)
	userID := uuid.New()
	server := quizServer(t, db, nil, userID)
	saved := seed(t, db, userID)
	seed(t, db, uuid.New())

	t.Run("ListOwnQuizzes", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var quizzes []quiz.Quiz
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&quizzes))
		assert.Len(t, quizzes, 1)
		assert.Equal(t, saved.ID, quizzes[0].ID)
	})

	t.Run("GetWithQuestions", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/" + saved.ID.String())
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got quiz.Quiz
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Len(t, got.Questions, 2)
	})

	t.Run("GetUnknown", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/" + uuid.NewString())
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteQuizHandler(t *testing.T) {
	db := testDB(t)
	userID := uuid.New()
	server := quizServer(t, db, nil, userID)
	saved := seed(t, db, userID)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/"+saved.ID.String(), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	getResp, err := http.Get(server.URL + "/" + saved.ID.String())
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestRegenerateStoredQuestionHandler(t *testing.T) {
	db := testDB(t)
	userID := uuid.New()
	generator := &stubGenerator{replacement: &quizgen.Question{
		ID:            uuid.NewString(),
		Kind:          quizgen.KindChoice,
		Content:       "What is 2/4 + 1/4?",
		Options:       []string{"1/4", "2/4", "3/4", "4/4"},
		CorrectAnswer: quizgen.Answer{"3/4"},
		Points:        2,
		Difficulty:    quizgen.DifficultyEasy,
	}}
	server := quizServer(t, db, generator, userID)
	saved := seed(t, db, userID)

	stored, err := quiz.NewRepository(db).GetByID(saved.ID.String())
	require.NoError(t, err)
	original := stored.Questions[0]

	t.Run("Success", func(t *testing.T) {
		url := server.URL + "/" + saved.ID.String() + "/questions/" + original.ID.String() + "/regenerate"
		resp, err := http.Post(url, "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Success  bool              `json:"success"`
			Question quiz.QuizQuestion `json:"question"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.NotEqual(t, original.ID, body.Question.ID)
		assert.Equal(t, "What is 2/4 + 1/4?", body.Question.Content)
	})

	t.Run("UnknownQuiz", func(t *testing.T) {
		url := server.URL + "/" + uuid.NewString() + "/questions/" + uuid.NewString() + "/regenerate"
		resp, err := http.Post(url, "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("UnknownQuestion", func(t *testing.T) {
		url := server.URL + "/" + saved.ID.String() + "/questions/" + uuid.NewString() + "/regenerate"
		resp, err := http.Post(url, "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
