package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestCustomError_Is(t *testing.T) {
	wrapped := fmt.Errorf("building plan: %w", ErrUnknownFood.WithErr(errors.New("food \"zz\" not found")))

	assert.True(t, errors.Is(wrapped, ErrUnknownFood))
	assert.False(t, errors.Is(wrapped, ErrInvalidCategory))
	assert.Equal(t, "找不到指定的食物: food \"zz\" not found", ErrUnknownFood.WithErr(errors.New("food \"zz\" not found")).Error())
	assert.Nil(t, ErrUnknownFood.Err, "WithErr must not mutate the predefined error")
}

func TestAsCustomError(t *testing.T) {
	assert.Nil(t, AsCustomError(nil))

	ce := AsCustomError(fmt.Errorf("wrap: %w", ErrEmptyPlan))
	assert.Equal(t, "EMPTY_MEAL_PLAN", ce.Code)

	ce = AsCustomError(NewValidationError("goal is invalid"))
	assert.Equal(t, ErrCodeInvalidRequest, ce.Code)
	assert.Equal(t, "goal is invalid", ce.Message)

	ce = AsCustomError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternalError, ce.Code)
	assert.Equal(t, http.StatusInternalServerError, ce.Status)
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/plan", nil)

	RespondError(c, ErrEmptyPlan)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, c.IsAborted())
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "EMPTY_MEAL_PLAN", resp.Code)
	assert.Equal(t, "Please select some foods before saving your plan", resp.Message)
	assert.Empty(t, resp.Details)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Request-ID", "abc")
	assert.Equal(t, "abc", RequestID(c))

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	id := RequestID(c)
	assert.Len(t, id, 36)
	assert.Equal(t, id, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, id, RequestID(c))
}

func TestHashString(t *testing.T) {
	assert.Equal(t, HashString("kerala"), HashString("kerala"))
	assert.NotEqual(t, HashString("kerala"), HashString("punjab"))
	assert.Len(t, HashString(""), 64)
}

func TestParseJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, ParseJSON(`{"name":"poha","extra":1}`, &v))
	assert.Equal(t, "poha", v.Name)

	assert.Error(t, ParseJSON(`{"name":"poha"} {"name":"upma"}`, &v))
	assert.Error(t, ParseJSONBytesStrict([]byte(`{"name":"poha","extra":1}`), &v))

	out, err := ToJSON(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"poha"}`, out)
}

func TestMacros(t *testing.T) {
	total := Macros{Calories: 250, Protein: 6.04, Carbs: 45, Fat: 8}.Add(Macros{Calories: 120.26, Protein: 4, Carbs: 24, Fat: 1})
	assert.Equal(t, Macros{Calories: 370.3, Protein: 10, Carbs: 69, Fat: 9}, total.Round())
	assert.Equal(t, 22.9, Round1(22.857))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("unknown"))
}
