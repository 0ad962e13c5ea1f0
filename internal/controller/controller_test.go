package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/internal/apperror"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"field errors", apperror.ValidationField("title", "This field is required."), http.StatusBadRequest, `{"title":["This field is required."]}`},
		{"validation without fields", &apperror.Error{Kind: apperror.KindValidation, Message: "bad"}, http.StatusBadRequest, `{"non_field_errors":["bad"]}`},
		{"integrity", apperror.Integrity("Question does not belong to survey"), http.StatusBadRequest, `{"error":"Question does not belong to survey"}`},
		{"permission", apperror.Permission("nope"), http.StatusForbidden, `{"detail":"nope"}`},
		{"not found hides the message", apperror.NotFound("survey 4 not found"), http.StatusNotFound, `{"detail":"Not found."}`},
		{"unauthenticated", apperror.Unauthenticated("Invalid token."), http.StatusUnauthorized, `{"detail":"Invalid token."}`},
		{"wrapped", fmt.Errorf("load: %w", apperror.Permission("nope")), http.StatusForbidden, `{"detail":"nope"}`},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondError(c, tt.err)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if !jsonEqual(t, w.Body.String(), tt.body) {
				t.Errorf("body = %s, want %s", w.Body.String(), tt.body)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw  string
		want uint
		ok   bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"99999999999", 0, false},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: tt.raw}}

		got, ok := ParseID(c, "id")
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseID(%q) = %d, %v, want %d, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
		if !ok && w.Code != http.StatusNotFound {
			t.Errorf("ParseID(%q) status = %d, want 404", tt.raw, w.Code)
		}
	}
}

func TestQueryParams(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?created_by=3&is_active=false&survey=x&flag=maybe", nil)

	if v, err := QueryUint(c, "created_by"); err != nil || v == nil || *v != 3 {
		t.Errorf("created_by = %v, %v", v, err)
	}
	if v, err := QueryUint(c, "missing"); err != nil || v != nil {
		t.Errorf("missing = %v, %v", v, err)
	}
	if _, err := QueryUint(c, "survey"); !apperror.Is(err, apperror.KindValidation) {
		t.Errorf("survey: expected validation error, got %v", err)
	}
	if v, err := QueryBool(c, "is_active"); err != nil || v == nil || *v {
		t.Errorf("is_active = %v, %v", v, err)
	}
	if _, err := QueryBool(c, "flag"); !apperror.Is(err, apperror.KindValidation) {
		t.Errorf("flag: expected validation error, got %v", err)
	}
}

func TestAbsoluteURL(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "http://surveys.local/api/v1/surveys", nil)

	if got := AbsoluteURL(c, "/api/v1/surveys/1/"); got != "http://surveys.local/api/v1/surveys/1/" {
		t.Errorf("got %q", got)
	}
	c.Request.Header.Set("X-Forwarded-Proto", "https")
	if got := AbsoluteURL(c, "/x"); got != "https://surveys.local/x" {
		t.Errorf("got %q", got)
	}
}

func jsonEqual(t *testing.T, a, b string) bool {
	t.Helper()
	var av, bv any
	if err := json.Unmarshal([]byte(a), &av); err != nil {
		t.Fatalf("decode %q: %v", a, err)
	}
	if err := json.Unmarshal([]byte(b), &bv); err != nil {
		t.Fatalf("decode %q: %v", b, err)
	}
	return fmt.Sprint(av) == fmt.Sprint(bv)
}
