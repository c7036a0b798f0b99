// internal/handlers/helpers_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LrenceLapating/Pathfinder/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// testAuthMiddleware は実際のJWT検証の代わりに、固定のユーザーIDをコンテキストへ入れます。
// 認証ミドルウェア自体のテストは internal/middleware 側で行う。
func testAuthMiddleware(userID uuid.UUID, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			ctx = context.WithValue(ctx, model.UserRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// executeRequest は指定されたルーターでリクエストを実行し、レコーダーを返します
func executeRequest(router *chi.Mux, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// createRequest はテスト用のHTTPリクエストを作成します
func createRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	switch b := body.(type) {
	case nil:
		bodyReader = bytes.NewBuffer(nil)
	case string:
		bodyReader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// decodeErrorResponse はエラーエンベロープをデコードします
func decodeErrorResponse(t *testing.T, rr *httptest.ResponseRecorder) model.APIErrorResponse {
	t.Helper()

	var resp model.APIErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response %q: %v", rr.Body.String(), err)
	}
	return resp
}
