// internal/provider/supabase.go
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/LrenceLapating/Pathfinder/internal/config"
	"github.com/LrenceLapating/Pathfinder/internal/middleware"
	"github.com/LrenceLapating/Pathfinder/internal/model"
)

// SupabaseClient は Supabase GoTrue (/auth/v1) のRESTクライアントです。
// 通常操作は anon キー、admin系は service role キーで認証する。
type SupabaseClient struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

func NewSupabaseClient(cfg *config.SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{
		baseURL:    strings.TrimRight(cfg.URL, "/") + "/auth/v1",
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceRoleKey,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// gotrueError はGoTrueのエラーレスポンス。バージョンによりフィールド名が揺れる。
type gotrueError struct {
	Code             string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e *gotrueError) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	}
	return "unknown provider error"
}

func (c *SupabaseClient) do(ctx context.Context, method, path, apiKey string, body, out any) error {
	logger := middleware.GetLogger(ctx)

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("SupabaseClient.do: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("SupabaseClient.do: build request: %w", err)
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Auth provider unreachable", "method", method, "path", path, "error", err)
		return model.NewAppError("PROVIDER_UNAVAILABLE", "Authentication service is currently unavailable.", "", fmt.Errorf("%w: %v", model.ErrUpstream, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.NewAppError("PROVIDER_UNAVAILABLE", "Authentication service returned an unreadable response.", "", fmt.Errorf("%w: %v", model.ErrUpstream, err))
	}

	if resp.StatusCode >= 400 {
		var gerr gotrueError
		_ = json.Unmarshal(respBody, &gerr)
		logger.Warn("Auth provider rejected request",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"provider_code", gerr.Code,
		)
		return c.mapError(resp.StatusCode, &gerr)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("SupabaseClient.do: decode response: %w", err)
		}
	}
	return nil
}

// mapError はGoTrueのHTTPエラーをアプリケーションのエラー分類へ変換します
func (c *SupabaseClient) mapError(status int, gerr *gotrueError) error {
	text := gerr.text()

	// 重複メールはerror_code、またはメッセージ文面で判定する
	if gerr.Code == "email_exists" || gerr.Code == "user_already_exists" ||
		strings.Contains(strings.ToLower(text), "already registered") {
		return model.NewAppError("DUPLICATE_EMAIL", "Email already in use", "email", model.ErrConflict)
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		// password grant失敗・無効トークンなど
		return model.NewAppError("AUTHENTICATION_FAILED", "Invalid email or password", "", model.ErrUnauthorized)
	case http.StatusNotFound:
		return model.NewAppError("NOT_FOUND", "User not found", "", model.ErrNotFound)
	case http.StatusUnprocessableEntity:
		return model.NewAppError("INVALID_REQUEST", text, "", model.ErrInvalidInput)
	default:
		return model.NewAppError("PROVIDER_ERROR", text, "", fmt.Errorf("%w: status %d", model.ErrUpstream, status))
	}
}

func (c *SupabaseClient) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*Identity, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}
	if metadata != nil {
		payload["data"] = metadata
	}

	// メール確認が有効な場合、/signupはセッションなしでユーザーのみ返す
	var identity Identity
	if err := c.do(ctx, http.MethodPost, "/signup", c.anonKey, payload, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *SupabaseClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", c.anonKey, payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *SupabaseClient) AdminCreateUser(ctx context.Context, params AdminCreateUserParams) (*Identity, error) {
	var identity Identity
	if err := c.do(ctx, http.MethodPost, "/admin/users", c.serviceKey, params, &identity); err != nil {
		return nil, err
	}
	identity.EmailConfirmed = params.EmailConfirm
	return &identity, nil
}

func (c *SupabaseClient) AdminUpdateUser(ctx context.Context, userID string, params AdminUpdateUserParams) (*Identity, error) {
	var identity Identity
	path := "/admin/users/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodPut, path, c.serviceKey, params, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *SupabaseClient) AdminGenerateLink(ctx context.Context, linkType LinkType, email, redirectTo string) (*Link, error) {
	payload := map[string]any{
		"type":  string(linkType),
		"email": email,
	}
	if redirectTo != "" {
		payload["redirect_to"] = redirectTo
	}

	var link Link
	if err := c.do(ctx, http.MethodPost, "/admin/generate_link", c.serviceKey, payload, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *SupabaseClient) Verify(ctx context.Context, verifyType VerifyType, token string) (*Session, error) {
	payload := map[string]string{
		"type":       string(verifyType),
		"token_hash": token,
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/verify", c.anonKey, payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
