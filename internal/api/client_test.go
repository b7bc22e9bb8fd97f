package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/douhashi/kensaku/internal/decode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// message is a minimal decodable response type for dispatcher tests.
type message struct {
	Text string
}

func decodeMessage(obj decode.Object) (message, error) {
	text, err := decode.String(obj, "text")
	if err != nil {
		return message{}, err
	}
	return message{Text: text}, nil
}

func messageEndpoint() Endpoint[message] {
	return Endpoint[message]{
		Path:   "messages/latest",
		Method: http.MethodGet,
		Params: url.Values{"q": {"hello world"}},
		Decode: decodeMessage,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{
			name:    "正常系: オプションなしで作成できる",
			opts:    nil,
			wantErr: false,
		},
		{
			name:    "正常系: トークン付きで作成できる",
			opts:    []Option{WithToken("test-token")},
			wantErr: false,
		},
		{
			name:    "異常系: 不正なベースURLはエラーになる",
			opts:    []Option{WithBaseURL("://bad")},
			wantErr: true,
		},
		{
			name:    "異常系: 相対URLはエラーになる",
			opts:    []Option{WithBaseURL("api.github.com")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestDo(t *testing.T) {
	t.Run("正常系: レスポンスをデコードして返す", func(t *testing.T) {
		var gotPath, gotQuery, gotAccept string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query().Get("q")
			gotAccept = r.Header.Get("Accept")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"text": "hello"}`))
		})

		resp, err := Do(context.Background(), client, messageEndpoint())
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "hello", resp.Text)
		assert.Equal(t, "/messages/latest", gotPath)
		assert.Equal(t, "hello world", gotQuery)
		assert.Equal(t, "application/vnd.github+json", gotAccept)
	})

	t.Run("異常系: JSONオブジェクトでないボディはUnexpectedResponseになる", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{name: "HTML", body: "<html>not json</html>"},
			{name: "JSON配列", body: `[1, 2, 3]`},
			{name: "JSON null", body: `null`},
			{name: "空ボディ", body: ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte(tt.body))
				})

				resp, err := Do(context.Background(), client, messageEndpoint())
				assert.Nil(t, resp)
				require.Error(t, err)
				assert.True(t, IsUnexpectedResponseError(err))
			})
		}
	})

	t.Run("異常系: 非2xxはボディのmessageで注釈されたエラーになる", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message": "rate limited"}`))
		})

		resp, err := Do(context.Background(), client, messageEndpoint())
		assert.Nil(t, resp)
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, ErrorTypeServerError, apiErr.Type)
		assert.Equal(t, 500, apiErr.StatusCode)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("異常系: デコード失敗はデコードエラーのまま返る", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"wrong_key": "hello"}`))
		})

		resp, err := Do(context.Background(), client, messageEndpoint())
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.True(t, decode.IsMissingKey(err))

		var decErr *decode.Error
		require.ErrorAs(t, err, &decErr)
		assert.Equal(t, "text", decErr.Key)
	})

	t.Run("異常系: 接続できない場合はNetworkエラーになる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		serverURL := server.URL
		server.Close()

		client, err := NewClient(WithBaseURL(serverURL))
		require.NoError(t, err)

		resp, err := Do(context.Background(), client, messageEndpoint())
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.True(t, IsNetworkError(err))
	})

	t.Run("異常系: GET以外のメソッドは拒否する", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

		endpoint := messageEndpoint()
		endpoint.Method = http.MethodPost

		resp, err := Do(context.Background(), client, endpoint)
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported method")
	})

	t.Run("正常系: トークンはAuthorizationヘッダーで送信される", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"text": "hello"}`))
		}))
		t.Cleanup(server.Close)

		client, err := NewClient(WithBaseURL(server.URL), WithToken("test-token"))
		require.NoError(t, err)

		_, err = Do(context.Background(), client, messageEndpoint())
		require.NoError(t, err)
		assert.Equal(t, "Bearer test-token", gotAuth)
	})
}

func TestRequest(t *testing.T) {
	t.Run("正常系: ハンドラーは非同期に1回だけ呼ばれる", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"text": "hello"}`))
		})

		type outcome struct {
			resp *message
			err  error
		}
		done := make(chan outcome, 2)

		Request(context.Background(), client, messageEndpoint(), func(resp *message, err error) {
			done <- outcome{resp: resp, err: err}
		})

		select {
		case got := <-done:
			require.NoError(t, got.err)
			require.NotNil(t, got.resp)
			assert.Equal(t, "hello", got.resp.Text)
		case <-time.After(5 * time.Second):
			t.Fatal("handler was not invoked")
		}

		// 2回目の呼び出しがないこと
		select {
		case <-done:
			t.Fatal("handler was invoked more than once")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("異常系: エラー時はレスポンスなしでハンドラーが呼ばれる", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not Found"}`))
		})

		type outcome struct {
			resp *message
			err  error
		}
		done := make(chan outcome, 1)

		Request(context.Background(), client, messageEndpoint(), func(resp *message, err error) {
			done <- outcome{resp: resp, err: err}
		})

		select {
		case got := <-done:
			assert.Nil(t, got.resp)
			require.Error(t, got.err)
			assert.True(t, IsNotFoundError(got.err))
		case <-time.After(5 * time.Second):
			t.Fatal("handler was not invoked")
		}
	})
}
