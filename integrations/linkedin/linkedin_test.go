package linkedin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainEngine "github.com/AzielCF/az-post/domains/engine"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishTextPost(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/ugcPosts", r.URL.Path)
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		require.Equal(t, "2.0.0", r.Header.Get("X-Restli-Protocol-Version"))

		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("X-RestLi-Id", "urn:li:share:42")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	pub := NewPublisher(srv.URL)
	res, err := pub.Publish(context.Background(), domainEngine.PublishRequest{
		AccessToken: "token-1",
		MemberID:    "abc123",
		Text:        "Hello **world**",
	})
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:42", res.PlatformPostID)

	assert.Equal(t, "urn:li:person:abc123", gotBody["author"])
	content := gotBody["specificContent"].(map[string]any)["com.linkedin.ugc.ShareContent"].(map[string]any)
	assert.Equal(t, "NONE", content["shareMediaCategory"])
	commentary := content["shareCommentary"].(map[string]any)
	assert.Equal(t, "Hello world", commentary["text"], "markdown markers must be stripped")
}

func TestPublishResolvesMemberID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/userinfo":
			require.Equal(t, "Bearer token-2", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]string{"sub": "member-9"})
		case "/v2/ugcPosts":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "urn:li:person:member-9", body["author"])
			w.Header().Set("X-RestLi-Id", "urn:li:share:7")
			w.WriteHeader(http.StatusCreated)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	pub := NewPublisher(srv.URL)
	res, err := pub.Publish(context.Background(), domainEngine.PublishRequest{
		AccessToken: "token-2",
		Text:        "post body",
	})
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:7", res.PlatformPostID)
}

func TestPublishRejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	pub := NewPublisher(srv.URL)
	_, err := pub.Publish(context.Background(), domainEngine.PublishRequest{
		AccessToken: "expired",
		MemberID:    "abc",
		Text:        "post",
	})
	require.Error(t, err)
	assert.IsType(t, pkgError.CredentialError(""), err)
}

func TestPublishPlatformFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	pub := NewPublisher(srv.URL)
	_, err := pub.Publish(context.Background(), domainEngine.PublishRequest{
		AccessToken: "token",
		MemberID:    "abc",
		Text:        "post",
	})
	require.Error(t, err)
	assert.IsType(t, pkgError.PublishError(""), err)
	assert.Contains(t, err.Error(), "boom")
}

func TestPublishMissingToken(t *testing.T) {
	pub := NewPublisher("")
	_, err := pub.Publish(context.Background(), domainEngine.PublishRequest{Text: "post"})
	require.Error(t, err)
	assert.IsType(t, pkgError.CredentialError(""), err)
}

func TestPublishWithImage(t *testing.T) {
	var uploaded []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v2/assets" && r.URL.Query().Get("action") == "registerUpload":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"value": map[string]any{
					"asset": "urn:li:digitalmediaAsset:img1",
					"uploadMechanism": map[string]any{
						"com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest": map[string]any{
							"uploadUrl": "http://" + r.Host + "/upload-slot",
						},
					},
				},
			})
		case r.URL.Path == "/upload-slot":
			require.Equal(t, http.MethodPut, r.Method)
			uploaded, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
		case r.URL.Path == "/v2/ugcPosts":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			content := body["specificContent"].(map[string]any)["com.linkedin.ugc.ShareContent"].(map[string]any)
			assert.Equal(t, "IMAGE", content["shareMediaCategory"])
			media := content["media"].([]any)
			require.Len(t, media, 1)
			assert.Equal(t, "urn:li:digitalmediaAsset:img1", media[0].(map[string]any)["media"])
			w.Header().Set("X-RestLi-Id", "urn:li:share:img")
			w.WriteHeader(http.StatusCreated)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	pub := NewPublisher(srv.URL)
	res, err := pub.Publish(context.Background(), domainEngine.PublishRequest{
		AccessToken: "token",
		MemberID:    "abc",
		Text:        "with image",
		ImageData:   []byte{0x89, 'P', 'N', 'G'},
	})
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:img", res.PlatformPostID)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, uploaded)
}

func TestFormatPostText(t *testing.T) {
	in := "**Bold** title\r\n\r\n\r\n\r\nbody *italic* text\n\n\n\nend  "
	out := FormatPostText(in)
	assert.Equal(t, "Bold title\n\nbody italic text\n\nend", out)
	assert.False(t, strings.Contains(out, "*"))
}
