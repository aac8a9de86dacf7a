package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	domainEngine "github.com/AzielCF/az-post/domains/engine"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"github.com/sirupsen/logrus"
)

const (
	httpTimeout     = 30 * time.Second
	restliVersion   = "2.0.0"
	defaultAPIBase  = "https://api.linkedin.com"
	maxResponseSize = 1 << 20
)

var multiBlankLines = regexp.MustCompile(`\n{3,}`)

// Publisher posts content to LinkedIn through the ugcPosts API.
type Publisher struct {
	apiBase    string
	httpClient *http.Client
}

func NewPublisher(apiBase string) *Publisher {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &Publisher{
		apiBase:    strings.TrimRight(apiBase, "/"),
		httpClient: &http.Client{Timeout: httpTimeout},
	}
}

// Publish creates a UGC post. When the request carries image data, the
// image is registered and uploaded first and the post references the asset.
func (p *Publisher) Publish(ctx context.Context, req domainEngine.PublishRequest) (domainEngine.PublishResult, error) {
	if req.AccessToken == "" {
		return domainEngine.PublishResult{}, pkgError.CredentialError("missing platform access token")
	}

	memberID := req.MemberID
	if memberID == "" {
		resolved, err := p.resolveMemberID(ctx, req.AccessToken)
		if err != nil {
			return domainEngine.PublishResult{}, err
		}
		memberID = resolved
	}

	author := "urn:li:person:" + memberID
	text := FormatPostText(req.Text)

	mediaCategory := "NONE"
	var media []map[string]any
	if len(req.ImageData) > 0 {
		asset, err := p.uploadImage(ctx, req.AccessToken, author, req.ImageData)
		if err != nil {
			// The text still goes out when the image pipeline breaks.
			logrus.WithError(err).Warn("[LINKEDIN] Image upload failed, publishing text only")
		} else {
			mediaCategory = "IMAGE"
			media = []map[string]any{{
				"status": "READY",
				"media":  asset,
			}}
		}
	}

	shareContent := map[string]any{
		"shareCommentary":    map[string]any{"text": text},
		"shareMediaCategory": mediaCategory,
	}
	if len(media) > 0 {
		shareContent["media"] = media
	}

	body := map[string]any{
		"author":         author,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": shareContent,
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	respBody, header, err := p.doJSON(ctx, http.MethodPost, "/v2/ugcPosts", req.AccessToken, body)
	if err != nil {
		return domainEngine.PublishResult{}, err
	}

	postID := header.Get("X-RestLi-Id")
	if postID == "" {
		var parsed struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(respBody, &parsed)
		postID = parsed.ID
	}

	logrus.Infof("[LINKEDIN] Published post %s for %s", postID, author)
	return domainEngine.PublishResult{PlatformPostID: postID}, nil
}

// resolveMemberID falls back to the OpenID userinfo endpoint when the owner
// record carries no member id.
func (p *Publisher) resolveMemberID(ctx context.Context, token string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBase+"/v2/userinfo", nil)
	if err != nil {
		return "", pkgError.PublishError(fmt.Sprintf("build userinfo request: %v", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgError.PublishError(fmt.Sprintf("userinfo request: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", pkgError.CredentialError("platform rejected the access token")
	}
	if resp.StatusCode != http.StatusOK {
		return "", pkgError.PublishError(fmt.Sprintf("userinfo returned status %d", resp.StatusCode))
	}

	var userinfo struct {
		Sub string `json:"sub"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&userinfo); err != nil {
		return "", pkgError.PublishError(fmt.Sprintf("decode userinfo: %v", err))
	}
	if userinfo.Sub == "" {
		return "", pkgError.CredentialError("userinfo response carries no member id")
	}
	return userinfo.Sub, nil
}

// uploadImage registers an upload slot and PUTs the binary, returning the
// asset URN to reference from the post.
func (p *Publisher) uploadImage(ctx context.Context, token, author string, data []byte) (string, error) {
	registerBody := map[string]any{
		"registerUploadRequest": map[string]any{
			"recipes": []string{"urn:li:digitalmediaRecipe:feedshare-image"},
			"owner":   author,
			"serviceRelationships": []map[string]any{{
				"relationshipType": "OWNER",
				"identifier":       "urn:li:userGeneratedContent",
			}},
		},
	}

	respBody, _, err := p.doJSON(ctx, http.MethodPost, "/v2/assets?action=registerUpload", token, registerBody)
	if err != nil {
		return "", err
	}

	var registered struct {
		Value struct {
			Asset           string `json:"asset"`
			UploadMechanism map[string]struct {
				UploadURL string `json:"uploadUrl"`
			} `json:"uploadMechanism"`
		} `json:"value"`
	}
	if err := json.Unmarshal(respBody, &registered); err != nil {
		return "", pkgError.PublishError(fmt.Sprintf("decode registerUpload: %v", err))
	}

	var uploadURL string
	for _, mech := range registered.Value.UploadMechanism {
		if mech.UploadURL != "" {
			uploadURL = mech.UploadURL
			break
		}
	}
	if uploadURL == "" || registered.Value.Asset == "" {
		return "", pkgError.PublishError("registerUpload returned no upload slot")
	}

	putReq, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", pkgError.PublishError(fmt.Sprintf("build upload request: %v", err))
	}
	putReq.Header.Set("Authorization", "Bearer "+token)
	putReq.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.httpClient.Do(putReq)
	if err != nil {
		return "", pkgError.PublishError(fmt.Sprintf("upload image: %v", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", pkgError.PublishError(fmt.Sprintf("image upload returned status %d", resp.StatusCode))
	}

	return registered.Value.Asset, nil
}

func (p *Publisher) doJSON(ctx context.Context, method, path, token string, body any) ([]byte, http.Header, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, pkgError.PublishError(fmt.Sprintf("encode request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, p.apiBase+path, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, pkgError.PublishError(fmt.Sprintf("build request: %v", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Restli-Protocol-Version", restliVersion)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, nil, pkgError.PublishError(fmt.Sprintf("request %s: %v", path, err))
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, nil, pkgError.CredentialError("platform rejected the access token")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, pkgError.PublishError(fmt.Sprintf("%s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	return respBody, resp.Header, nil
}

// FormatPostText cleans generated text for the platform: markdown bold
// markers are stripped, line endings normalized and blank-line runs
// collapsed to a single empty line.
func FormatPostText(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = multiBlankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
