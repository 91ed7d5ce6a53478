// Package translate wraps the external machine-translation provider. The
// provider is a plain HTTP API; callers inject the Translator interface so
// the fan-out logic stays testable without network access.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	apierrors "github.com/ong-espoir/api-server-go/pkg/errors"
)

// Translator translates text between two locales
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// DeepLClient calls the DeepL HTTP API
type DeepLClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// DeepLConfig contains configuration for the DeepL client
type DeepLConfig struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// NewDeepLClient creates a DeepL-backed Translator
func NewDeepLClient(config DeepLConfig) *DeepLClient {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &DeepLClient{
		apiURL:     config.APIURL,
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewDeepLClientFromEnv creates a client from DEEPL_API_URL / DEEPL_API_KEY
func NewDeepLClientFromEnv() *DeepLClient {
	return NewDeepLClient(DeepLConfig{
		APIURL: os.Getenv("DEEPL_API_URL"),
		APIKey: os.Getenv("DEEPL_API_KEY"),
	})
}

type deeplResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate sends one text to the provider. Source-equals-target is answered
// locally without a network call.
func (c *DeepLClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == target {
		return text, nil
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("source_lang", strings.ToUpper(source))
	form.Set("target_lang", strings.ToUpper(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build translation request: %w", err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.DependencyError("translation provider", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apierrors.DependencyError("translation provider",
			fmt.Errorf("provider returned status %d", resp.StatusCode))
	}

	var payload deeplResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", apierrors.DependencyError("translation provider", err)
	}
	if len(payload.Translations) == 0 {
		return "", apierrors.DependencyError("translation provider",
			fmt.Errorf("provider returned no translations"))
	}

	return payload.Translations[0].Text, nil
}
