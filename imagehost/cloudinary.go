package imagehost

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Cloudinary uploads through the Cloudinary REST upload endpoint using
// signed requests. One POST per image, no retries: a failed upload fails
// the whole request (completed uploads are not rolled back).
type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string

	// BaseURL overrides the API host, for tests.
	BaseURL string

	HTTPClient *http.Client
}

func NewCloudinary(cloudName, apiKey, apiSecret string) *Cloudinary {
	return &Cloudinary{
		CloudName:  cloudName,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		BaseURL:    "https://api.cloudinary.com",
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Cloudinary) Upload(ctx context.Context, data []byte, mimeType, folder string) (string, error) {
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	form := url.Values{}
	form.Set("file", dataURI)
	form.Set("api_key", c.APIKey)
	form.Set("timestamp", timestamp)
	form.Set("folder", folder)
	form.Set("signature", c.sign(folder, timestamp))

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", c.BaseURL, c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image host unreachable: %w", err)
	}
	defer resp.Body.Close()

	var body cloudinaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("image host returned unreadable response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if body.Error.Message != "" {
			return "", fmt.Errorf("image host rejected upload: %s", body.Error.Message)
		}
		return "", fmt.Errorf("image host rejected upload: status %d", resp.StatusCode)
	}
	if body.SecureURL == "" {
		return "", fmt.Errorf("image host returned no URL")
	}
	return body.SecureURL, nil
}

// sign produces the hex SHA-1 of the sorted upload params plus the secret,
// as the Cloudinary API requires.
func (c *Cloudinary) sign(folder, timestamp string) string {
	toSign := fmt.Sprintf("folder=%s&timestamp=%s%s", folder, timestamp, c.APISecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(toSign)))
}
