package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"dbc-launchpad/internal/domain"
)

// Default configuration values.
const (
	DefaultAPIBaseURL = "https://api.pinata.cloud"
	DefaultTimeout    = 60 * time.Second

	// Uploaded images larger than this are rejected before pinning.
	maxImageBytes = 16 << 20 // 16 MiB
)

// PinataPublisher implements Publisher against the Pinata pinning API.
type PinataPublisher struct {
	apiBaseURL string
	gatewayURL string
	jwt        string
	client     *http.Client
	logger     *log.Logger
}

// PublisherOption configures PinataPublisher.
type PublisherOption func(*PinataPublisher)

// WithAPIBaseURL overrides the pinning API base URL.
func WithAPIBaseURL(u string) PublisherOption {
	return func(p *PinataPublisher) {
		p.apiBaseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) PublisherOption {
	return func(p *PinataPublisher) {
		p.client = client
	}
}

// WithLogger sets the publisher logger.
func WithLogger(logger *log.Logger) PublisherOption {
	return func(p *PinataPublisher) {
		p.logger = logger
	}
}

// NewPinataPublisher creates a publisher authenticated with a bearer JWT.
// gatewayURL is the public gateway used to build retrievable URIs,
// e.g. "https://gateway.pinata.cloud".
func NewPinataPublisher(jwt, gatewayURL string, opts ...PublisherOption) *PinataPublisher {
	p := &PinataPublisher{
		apiBaseURL: DefaultAPIBaseURL,
		gatewayURL: strings.TrimSuffix(gatewayURL, "/"),
		jwt:        jwt,
		client:     &http.Client{Timeout: DefaultTimeout},
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Compile-time interface check.
var _ Publisher = (*PinataPublisher)(nil)

// tokenMetadata is the pinned metadata document layout.
type tokenMetadata struct {
	Name        string             `json:"name"`
	Symbol      string             `json:"symbol"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	Extensions  map[string]*string `json:"extensions,omitempty"`
}

// Publish fetches the token image, pins it, then pins the assembled metadata
// document. The returned URI points at the metadata document on the gateway.
func (p *PinataPublisher) Publish(ctx context.Context, token *domain.TokenDescriptor) (*Published, error) {
	if token == nil || token.Name == "" || token.Ticker == "" || token.ImageURL == "" {
		return nil, fmt.Errorf("token descriptor missing required fields")
	}

	imageData, err := p.fetchImage(ctx, token.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch token image: %w", err)
	}

	imageCID, err := p.pinFile(ctx, token.Ticker+"-image", imageData)
	if err != nil {
		return nil, fmt.Errorf("pin token image: %w", err)
	}
	imageURI := p.gatewayURI(imageCID)

	doc := tokenMetadata{
		Name:        token.Name,
		Symbol:      token.Ticker,
		Description: token.Description,
		Image:       imageURI,
	}
	if token.Website != nil || token.Twitter != nil || token.Telegram != nil {
		doc.Extensions = map[string]*string{}
		if token.Website != nil {
			doc.Extensions["website"] = token.Website
		}
		if token.Twitter != nil {
			doc.Extensions["twitter"] = token.Twitter
		}
		if token.Telegram != nil {
			doc.Extensions["telegram"] = token.Telegram
		}
	}

	metaCID, err := p.pinJSON(ctx, token.Ticker+"-metadata", doc)
	if err != nil {
		return nil, fmt.Errorf("pin token metadata: %w", err)
	}

	p.logger.Printf("published metadata for %s: image=%s metadata=%s", token.Ticker, imageCID, metaCID)

	return &Published{
		Name:     token.Name,
		Symbol:   token.Ticker,
		URI:      p.gatewayURI(metaCID),
		ImageURI: imageURI,
	}, nil
}

// fetchImage downloads the source image the client pointed us at.
func (p *PinataPublisher) fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image body")
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	return data, nil
}

// pinResponse is the pinning API response for both pin endpoints.
type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// pinFile pins raw bytes via pinFileToIPFS (multipart upload).
func (p *PinataPublisher) pinFile(ctx context.Context, name string, data []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	return p.pin(ctx, "/pinning/pinFileToIPFS", w.FormDataContentType(), &buf)
}

// pinJSON pins a JSON document via pinJSONToIPFS.
func (p *PinataPublisher) pinJSON(ctx context.Context, name string, content interface{}) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"pinataMetadata": map[string]string{"name": name},
		"pinataContent":  content,
	})
	if err != nil {
		return "", fmt.Errorf("marshal pin request: %w", err)
	}

	return p.pin(ctx, "/pinning/pinJSONToIPFS", "application/json", bytes.NewReader(body))
}

// pin posts a pinning request and extracts the resulting CID.
func (p *PinataPublisher) pin(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiBaseURL+path, body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+p.jwt)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var pinned pinResponse
	if err := json.Unmarshal(respBody, &pinned); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if pinned.IpfsHash == "" {
		return "", fmt.Errorf("empty CID in response")
	}

	return pinned.IpfsHash, nil
}

func (p *PinataPublisher) gatewayURI(cid string) string {
	return p.gatewayURL + "/ipfs/" + cid
}
