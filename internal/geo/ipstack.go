package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// IpstackClient ipstack IP 定位客户端
type IpstackClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewIpstackClient 创建 ipstack 客户端
func NewIpstackClient(baseURL, apiKey string, timeout time.Duration) *IpstackClient {
	return &IpstackClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ipstackResponse ipstack 响应（只取城市名）
type ipstackResponse struct {
	City string `json:"city"`
}

// Lookup 按 IP 查询城市名，无结果时返回 ("", nil)
func (c *IpstackClient) Lookup(ctx context.Context, ip string) (string, error) {
	q := url.Values{}
	q.Set("access_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/"+url.PathEscape(ip)+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ipstack: unexpected status %d", resp.StatusCode)
	}

	var body ipstackResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("ipstack: decode response: %w", err)
	}

	return body.City, nil
}
