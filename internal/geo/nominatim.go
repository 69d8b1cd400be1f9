// Package geo 城市解析：反向地理编码、IP 定位、按名称去重入库
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// NominatimClient Nominatim 反向地理编码客户端
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimClient 创建 Nominatim 客户端
//
// Nominatim 要求自定义 User-Agent 标识调用方，timeout 约束单次请求。
func NewNominatimClient(baseURL, userAgent string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// nominatimResponse Nominatim reverse 响应
//
// 地名因地区和行政层级不同出现在不同字段，
// 解析时按固定优先级取第一个非空值。
type nominatimResponse struct {
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		CityDistrict string `json:"city_district"`
	} `json:"address"`
}

// placeName 按 city → town → village → municipality → city_district
// 的优先级取地名，全部为空时返回 ""
func (r *nominatimResponse) placeName() string {
	for _, name := range []string{
		r.Address.City,
		r.Address.Town,
		r.Address.Village,
		r.Address.Municipality,
		r.Address.CityDistrict,
	} {
		if name != "" {
			return name
		}
	}
	return ""
}

// Reverse 反查坐标对应的地名，未解析出地名时返回 ("", nil)
func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%g", lat))
	q.Set("lon", fmt.Sprintf("%g", lon))
	q.Set("format", "json")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("nominatim: decode response: %w", err)
	}

	return body.placeName(), nil
}
