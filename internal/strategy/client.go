package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vcross/metadata-service/internal/utils"
)

// 抓取页面时限制读取的最大字节数,防止异常页面撑爆内存
const maxHTMLBytes = 4 << 20

// Client 策略共用的HTTP客户端
//
// 超时由配置统一下发;超时与连接失败都归为 ErrNetwork,
// 链执行器将其当作普通失败处理。
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient 创建HTTP客户端
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// GetJSON 发起GET请求并解析JSON响应
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", utils.MapHTTPStatusError(resp.StatusCode), resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrMalformedResponse, err)
	}

	return nil
}

// GetHTML 以浏览器UA抓取页面
func (c *Client) GetHTML(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrNetwork, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", utils.MapHTTPStatusError(resp.StatusCode), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHTMLBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrNetwork, err)
	}

	return body, nil
}
