package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"diet-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	SourceEmbedded = "embedded"

	defaultFetchTimeout = 10 * time.Second
)

// Load 依來源載入目錄
//   - "" 或 "embedded": 內建目錄
//   - http:// 或 https://: 以 HTTP GET 下載
//   - 其他: 本機檔案路徑
func Load(ctx context.Context, source string, timeout time.Duration) (*Catalog, error) {
	start := time.Now()

	var (
		c   *Catalog
		err error
	)
	switch {
	case source == "" || source == SourceEmbedded:
		c, err = Default()
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		c, err = fetch(ctx, source, timeout)
	default:
		c, err = readFile(source)
	}
	if err != nil {
		common.LogError("食物目錄載入失敗",
			zap.String("source", source),
			zap.Error(err),
		)
		return nil, err
	}

	common.LogInfo("食物目錄已載入",
		zap.String("source", sourceLabel(source)),
		zap.Int("items", c.Len()),
		zap.Strings("regions", c.Regions()),
		zap.Duration("耗時", time.Since(start)),
	)
	return c, nil
}

func readFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.ErrCatalogLoad.WithErr(fmt.Errorf("read %s: %w", path, err))
	}
	return Parse(data)
}

func fetch(ctx context.Context, url string, timeout time.Duration) (*Catalog, error) {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("Accept", "application/json")

	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, common.ErrCatalogLoad.WithErr(fmt.Errorf("fetch %s: %w", url, err))
	}
	if resp.IsError() {
		return nil, common.ErrCatalogLoad.WithErr(fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode()))
	}
	return Parse(resp.Body())
}

func sourceLabel(source string) string {
	if source == "" {
		return SourceEmbedded
	}
	return source
}
