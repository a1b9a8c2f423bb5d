package ch

import (
	"os"
	"runtime"
	"strings"

	"servicegeek/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// clientInfo tags server side query logs with the binary and its role, e.g. "api" or "ctl"
func clientInfo(role, tag string) clickhouse.ClientInfo {
	bi := version.Info(strings.TrimSpace(role))
	host, _ := os.Hostname()

	type product = struct{ Name, Version string }
	products := []product{
		{Name: "servicegeek", Version: bi.Version},
		{Name: "role", Version: bi.Service},
		{Name: "commit", Version: bi.Commit},
		{Name: "go", Version: runtime.Version()},
		{Name: "host", Version: host},
	}
	if tag = strings.TrimSpace(tag); tag != "" {
		products = append(products, product{Name: "tag", Version: tag})
	}
	return clickhouse.ClientInfo{Products: products}
}
