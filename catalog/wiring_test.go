package catalog_test

import (
	"techquiz-core/catalog"
	"techquiz-core/gateway"
)

var (
	_ catalog.Fetcher   = (*gateway.Client)(nil)
	_ catalog.PageCache = (*catalog.MemoryCache)(nil)
	_ catalog.PageCache = (*catalog.RedisCache)(nil)
)
