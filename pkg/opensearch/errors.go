package opensearch

import "errors"

var (
	ErrNoAddresses       = errors.New("opensearch: no addresses configured")
	ErrConnectionFailed  = errors.New("opensearch connection failed")
	ErrHealthcheckFailed = errors.New("opensearch healthcheck failed")
	ErrBulkFailed        = errors.New("opensearch bulk request failed")
	ErrIndexerClosed     = errors.New("opensearch indexer closed")
)
