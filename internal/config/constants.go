// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "PathFinder"
	AppVersion = "2.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort      = ":5000"
	DefaultLogLevel        = "info"
	DefaultFrontendURL     = "http://localhost:8080"
	DefaultAccessTokenTTL  = 7 * 24 * time.Hour
	DefaultProviderTimeout = 10 * time.Second
)
