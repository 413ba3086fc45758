package common

import (
	"github.com/futig/realtor-bot/internal/config"
	pkgHTTP "github.com/futig/realtor-bot/pkg/http"
	"go.uber.org/zap"
)

const userAgent = "realtor-bot/1.0"

func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	return pkgHTTP.NewConnector(
		connCfg,
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAuthToken(cfg.Token),
		pkgHTTP.WithUserAgent(userAgent),
		pkgHTTP.WithStaticHeader("Accept", "application/json"),
	)
}
