// Package autoload initializes the global logger from LOG_* env vars
// as an import side effect.
package autoload

import (
	configx "github.com/wirelimit/visara/pkg/config"
	logx "github.com/wirelimit/visara/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
