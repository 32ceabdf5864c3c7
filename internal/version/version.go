// Package version holds build metadata, set at link time:
//
//	go build -ldflags "-X github.com/MrSnakeDoc/georepo/internal/version.Version=v1.2.0 \
//	  -X github.com/MrSnakeDoc/georepo/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"runtime"
	"time"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = time.Now().Format(time.RFC3339)
	GoVersion = runtime.Version()
)
