package migrations

import "embed"

// FS SQL миграции схемы сервиса
//
//go:embed *.sql
var FS embed.FS
