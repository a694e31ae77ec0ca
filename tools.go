//go:build tools

// Package tools pins the versions of the development binaries:
//
//	go run github.com/pressly/goose/v3/cmd/goose -dir internal/database/migrations postgres "$DSN" status
//	go generate ./cmd/app           # swag docs
//	go run github.com/vektra/mockery/v2
//	go run github.com/sqlc-dev/sqlc/cmd/sqlc generate
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/sqlc-dev/sqlc/cmd/sqlc"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "github.com/vektra/mockery/v2"
	_ "golang.org/x/perf/cmd/benchstat"
)
