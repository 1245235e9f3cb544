// storage/factory.go

package storage

import (
	"errors"
	"strings"
)

const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
)

func NewByEngine(engine string, path string) (ProgressStore, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineJSON:
		return NewJSONProgressStore(path), nil
	case EngineSQLite:
		return NewSQLiteProgressStore(path)
	default:
		return nil, errors.New("unsupported store engine: " + engine)
	}
}
