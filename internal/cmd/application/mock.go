package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/unitmap"
	"github.com/agentstation/unitmap/pkg/errors"
)

// Mock implements application.Application for command tests. Unset
// function fields fall back to fixed values: a nop logger, table output,
// version "dev", and an error from Unitmap.
//
//	um, _ := unitmap.New(unitmap.WithUnits(units.NewTestCatalog().Records()))
//	cmd := resolve.NewCommand(&application.Mock{
//	    UnitmapFunc: func() (unitmap.Unitmap, error) { return um, nil },
//	})
type Mock struct {
	UnitmapFunc      func() (unitmap.Unitmap, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
}

func (m *Mock) Unitmap() (unitmap.Unitmap, error) {
	if m.UnitmapFunc == nil {
		return nil, errors.NewConfigError("unitmap", "no unitmap configured on mock", nil)
	}
	return m.UnitmapFunc()
}

func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return m.LoggerFunc()
}

func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc == nil {
		return "table"
	}
	return m.OutputFormatFunc()
}

func (m *Mock) Version() string {
	if m.VersionFunc == nil {
		return "dev"
	}
	return m.VersionFunc()
}

func (m *Mock) Commit() string  { return "none" }
func (m *Mock) Date() string    { return "unknown" }
func (m *Mock) BuiltBy() string { return "test" }
