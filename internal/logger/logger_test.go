package logger

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestNopDiscardsOutput(t *testing.T) {
	l := Nop()
	// must not panic and must be usable as a normal logger
	l.Info().Str("k", "v").Msg("discarded")
}

func TestFromContextReturnsNonNil(t *testing.T) {
	l := FromContext(context.Background())
	if l == nil {
		t.Fatal("FromContext returned nil logger")
	}
}

func TestFromRequestUsesAttachedLogger(t *testing.T) {
	parent := Nop()
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(parent.WithContext(req.Context()))

	l := FromRequest(req)
	if l == nil {
		t.Fatal("FromRequest returned nil logger")
	}
	l.Debug().Msg("ok")
}

func TestGetChildLoggerIndependent(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()
	if child == parent {
		t.Fatal("child logger must be a distinct instance")
	}
}
