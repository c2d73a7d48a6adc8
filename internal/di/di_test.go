package di_test

import (
	"testing"

	"github.com/fd1az/reg-voting-power/internal/di"
)

type counter struct{ n int }

func TestContainer_LazySingleton(t *testing.T) {
	c := di.NewContainer()
	builds := 0
	tok := di.NewToken[*counter]("test:counter")

	di.RegisterToken(c, tok, func(di.ServiceRegistry) *counter {
		builds++
		return &counter{n: builds}
	})

	if builds != 0 {
		t.Fatal("factory must not run before Get")
	}

	a := di.GetToken(c, tok)
	b := di.GetToken(c, tok)
	if a != b || builds != 1 {
		t.Errorf("expected one shared instance, got builds=%d", builds)
	}
}

func TestContainer_FactoryDependencies(t *testing.T) {
	c := di.NewContainer()
	c.Register("base", 40)

	tok := di.NewToken[int]("test:sum")
	di.RegisterToken(c, tok, func(sr di.ServiceRegistry) int {
		return sr.Get("base").(int) + 2
	})

	if got := di.GetToken(c, tok); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestContainer_UnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown service")
		}
	}()
	di.NewContainer().Get("missing")
}

func TestContainer_CyclePanics(t *testing.T) {
	c := di.NewContainer()
	c.RegisterFactory("a", func(sr di.ServiceRegistry) any { return sr.Get("b") })
	c.RegisterFactory("b", func(sr di.ServiceRegistry) any { return sr.Get("a") })

	defer func() {
		if recover() == nil {
			t.Error("expected panic for dependency cycle")
		}
	}()
	c.Get("a")
}
