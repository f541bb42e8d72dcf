package safego_test

import (
	"sync"
	"testing"

	"opportunityhub-backend/pkg/safego"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRun(t *testing.T) {
	t.Run("returns nil when fn completes", func(t *testing.T) {
		called := false
		err := safego.Run("ok", func() { called = true })
		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("converts panic into error", func(t *testing.T) {
		err := safego.Run("boom", func() { panic("kaboom") })
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "kaboom")
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestGo(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)

	safego.Go("panics", func() {
		defer wg.Done()
		panic("isolated")
	})
	safego.Go("fine", func() {
		defer wg.Done()
	})

	wg.Wait()
}
