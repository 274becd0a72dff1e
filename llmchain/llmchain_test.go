package llmchain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name     string
	enabled  bool
	response string
	err      error
	calls    int
}

func (p *fakeProvider) Name() string  { return p.name }
func (p *fakeProvider) Enabled() bool { return p.enabled }
func (p *fakeProvider) Complete(messages Messages) (string, error) {
	p.calls++
	return p.response, p.err
}

func TestChain_Complete(t *testing.T) {
	messages := Messages{{Role: ROLE_USER, Content: "hello"}}

	t.Run("FirstProviderWins", func(t *testing.T) {
		first := &fakeProvider{name: "first", enabled: true, response: "from first"}
		second := &fakeProvider{name: "second", enabled: true, response: "from second"}

		result, err := NewChain(first, second).Complete(messages)
		require.NoError(t, err)
		assert.Equal(t, "from first", result)
		assert.Equal(t, 1, first.calls)
		assert.Equal(t, 0, second.calls)
	})

	t.Run("FallsThroughOnError", func(t *testing.T) {
		first := &fakeProvider{name: "first", enabled: true, err: errors.New("rate limited")}
		second := &fakeProvider{name: "second", enabled: true, response: "from second"}

		result, err := NewChain(first, second).Complete(messages)
		require.NoError(t, err)
		assert.Equal(t, "from second", result)
		assert.Equal(t, 1, first.calls)
	})

	t.Run("DisabledProviderSkipped", func(t *testing.T) {
		disabled := &fakeProvider{name: "disabled", enabled: false, response: "nope"}
		enabled := &fakeProvider{name: "enabled", enabled: true, response: "yes"}

		result, err := NewChain(disabled, enabled).Complete(messages)
		require.NoError(t, err)
		assert.Equal(t, "yes", result)
		assert.Equal(t, 0, disabled.calls)
	})

	t.Run("AllFailedNamesEveryProvider", func(t *testing.T) {
		first := &fakeProvider{name: "Pollinations", enabled: true, err: errors.New("502")}
		second := &fakeProvider{name: "Gitee", enabled: true, err: errors.New("timeout")}

		_, err := NewChain(first, second).Complete(messages)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "all AI providers failed")
		assert.Contains(t, err.Error(), "Pollinations (502)")
		assert.Contains(t, err.Error(), "Gitee (timeout)")
	})

	t.Run("NothingConfigured", func(t *testing.T) {
		disabled := &fakeProvider{name: "disabled", enabled: false}

		_, err := NewChain(disabled).Complete(messages)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no AI providers are configured")
	})
}
