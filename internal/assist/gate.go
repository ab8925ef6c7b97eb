package assist

import (
	"sync"

	"pawpal/internal/logging"
)

// KeyGate is the credential gate for billed generative calls. It wraps the
// configured API key and a prompt hook the UI installs to open its
// key-selection flow. Implements ops.CredentialGate.
type KeyGate struct {
	mu     sync.Mutex
	apiKey string
	prompt func()
}

// NewKeyGate builds a gate over the configured key. prompt may be nil until
// the UI installs one.
func NewKeyGate(apiKey string, prompt func()) *KeyGate {
	return &KeyGate{apiKey: apiKey, prompt: prompt}
}

// HasValidCredential reports whether a key is configured.
func (g *KeyGate) HasValidCredential() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKey != ""
}

// SetKey replaces the stored key after the user selects a new one.
func (g *KeyGate) SetKey(key string) {
	g.mu.Lock()
	g.apiKey = key
	g.mu.Unlock()
}

// SetPrompt installs the UI's key-selection hook.
func (g *KeyGate) SetPrompt(fn func()) {
	g.mu.Lock()
	g.prompt = fn
	g.mu.Unlock()
}

// PromptForCredential opens the key-selection flow, when one is installed.
func (g *KeyGate) PromptForCredential() {
	g.mu.Lock()
	prompt := g.prompt
	g.mu.Unlock()
	if prompt == nil {
		logging.AssistWarn("credential prompt requested but no prompt hook installed")
		return
	}
	prompt()
}
