package classifier

import (
	"errors"
	"strings"
	"sync"
)

// Provider hands out one Classifier per model id, constructed lazily on
// first use and reused afterwards. Nothing is evicted within a process
// lifetime. Safe for concurrent use.
type Provider struct {
	client *Client

	mu    sync.Mutex
	cache map[string]Classifier
}

func NewProvider(client *Client) *Provider {
	return &Provider{
		client: client,
		cache:  make(map[string]Classifier),
	}
}

func (p *Provider) Get(model string) (Classifier, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("model id must not be empty")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.cache[model]; ok {
		return c, nil
	}

	c := p.client.ForModel(model)
	p.cache[model] = c

	return c, nil
}
