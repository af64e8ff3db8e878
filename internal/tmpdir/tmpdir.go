package tmpdir

import (
	"os"
	"sync"
)

// Provider resolves the platform temporary directory once and serves the
// cached value afterwards. Construct it with New and pass it to whatever needs it.
type Provider struct {
	resolve func() string
}

func New() *Provider {
	return &Provider{resolve: sync.OnceValue(os.TempDir)}
}

// Get returns the OS-designated temporary directory ($TMPDIR, %TMP%, ...).
func (p *Provider) Get() string {
	return p.resolve()
}
