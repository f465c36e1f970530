package provision

import "sync"

// Credentials is a static access key pair plus region.
type Credentials struct {
	AccessKey string
	SecretKey string
	Region    string
}

// CredentialStore holds the credentials supplied through the
// configure-credentials tool. It never validates them against the cloud;
// validation happens on first use.
type CredentialStore struct {
	mu    sync.RWMutex
	creds Credentials
	set   bool
}

// NewCredentialStore creates an empty store, optionally seeded from
// configuration.
func NewCredentialStore(seed Credentials) *CredentialStore {
	store := &CredentialStore{}
	if seed.AccessKey != "" && seed.SecretKey != "" {
		store.creds = seed
		store.set = true
	}
	return store
}

// Set replaces the stored credentials.
func (s *CredentialStore) Set(creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	s.set = true
}

// Get returns the stored credentials and whether any were supplied.
func (s *CredentialStore) Get() (Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, s.set
}
