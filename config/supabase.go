package config

import (
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// NewSupabaseClient initializes the Supabase client used by the invite
// mirror. It returns nil without error when the mirror is not configured.
func NewSupabaseClient(cfg *Config) (*supa.Client, error) {
	if !cfg.MirrorEnabled() {
		return nil, nil
	}

	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing Supabase client: %w", err)
	}
	return client, nil
}
