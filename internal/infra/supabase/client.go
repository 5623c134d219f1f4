package supabase

import (
	"fmt"

	"pdf-uploader/internal/domain"

	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// NewStorageClient connects to the Supabase project described by config and
// returns its storage client.
func NewStorageClient(config domain.Config, logger domain.Logger) (*storage_go.Client, error) {
	supabaseURL := config.GetSupabaseURL()
	supabaseKey := config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	if client.Storage == nil {
		return nil, fmt.Errorf("supabase client has no storage service")
	}

	logger.Info("Supabase storage client initialized", "url", supabaseURL, "bucket", config.GetSupabaseBucket())
	return client.Storage, nil
}
