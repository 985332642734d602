package registry

import (
	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/v1/remote"
)

// Client looks up tags and digests in the registry an image lives in.
type Client struct {
	Insecure bool
	Keychain authn.Keychain

	options []remote.Option
}

type legacyTag struct {
	Name  string `json:"name"`
	Layer string `json:"layer"`
}
