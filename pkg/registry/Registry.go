package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var ERROR_UNKNOWN_BODY = errors.New("tag list is neither an object nor a list of name/layer pairs")

func New(insecure bool, options ...remote.Option) *Client {
	return &Client{
		Insecure: insecure,
		Keychain: authn.DefaultKeychain,
		options:  options,
	}
}

// DigestForTag returns the manifest digest repository:tag points at.
func (c *Client) DigestForTag(ctx context.Context, repository string, tag string) (string, error) {
	ref, err := name.NewTag(fmt.Sprintf("%s:%s", repository, tag), c.nameOptions()...)
	if err != nil {
		return "", errors.Wrapf(err, "parsing %s:%s", repository, tag)
	}

	descriptor, err := remote.Head(ref, c.remoteOptions(ctx)...)
	if err != nil {
		return "", errors.Wrapf(err, "looking up %s", ref.String())
	}

	return descriptor.Digest.String(), nil
}

// RepositoryTags maps every tag of repository to its digest.
func (c *Client) RepositoryTags(ctx context.Context, repository string) (map[string]string, error) {
	repo, err := name.NewRepository(repository, c.nameOptions()...)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", repository)
	}

	tags, err := remote.List(repo, c.remoteOptions(ctx)...)
	if err != nil {
		return nil, errors.Wrapf(err, "listing tags of %s", repository)
	}

	sort.Strings(tags)

	digests := make(map[string]string, len(tags))

	for _, tag := range tags {
		descriptor, err := remote.Head(repo.Tag(tag), c.remoteOptions(ctx)...)
		if err != nil {
			return nil, errors.Wrapf(err, "looking up %s:%s", repository, tag)
		}

		digests[tag] = descriptor.Digest.String()
	}

	return digests, nil
}

// NormalizeTags decodes a tag listing given either as {"tag": "id"} or as
// [{"name": "tag", "layer": "id"}].
func NormalizeTags(body []byte) (map[string]string, error) {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary

	tags := map[string]string{}
	if err := json.Unmarshal(body, &tags); err == nil {
		return tags, nil
	}

	var list []legacyTag
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, ERROR_UNKNOWN_BODY
	}

	tags = make(map[string]string, len(list))
	for _, entry := range list {
		tags[entry.Name] = entry.Layer
	}

	return tags, nil
}

func (c *Client) nameOptions() []name.Option {
	if c.Insecure {
		return []name.Option{name.Insecure}
	}

	return nil
}

func (c *Client) remoteOptions(ctx context.Context) []remote.Option {
	keychain := c.Keychain
	if keychain == nil {
		keychain = authn.DefaultKeychain
	}

	return append([]remote.Option{
		remote.WithContext(ctx),
		remote.WithAuthFromKeychain(keychain),
	}, c.options...)
}
