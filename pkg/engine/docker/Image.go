package docker

import (
	"context"
	"io"

	TDImage "github.com/docker/docker/api/types/image"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/engine"
	"go.uber.org/zap"
)

func (docker *Docker) InspectImage(ctx context.Context, ref string) (engine.ImageDetails, error) {
	data, _, err := docker.cli.ImageInspectWithRaw(ctx, ref)

	if err != nil {
		return engine.ImageDetails{}, errors.Wrapf(err, "inspecting image %s", ref)
	}

	return engine.ImageDetails{
		ID:       data.ID,
		RepoTags: data.RepoTags,
		Created:  data.Created,
	}, nil
}

func (docker *Docker) PullImage(ctx context.Context, ref string) error {
	docker.logger.Info("pulling image", zap.String("image", ref))

	reader, err := docker.cli.ImagePull(ctx, ref, TDImage.PullOptions{})
	if err != nil {
		return errors.Wrapf(err, "pulling image %s", ref)
	}

	defer reader.Close()

	// The pull only completes once the progress stream is drained.
	if _, err = io.Copy(io.Discard, reader); err != nil {
		return errors.Wrapf(err, "reading pull progress for %s", ref)
	}

	return nil
}
