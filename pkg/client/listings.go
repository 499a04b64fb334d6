package client

import (
	"context"

	"github.com/pkg/errors"

	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

func (c *Client) ListNodes(
	ctx context.Context,
	filter model.ClusterNodeFilter,
	sort *model.SortParams,
	pagination *model.PaginationParams,
) (model.Collection[model.ClusterNode], error) {
	nodes, err := list[model.ClusterNode](ctx, c, NodesEndpoint, filter, sort, pagination)
	if err != nil {
		return nodes, errors.WithMessage(err, "listing cluster nodes")
	}
	return nodes, nil
}

func (c *Client) ListAuditEvents(
	ctx context.Context,
	filter model.AuditEventFilter,
	sort *model.SortParams,
	pagination *model.PaginationParams,
) (model.Collection[model.AuditEvent], error) {
	events, err := list[model.AuditEvent](ctx, c, AuditEventsEndpoint, filter, sort, pagination)
	if err != nil {
		return events, errors.WithMessage(err, "listing audit events")
	}
	return events, nil
}

func (c *Client) ListCachedFiles(
	ctx context.Context,
	filter model.CachedFileFilter,
	sort *model.SortParams,
	pagination *model.PaginationParams,
) (model.Collection[model.CachedFile], error) {
	files, err := list[model.CachedFile](ctx, c, CachedFilesEndpoint, filter, sort, pagination)
	if err != nil {
		return files, errors.WithMessage(err, "listing cached files")
	}
	return files, nil
}

// ListHotFiles lists files ordered by how often they were accessed.
func (c *Client) ListHotFiles(
	ctx context.Context,
	filter model.HotFileFilter,
	sort *model.SortParams,
	pagination *model.PaginationParams,
) (model.Collection[model.HotFile], error) {
	files, err := list[model.HotFile](ctx, c, HotFilesEndpoint, filter, sort, pagination)
	if err != nil {
		return files, errors.WithMessage(err, "listing hottest files")
	}
	return files, nil
}
