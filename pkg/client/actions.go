package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

type submitActionRequest struct {
	Action   string `json:"action"`
	ExecHost string `json:"execHost,omitempty"`
}

func (c *Client) ListActions(
	ctx context.Context,
	filter model.ActionFilter,
	sort *model.SortParams,
	pagination *model.PaginationParams,
) (model.Collection[model.Action], error) {
	actions, err := list[model.Action](ctx, c, ActionsEndpoint, filter, sort, pagination)
	if err != nil {
		return actions, errors.WithMessage(err, "listing actions")
	}
	return actions, nil
}

func (c *Client) GetAction(ctx context.Context, id int64) (model.Action, error) {
	action := model.Action{}
	err := c.get(ctx, request{
		method:       http.MethodGet,
		route:        actionPath,
		path:         idPath(actionPath, id),
		resourceType: "action",
		resourceId:   strconv.FormatInt(id, 10),
	}, &action)
	return action, errors.WithMessagef(err, "getting action %d", id)
}

// SubmitAction submits text, e.g. "cache -file /data/a", for execution. An empty host lets the
// server choose one.
func (c *Client) SubmitAction(ctx context.Context, text string, host string) (model.Action, error) {
	action := model.Action{}
	err := c.do(ctx, request{
		method:       http.MethodPost,
		route:        ActionsEndpoint.Path,
		path:         ActionsEndpoint.Path,
		body:         submitActionRequest{Action: text, ExecHost: host},
		resourceType: "action",
	}, &action)
	return action, errors.WithMessage(err, "submitting action")
}

// RepeatAction submits the text of an existing action again, on the same host.
func (c *Client) RepeatAction(ctx context.Context, id int64) (model.Action, error) {
	original, err := c.GetAction(ctx, id)
	if err != nil {
		return model.Action{}, err
	}
	repeated, err := c.SubmitAction(ctx, original.TextRepresentation, original.ExecHost)
	return repeated, errors.WithMessagef(err, "repeating action %d", id)
}
