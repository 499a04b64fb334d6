package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
)

type submitRuleRequest struct {
	Rule string `json:"rule"`
}

func (c *Client) ListRules(
	ctx context.Context,
	filter model.RuleFilter,
	sort *model.SortParams,
	pagination *model.PaginationParams,
) (model.Collection[model.Rule], error) {
	rules, err := list[model.Rule](ctx, c, RulesEndpoint, filter, sort, pagination)
	if err != nil {
		return rules, errors.WithMessage(err, "listing rules")
	}
	return rules, nil
}

// GetRulesInfo returns the total and active rule counts.
func (c *Client) GetRulesInfo(ctx context.Context) (model.RulesInfo, error) {
	info := model.RulesInfo{}
	err := c.get(ctx, request{method: http.MethodGet, route: rulesInfoPath, path: rulesInfoPath}, &info)
	return info, errors.WithMessage(err, "getting rules info")
}

func (c *Client) CreateRule(ctx context.Context, text string) (model.Rule, error) {
	rule := model.Rule{}
	err := c.do(ctx, request{
		method:       http.MethodPost,
		route:        RulesEndpoint.Path,
		path:         RulesEndpoint.Path,
		body:         submitRuleRequest{Rule: text},
		resourceType: "rule",
	}, &rule)
	return rule, errors.WithMessage(err, "creating rule")
}

func (c *Client) DeleteRule(ctx context.Context, id int64) error {
	return c.ruleCommand(ctx, http.MethodDelete, rulePath, id, "deleting")
}

func (c *Client) StartRule(ctx context.Context, id int64) error {
	return c.ruleCommand(ctx, http.MethodPost, ruleStartPath, id, "starting")
}

func (c *Client) StopRule(ctx context.Context, id int64) error {
	return c.ruleCommand(ctx, http.MethodPost, ruleStopPath, id, "stopping")
}

func (c *Client) ruleCommand(ctx context.Context, method string, route string, id int64, verb string) error {
	err := c.do(ctx, request{
		method:       method,
		route:        route,
		path:         idPath(route, id),
		resourceType: "rule",
		resourceId:   strconv.FormatInt(id, 10),
	}, nil)
	return errors.WithMessagef(err, "%s rule %d", verb, id)
}
