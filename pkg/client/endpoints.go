package client

import "github.com/smartdata/ssm-dashboard/internal/dashboard/query"

// Collection endpoints. Every one of them takes date ranges as flat {name}From/{name}To
// parameters. The file endpoints decode arrays in bracket-index form.
var (
	NodesEndpoint       = query.Endpoint{Path: "/api/v2/cluster/nodes"}
	RulesEndpoint       = query.Endpoint{Path: "/api/v2/rules"}
	ActionsEndpoint     = query.Endpoint{Path: "/api/v2/actions"}
	AuditEventsEndpoint = query.Endpoint{Path: "/api/v2/audit/events"}
	CachedFilesEndpoint = query.Endpoint{Path: "/api/v2/files/cached", ArrayFormat: query.Indices}
	HotFilesEndpoint    = query.Endpoint{Path: "/api/v2/files/access-counts", ArrayFormat: query.Indices}
)

const (
	rulesInfoPath = "/api/v2/rules/info"
	rulePath      = "/api/v2/rules/{id}"
	ruleStartPath = "/api/v2/rules/{id}/start"
	ruleStopPath  = "/api/v2/rules/{id}/stop"
	actionPath    = "/api/v2/actions/{id}"
)
