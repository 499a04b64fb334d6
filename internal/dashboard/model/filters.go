package model

import "github.com/smartdata/ssm-dashboard/internal/dashboard/daterange"

// Filter fields are tagged twice: json controls how a filter is persisted, mapstructure names the
// query parameter a field is sent as. Date ranges are excluded from the latter because they are
// flattened into {name}From/{name}To (or a nested object) by DateRangeFields instead.

type ClusterNodeFilter struct {
	Hosts            []string             `json:"hosts,omitempty" mapstructure:"hosts"`
	ExecutorTypes    []ExecutorType       `json:"executorTypes,omitempty" mapstructure:"executorTypes"`
	RegistrationTime *daterange.DateRange `json:"registrationTime,omitempty" mapstructure:"-"`
}

func (f ClusterNodeFilter) DateRangeFields() map[string]*daterange.DateRange {
	return map[string]*daterange.DateRange{"registrationTime": f.RegistrationTime}
}

type RuleFilter struct {
	TextRepresentationLike string               `json:"textRepresentationLike,omitempty" mapstructure:"textRepresentationLike"`
	SubmissionTime         *daterange.DateRange `json:"submissionTime,omitempty" mapstructure:"-"`
	LastActivationTime     *daterange.DateRange `json:"lastActivationTime,omitempty" mapstructure:"-"`
	RuleStates             []RuleState          `json:"ruleStates,omitempty" mapstructure:"ruleStates"`
}

func (f RuleFilter) DateRangeFields() map[string]*daterange.DateRange {
	return map[string]*daterange.DateRange{
		"submissionTime":     f.SubmissionTime,
		"lastActivationTime": f.LastActivationTime,
	}
}

type ActionFilter struct {
	TextRepresentationLike string               `json:"textRepresentationLike,omitempty" mapstructure:"textRepresentationLike"`
	SubmissionTime         *daterange.DateRange `json:"submissionTime,omitempty" mapstructure:"-"`
	CompletionTime         *daterange.DateRange `json:"completionTime,omitempty" mapstructure:"-"`
	Hosts                  []string             `json:"hosts,omitempty" mapstructure:"hosts"`
	States                 []ActionState        `json:"states,omitempty" mapstructure:"states"`
	Sources                []ActionSource       `json:"sources,omitempty" mapstructure:"sources"`
}

func (f ActionFilter) DateRangeFields() map[string]*daterange.DateRange {
	return map[string]*daterange.DateRange{
		"submissionTime": f.SubmissionTime,
		"completionTime": f.CompletionTime,
	}
}

type AuditEventFilter struct {
	UsernameLike string               `json:"usernameLike,omitempty" mapstructure:"usernameLike"`
	EventTime    *daterange.DateRange `json:"eventTime,omitempty" mapstructure:"-"`
	ObjectTypes  []AuditObjectType    `json:"objectTypes,omitempty" mapstructure:"objectTypes"`
	Operations   []AuditOperation     `json:"operations,omitempty" mapstructure:"operations"`
	Results      []AuditResult        `json:"results,omitempty" mapstructure:"results"`
}

func (f AuditEventFilter) DateRangeFields() map[string]*daterange.DateRange {
	return map[string]*daterange.DateRange{"eventTime": f.EventTime}
}

type CachedFileFilter struct {
	PathLike         string               `json:"pathLike,omitempty" mapstructure:"pathLike"`
	LastAccessedTime *daterange.DateRange `json:"lastAccessedTime,omitempty" mapstructure:"-"`
	CachedTime       *daterange.DateRange `json:"cachedTime,omitempty" mapstructure:"-"`
}

func (f CachedFileFilter) DateRangeFields() map[string]*daterange.DateRange {
	return map[string]*daterange.DateRange{
		"lastAccessedTime": f.LastAccessedTime,
		"cachedTime":       f.CachedTime,
	}
}

type HotFileFilter struct {
	PathLike         string               `json:"pathLike,omitempty" mapstructure:"pathLike"`
	LastAccessedTime *daterange.DateRange `json:"lastAccessedTime,omitempty" mapstructure:"-"`
}

func (f HotFileFilter) DateRangeFields() map[string]*daterange.DateRange {
	return map[string]*daterange.DateRange{"lastAccessedTime": f.LastAccessedTime}
}
