package model

type ExecutorType string

const (
	ExecutorLocal  ExecutorType = "LOCAL"
	ExecutorRemote ExecutorType = "REMOTE"
	ExecutorAgent  ExecutorType = "AGENT"
)

var ExecutorTypes = []ExecutorType{ExecutorLocal, ExecutorRemote, ExecutorAgent}

type ClusterNode struct {
	Id               string       `json:"id"`
	Host             string       `json:"host"`
	Port             int          `json:"port"`
	ExecutorType     ExecutorType `json:"executorType"`
	RegistrationTime Timestamp    `json:"registrationTime"`
	ExecutorsCount   int          `json:"executorsCount"`
	CmdletsExecuted  int64        `json:"cmdletsExecuted"`
}

type RuleState string

const (
	RuleNew      RuleState = "NEW"
	RuleActive   RuleState = "ACTIVE"
	RuleDisabled RuleState = "DISABLED"
	RuleFinished RuleState = "FINISHED"
	RuleDeleted  RuleState = "DELETED"
)

var RuleStates = []RuleState{RuleNew, RuleActive, RuleDisabled, RuleFinished, RuleDeleted}

type Rule struct {
	Id                 int64     `json:"id"`
	SubmitTime         Timestamp `json:"submitTime"`
	TextRepresentation string    `json:"textRepresentation"`
	State              RuleState `json:"state"`
	ActivationCount    int64     `json:"activationCount"`
	CmdletsGenerated   int64     `json:"cmdletsGenerated"`
	LastActivationTime Timestamp `json:"lastActivationTime,omitempty"`
}

type RulesInfo struct {
	TotalRules  int64 `json:"totalRules"`
	ActiveRules int64 `json:"activeRules"`
}

type ActionState string

const (
	ActionRunning    ActionState = "RUNNING"
	ActionSuccessful ActionState = "SUCCESSFUL"
	ActionFailed     ActionState = "FAILED"
)

var ActionStates = []ActionState{ActionRunning, ActionSuccessful, ActionFailed}

type ActionSource string

const (
	SourceRule ActionSource = "RULE"
	SourceUser ActionSource = "USER"
)

var ActionSources = []ActionSource{SourceRule, SourceUser}

type Action struct {
	Id                 int64        `json:"id"`
	CmdletId           int64        `json:"cmdletId"`
	TextRepresentation string       `json:"textRepresentation"`
	ExecHost           string       `json:"execHost,omitempty"`
	SubmissionTime     Timestamp    `json:"submissionTime"`
	CompletionTime     Timestamp    `json:"completionTime,omitempty"`
	State              ActionState  `json:"state"`
	Source             ActionSource `json:"source"`
	Log                string       `json:"log,omitempty"`
}

type AuditObjectType string

const (
	AuditObjectRule   AuditObjectType = "RULE"
	AuditObjectCmdlet AuditObjectType = "CMDLET"
)

var AuditObjectTypes = []AuditObjectType{AuditObjectRule, AuditObjectCmdlet}

type AuditOperation string

const (
	AuditCreate AuditOperation = "CREATE"
	AuditDelete AuditOperation = "DELETE"
	AuditStart  AuditOperation = "START"
	AuditStop   AuditOperation = "STOP"
)

var AuditOperations = []AuditOperation{AuditCreate, AuditDelete, AuditStart, AuditStop}

type AuditResult string

const (
	AuditSuccess AuditResult = "SUCCESS"
	AuditFailure AuditResult = "FAILURE"
)

var AuditResults = []AuditResult{AuditSuccess, AuditFailure}

type AuditEvent struct {
	Id         int64           `json:"id"`
	Username   string          `json:"username"`
	Timestamp  Timestamp       `json:"timestamp"`
	ObjectType AuditObjectType `json:"objectType"`
	ObjectId   int64           `json:"objectId"`
	Operation  AuditOperation  `json:"operation"`
	Result     AuditResult     `json:"result"`
}

type CachedFile struct {
	Id             int64     `json:"id"`
	Path           string    `json:"path"`
	AccessCount    int       `json:"accessCount"`
	CachedTime     Timestamp `json:"cachedTime"`
	LastAccessTime Timestamp `json:"lastAccessTime"`
}

type HotFile struct {
	Id             int64     `json:"id"`
	Path           string    `json:"path"`
	AccessCount    int       `json:"accessCount"`
	LastAccessTime Timestamp `json:"lastAccessTime"`
}
