package models

// SolutionProposal is one AI-proposed remediation for an issue found in the
// logs. Proposals are produced in bulk per analysis run and treated as
// read-only afterwards.
type SolutionProposal struct {
	Title             string   `json:"title"`
	RootCauseAnalysis string   `json:"rootCauseAnalysis"`
	Steps             []string `json:"steps"`
	ConfidenceScore   int      `json:"confidenceScore"`
	SimulatedOutcome  string   `json:"simulatedOutcome"`
}

// TimeBucket is one aggregation point on the severity timeline. Time is the
// bucket start in epoch milliseconds, rounded down to a bucket boundary.
type TimeBucket struct {
	Time    int64 `json:"time"`
	Error   int   `json:"ERROR"`
	Warn    int   `json:"WARN"`
	Info    int   `json:"INFO"`
	Debug   int   `json:"DEBUG"`
	Unknown int   `json:"UNKNOWN"`
}

// Total returns the sum of all per-level counts in the bucket.
func (b TimeBucket) Total() int {
	return b.Error + b.Warn + b.Info + b.Debug + b.Unknown
}

// CategoryCount is one entry of the category distribution.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// AnalysisState is the primary state of an analysis session.
type AnalysisState string

const (
	AnalysisStateIdle      AnalysisState = "idle"
	AnalysisStateRunning   AnalysisState = "running"
	AnalysisStateSucceeded AnalysisState = "succeeded"
	AnalysisStateFailed    AnalysisState = "failed"
)

// AudioState tracks one post-success audio side-chain. Side-chains start only
// after the primary analysis succeeded and fail independently of it.
type AudioState string

const (
	AudioStateNone    AudioState = "none"
	AudioStateRunning AudioState = "running"
	AudioStateDone    AudioState = "done"
	AudioStateFailed  AudioState = "failed"
)

// AnalysisResult is the merged output of one completed analysis run.
type AnalysisResult struct {
	SessionID    string             `json:"sessionId"`
	State        AnalysisState      `json:"state"`
	Records      []LogRecord        `json:"records"`
	Solutions    []SolutionProposal `json:"solutions"`
	Summary      string             `json:"summary"`
	Timeline     []TimeBucket       `json:"timeline"`
	Distribution []CategoryCount    `json:"distribution"`
	SessionToken string             `json:"sessionToken"`
	Error        string             `json:"error,omitempty"`
}

// AudioArtifacts is the pollable state of the two audio side-chains. Media
// fields hold data:audio/wav;base64 URIs once the corresponding chain is done.
type AudioArtifacts struct {
	SummaryState  AudioState `json:"summaryState"`
	SummaryMedia  string     `json:"summaryMedia,omitempty"`
	DialogueState AudioState `json:"dialogueState"`
	DialogueMedia string     `json:"dialogueMedia,omitempty"`
}
