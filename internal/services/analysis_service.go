package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/loglens/backend/internal/logger"
	"github.com/loglens/backend/internal/models"
	"golang.org/x/sync/errgroup"
)

// GenericAnalysisError is the user-visible message for a failed primary
// analysis. Raw collaborator errors go to the logs, not to users.
const GenericAnalysisError = "An error occurred during log analysis. Please try again."

const defaultCollaboratorTimeout = 120 * time.Second

// maxRetainedSessions caps the in-memory session map so long-running servers
// don't accumulate every analysis ever run.
const maxRetainedSessions = 100

// AnalysisService coordinates one analysis run: a fan-out/fan-in join of the
// three analysis collaborators, an atomic merge of their outputs, and two
// post-success audio side-chains that fail independently of the primary
// result and of each other.
type AnalysisService struct {
	ai      AIProvider
	timeout time.Duration

	mu        sync.Mutex
	sessions  map[string]*analysisSession
	order     []string
	latestRun uint64
}

type analysisSession struct {
	id    string
	run   uint64
	audio models.AudioArtifacts
}

func NewAnalysisService(ai AIProvider) *AnalysisService {
	timeout := defaultCollaboratorTimeout
	if v := getEnvDuration("AI_TIMEOUT_SECONDS"); v > 0 {
		timeout = v
	}
	return &AnalysisService{
		ai:       ai,
		timeout:  timeout,
		sessions: make(map[string]*analysisSession),
	}
}

// RunAnalysis executes the primary join for a block of raw log text and
// returns the merged result. Blank input is a no-op and returns nil. The
// three collaborator calls run concurrently; no partial result is ever
// exposed — if any of them fails the whole run fails with cleared records
// and solutions.
func (s *AnalysisService) RunAnalysis(ctx context.Context, logData string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(logData) == "" {
		return nil, nil
	}

	session := s.newSession()
	log := logger.WithAnalysis(session.id)
	log.Info("Starting log analysis")

	joinCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		categorized []CategorizedLog
		summary     string
		solutions   []models.SolutionProposal
	)

	g, gctx := errgroup.WithContext(joinCtx)
	g.Go(func() error {
		var err error
		categorized, err = s.ai.CategorizeLogs(gctx, logData)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = s.ai.SummarizeLogs(gctx, logData)
		return err
	})
	g.Go(func() error {
		var err error
		solutions, err = s.ai.ProposeSolutions(gctx, logData)
		return err
	})

	if err := g.Wait(); err != nil {
		log.WithField("error", err.Error()).Error("Primary analysis join failed")
		return &models.AnalysisResult{
			SessionID: session.id,
			State:     models.AnalysisStateFailed,
			Records:   []models.LogRecord{},
			Solutions: []models.SolutionProposal{},
			Summary:   GenericAnalysisError,
			Error:     GenericAnalysisError,
		}, nil
	}

	records := MergeCategorizedRecords(categorized)
	if solutions == nil {
		solutions = []models.SolutionProposal{}
	}

	token, err := EncodeSession(logData)
	if err != nil {
		// The analysis itself is fine; the share link just won't be.
		log.WithField("error", err.Error()).Warn("Failed to encode session token")
		token = ""
	}

	result := &models.AnalysisResult{
		SessionID:    session.id,
		State:        models.AnalysisStateSucceeded,
		Records:      records,
		Solutions:    solutions,
		Summary:      summary,
		Timeline:     AggregateByTime(records, 5),
		Distribution: CategoryDistribution(records),
		SessionToken: token,
	}

	log.WithField("records", len(records)).WithField("solutions", len(solutions)).
		Info("Log analysis completed")

	s.startSideChains(session, summary, solutions)
	return result, nil
}

// startSideChains kicks off speech synthesis for the summary and a dialogue
// narration for the top-ranked solution. Both run detached from the request
// context; results are applied only if no newer analysis has started since.
func (s *AnalysisService) startSideChains(session *analysisSession, summary string, solutions []models.SolutionProposal) {
	if summary != "" {
		s.setAudioState(session, func(a *models.AudioArtifacts) { a.SummaryState = models.AudioStateRunning })
		go s.runSummaryAudio(session, summary)
	}
	if len(solutions) > 0 {
		s.setAudioState(session, func(a *models.AudioArtifacts) { a.DialogueState = models.AudioStateRunning })
		go s.runDialogueAudio(session, solutions[0])
	}
}

func (s *AnalysisService) runSummaryAudio(session *analysisSession, summary string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	media, err := s.ai.GenerateSpeech(ctx, summary)
	if err != nil {
		logger.WithAnalysis(session.id).WithField("error", err.Error()).
			Warn("Summary narration failed")
		s.applyAudio(session, func(a *models.AudioArtifacts) {
			a.SummaryState = models.AudioStateFailed
			a.SummaryMedia = ""
		})
		return
	}
	s.applyAudio(session, func(a *models.AudioArtifacts) {
		a.SummaryState = models.AudioStateDone
		a.SummaryMedia = media
	})
}

func (s *AnalysisService) runDialogueAudio(session *analysisSession, top models.SolutionProposal) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*s.timeout)
	defer cancel()

	fail := func(err error) {
		logger.WithAnalysis(session.id).WithField("error", err.Error()).
			Warn("Dialogue narration failed")
		s.applyAudio(session, func(a *models.AudioArtifacts) {
			a.DialogueState = models.AudioStateFailed
			a.DialogueMedia = ""
		})
	}

	dialogue, err := s.ai.GenerateDialogue(ctx, top)
	if err != nil {
		fail(err)
		return
	}
	media, err := s.ai.GenerateSpeech(ctx, dialogue)
	if err != nil {
		fail(err)
		return
	}
	s.applyAudio(session, func(a *models.AudioArtifacts) {
		a.DialogueState = models.AudioStateDone
		a.DialogueMedia = media
	})
}

// GetAudio returns the audio side-chain state for a session.
func (s *AnalysisService) GetAudio(sessionID string) (models.AudioArtifacts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return models.AudioArtifacts{}, fmt.Errorf("unknown analysis session %q", sessionID)
	}
	return session.audio, nil
}

func (s *AnalysisService) newSession() *analysisSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latestRun++
	session := &analysisSession{
		id:  uuid.NewString(),
		run: s.latestRun,
		audio: models.AudioArtifacts{
			SummaryState:  models.AudioStateNone,
			DialogueState: models.AudioStateNone,
		},
	}
	s.sessions[session.id] = session
	s.order = append(s.order, session.id)
	for len(s.order) > maxRetainedSessions {
		delete(s.sessions, s.order[0])
		s.order = s.order[1:]
	}
	return session
}

func (s *AnalysisService) setAudioState(session *analysisSession, apply func(*models.AudioArtifacts)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&session.audio)
}

// applyAudio commits a side-chain outcome unless a newer analysis run has
// started since this session was created. The stale run's artifact is
// discarded so only the most recent invocation's audio is ever observable.
func (s *AnalysisService) applyAudio(session *analysisSession, apply func(*models.AudioArtifacts)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.run != s.latestRun {
		session.audio.SummaryState = models.AudioStateNone
		session.audio.SummaryMedia = ""
		session.audio.DialogueState = models.AudioStateNone
		session.audio.DialogueMedia = ""
		return
	}
	apply(&session.audio)
}

// MergeCategorizedRecords zips the categorizer's per-line output into
// LogRecords, assigning ids by list position. This is the sole source of
// records for a completed analysis; the local parser only serves the
// parse-preview path.
func MergeCategorizedRecords(categorized []CategorizedLog) []models.LogRecord {
	records := make([]models.LogRecord, 0, len(categorized))
	for i, entry := range categorized {
		var timestamp *time.Time
		if entry.Timestamp != nil && *entry.Timestamp != "" {
			if ts, ok := parseTimestamp(*entry.Timestamp); ok {
				timestamp = &ts
			}
		}
		category := entry.Category
		if category == "" {
			category = models.DefaultCategory
		}
		records = append(records, models.LogRecord{
			ID:           i,
			Timestamp:    timestamp,
			Level:        models.NormalizeLevel(entry.Level),
			Message:      entry.Message,
			OriginalLine: entry.OriginalLine,
			Category:     category,
		})
	}
	return records
}

func getEnvDuration(key string) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			return d
		}
	}
	return 0
}
