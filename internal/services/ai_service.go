package services

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/loglens/backend/internal/models"
	"google.golang.org/genai"
)

// CategorizedLog is one line of the categorization collaborator's output.
// Timestamp is an ISO 8601 string or null when the model could not find one.
type CategorizedLog struct {
	OriginalLine string  `json:"originalLine"`
	Timestamp    *string `json:"timestamp"`
	Level        string  `json:"level"`
	Message      string  `json:"message"`
	Category     string  `json:"category"`
}

// AIProvider is the contract for the external analysis collaborators. The
// orchestrator only ever talks to this interface; tests inject their own
// implementation.
type AIProvider interface {
	// CategorizeLogs structures raw log text into per-line categorized records.
	CategorizeLogs(ctx context.Context, logData string) ([]CategorizedLog, error)
	// SummarizeLogs condenses raw log text into a human-readable report.
	SummarizeLogs(ctx context.Context, logData string) (string, error)
	// ProposeSolutions returns remediation proposals, possibly none.
	ProposeSolutions(ctx context.Context, logData string) ([]models.SolutionProposal, error)
	// GenerateDialogue scripts a two-speaker walkthrough of one solution.
	GenerateDialogue(ctx context.Context, solution models.SolutionProposal) (string, error)
	// GenerateSpeech synthesizes text into a data:audio/wav;base64 URI. Text
	// containing both "Speaker1:" and "Speaker2:" is rendered with two voices.
	GenerateSpeech(ctx context.Context, text string) (string, error)
}

// GeminiService implements AIProvider against the Gemini API.
type GeminiService struct {
	client   *genai.Client
	model    string
	ttsModel string
}

type categorizeLogsResponse struct {
	Logs []CategorizedLog `json:"logs"`
}

type summarizeLogsResponse struct {
	Summary string `json:"summary"`
}

type proposeSolutionsResponse struct {
	Solutions []models.SolutionProposal `json:"solutions"`
}

type generateDialogueResponse struct {
	Dialogue string `json:"dialogue"`
}

func NewGeminiService(ctx context.Context, apiKey string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}
	ttsModel := os.Getenv("GEMINI_TTS_MODEL")
	if ttsModel == "" {
		ttsModel = "gemini-2.5-flash-preview-tts"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiService{client: client, model: model, ttsModel: ttsModel}, nil
}

func (s *GeminiService) CategorizeLogs(ctx context.Context, logData string) ([]CategorizedLog, error) {
	raw, err := s.generateJSON(ctx, fmt.Sprintf(CATEGORIZE_LOGS_PROMPT, logData))
	if err != nil {
		return nil, fmt.Errorf("categorization failed: %w", err)
	}

	var parsed categorizeLogsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("categorization returned invalid JSON: %w", err)
	}
	if parsed.Logs == nil {
		return nil, fmt.Errorf("categorization returned no log entries")
	}
	return parsed.Logs, nil
}

func (s *GeminiService) SummarizeLogs(ctx context.Context, logData string) (string, error) {
	raw, err := s.generateJSON(ctx, fmt.Sprintf(SUMMARIZE_LOGS_PROMPT, logData))
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	var parsed summarizeLogsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("summarization returned invalid JSON: %w", err)
	}
	if parsed.Summary == "" {
		return "", fmt.Errorf("summarization returned an empty summary")
	}
	return parsed.Summary, nil
}

func (s *GeminiService) ProposeSolutions(ctx context.Context, logData string) ([]models.SolutionProposal, error) {
	raw, err := s.generateJSON(ctx, fmt.Sprintf(PROPOSE_SOLUTIONS_PROMPT, logData))
	if err != nil {
		return nil, fmt.Errorf("solution proposal failed: %w", err)
	}

	var parsed proposeSolutionsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("solution proposal returned invalid JSON: %w", err)
	}
	// An empty list is a legitimate "no critical issues" answer.
	return parsed.Solutions, nil
}

func (s *GeminiService) GenerateDialogue(ctx context.Context, solution models.SolutionProposal) (string, error) {
	payload, err := json.Marshal(proposeSolutionsResponse{Solutions: []models.SolutionProposal{solution}})
	if err != nil {
		return "", fmt.Errorf("failed to encode solution for dialogue: %w", err)
	}

	raw, err := s.generateJSON(ctx, fmt.Sprintf(GENERATE_DIALOGUE_PROMPT, string(payload)))
	if err != nil {
		return "", fmt.Errorf("dialogue generation failed: %w", err)
	}

	var parsed generateDialogueResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("dialogue generation returned invalid JSON: %w", err)
	}
	if parsed.Dialogue == "" {
		return "", fmt.Errorf("dialogue generation returned an empty script")
	}
	return parsed.Dialogue, nil
}

func (s *GeminiService) GenerateSpeech(ctx context.Context, text string) (string, error) {
	speechConfig := &genai.SpeechConfig{
		VoiceConfig: &genai.VoiceConfig{
			PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: "Algenib"},
		},
	}
	if IsDialogueScript(text) {
		speechConfig = &genai.SpeechConfig{
			MultiSpeakerVoiceConfig: &genai.MultiSpeakerVoiceConfig{
				SpeakerVoiceConfigs: []*genai.SpeakerVoiceConfig{
					{
						Speaker: "Speaker1",
						VoiceConfig: &genai.VoiceConfig{
							PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: "Achernar"},
						},
					},
					{
						Speaker: "Speaker2",
						VoiceConfig: &genai.VoiceConfig{
							PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: "Algenib"},
						},
					},
				},
			},
		}
	}

	res, err := s.client.Models.GenerateContent(ctx, s.ttsModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig:       speechConfig,
	})
	if err != nil {
		return "", fmt.Errorf("speech synthesis failed: %w", err)
	}

	pcm := extractInlineAudio(res)
	if len(pcm) == 0 {
		return "", fmt.Errorf("speech synthesis returned no audio")
	}

	// Gemini TTS emits raw 16-bit mono PCM at 24kHz; wrap it into a WAV
	// container so browsers can play the data URI directly.
	wavBytes := pcmToWav(pcm, 1, 24000, 2)
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wavBytes), nil
}

// IsDialogueScript reports whether text is a two-speaker script that should
// be synthesized with separate voices.
func IsDialogueScript(text string) bool {
	return strings.Contains(text, "Speaker1:") && strings.Contains(text, "Speaker2:")
}

func (s *GeminiService) generateJSON(ctx context.Context, prompt string) ([]byte, error) {
	res, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, err
	}

	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("model returned no output")
	}
	return extractJSONObject(text)
}

// extractJSONObject pulls the first JSON object out of a model response.
// Models occasionally wrap their JSON in markdown fences or stray prose even
// when told not to.
func extractJSONObject(text string) ([]byte, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found in model response")
	}
	return []byte(text[start : end+1]), nil
}

func extractInlineAudio(res *genai.GenerateContentResponse) []byte {
	if res == nil {
		return nil
	}
	for _, cand := range res.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}

// pcmToWav wraps raw little-endian PCM samples in a minimal RIFF/WAVE header.
func pcmToWav(pcm []byte, channels, sampleRate, sampleWidth int) []byte {
	byteRate := sampleRate * channels * sampleWidth
	blockAlign := channels * sampleWidth

	out := make([]byte, 0, 44+len(pcm))
	out = append(out, []byte("RIFF")...)
	out = binary.LittleEndian.AppendUint32(out, uint32(36+len(pcm)))
	out = append(out, []byte("WAVE")...)
	out = append(out, []byte("fmt ")...)
	out = binary.LittleEndian.AppendUint32(out, 16) // PCM chunk size
	out = binary.LittleEndian.AppendUint16(out, 1)  // PCM format
	out = binary.LittleEndian.AppendUint16(out, uint16(channels))
	out = binary.LittleEndian.AppendUint32(out, uint32(sampleRate))
	out = binary.LittleEndian.AppendUint32(out, uint32(byteRate))
	out = binary.LittleEndian.AppendUint16(out, uint16(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, uint16(sampleWidth*8))
	out = append(out, []byte("data")...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(pcm)))
	out = append(out, pcm...)
	return out
}
