package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/studzent/rytmox-backend-sub001/config"
	"github.com/studzent/rytmox-backend-sub001/models"
)

type OpenAIService struct {
	client          *http.Client
	apiKey          string
	baseURL         string
	chatModel       string
	transcribeModel string
}

func NewOpenAIService() *OpenAIService {
	chatModel := os.Getenv("OPENAI_MODEL")
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIService{
		client:          &http.Client{Timeout: config.Settings.OpenAITimeout},
		apiKey:          os.Getenv("OPENAI_API_KEY"),
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		chatModel:       chatModel,
		transcribeModel: "whisper-1",
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatJSON runs one chat completion in JSON mode and returns the raw
// message content. Both AI features funnel through here.
func (s *OpenAIService) chatJSON(messages []chatMessage) (json.RawMessage, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	body := map[string]any{
		"model":           s.chatModel,
		"messages":        messages,
		"temperature":     0.3,
		"response_format": map[string]string{"type": "json_object"},
	}
	b, _ := json.Marshal(body)

	req, err := http.NewRequest("POST", s.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openai response error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		// Surface the exact API error body; usually {"error":{"message":...}}
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("openai API error %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("openai API error %d: %s", resp.StatusCode, string(respBytes))
	}

	var cr chatResponse
	if err := json.Unmarshal(respBytes, &cr); err != nil {
		return nil, fmt.Errorf("failed to parse openai JSON: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}
	return json.RawMessage(cr.Choices[0].Message.Content), nil
}

// WorkoutRequest are the request parameters for plan generation. Overrides
// are merged over the stored profile (request wins per field).
type WorkoutRequest struct {
	Overrides       ProfileOverrides `json:"overrides"`
	DurationMinutes int              `json:"duration_minutes"`
	DaysPerWeek     int              `json:"days_per_week"`
	Focus           string           `json:"focus"`
	Notes           string           `json:"notes"`
}

// GenerateWorkoutPlan prompts the model with the effective profile and the
// active training environment's equipment and returns the plan JSON.
func (s *OpenAIService) GenerateWorkoutPlan(profile EffectiveProfile, env *models.TrainingEnvironment, req WorkoutRequest) (json.RawMessage, error) {
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = 45
	}
	days := req.DaysPerWeek
	if days <= 0 {
		days = 3
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a %d-day-per-week workout plan, about %d minutes per session.\n", days, duration)
	fmt.Fprintf(&sb, "Athlete: age %d, sex %s, %.0f kg, %.0f cm, activity level %s, goal %s.\n",
		profile.AgeYears, orUnknown(profile.Sex), profile.WeightKg, profile.HeightCm,
		profile.ActivityLevel, profile.GoalType)
	if env != nil && len(env.Equipment) > 0 {
		sb.WriteString("Available equipment at \"" + env.Name + "\": ")
		labels := make([]string, 0, len(env.Equipment))
		for _, eq := range env.Equipment {
			label := eq.Label
			if label == "" {
				label = eq.EquipmentID
			}
			labels = append(labels, label)
		}
		sb.WriteString(strings.Join(labels, ", ") + ".\n")
	} else {
		sb.WriteString("No equipment available; bodyweight exercises only.\n")
	}
	if req.Focus != "" {
		fmt.Fprintf(&sb, "Focus: %s.\n", req.Focus)
	}
	if req.Notes != "" {
		fmt.Fprintf(&sb, "Notes from the athlete: %s\n", req.Notes)
	}
	sb.WriteString(`Respond with a JSON object: {"title": string, "days": [{"day": string, "focus": string, "exercises": [{"name": string, "sets": int, "reps": string, "rest_seconds": int, "notes": string}]}]}.`)

	return s.chatJSON([]chatMessage{
		{Role: "system", Content: "You are a certified strength and conditioning coach. Only prescribe exercises the listed equipment allows."},
		{Role: "user", Content: sb.String()},
	})
}

type NutritionAnalysis struct {
	Calories float64         `json:"calories"`
	ProteinG float64         `json:"protein_g"`
	CarbsG   float64         `json:"carbs_g"`
	FatG     float64         `json:"fat_g"`
	Items    []NutritionItem `json:"items"`
}

type NutritionItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

// AnalyzeNutrition estimates calories and macros from a free-text meal
// description, optionally with a photo (data URL) for the vision path.
func (s *OpenAIService) AnalyzeNutrition(description, imageDataURL string) (*NutritionAnalysis, error) {
	prompt := fmt.Sprintf(
		`Estimate the nutrition of this meal: %q. Respond with a JSON object: {"calories": number, "protein_g": number, "carbs_g": number, "fat_g": number, "items": [{"name": string, "calories": number}]}.`,
		description)

	var userContent any = prompt
	if imageDataURL != "" {
		userContent = []map[string]any{
			{"type": "text", "text": prompt},
			{"type": "image_url", "image_url": map[string]string{"url": imageDataURL}},
		}
	}

	raw, err := s.chatJSON([]chatMessage{
		{Role: "system", Content: "You are a registered dietitian. Give realistic single-serving estimates."},
		{Role: "user", Content: userContent},
	})
	if err != nil {
		return nil, err
	}

	var analysis NutritionAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse nutrition analysis: %w", err)
	}
	return &analysis, nil
}

// TranscribeAudio sends a voice note to the transcription endpoint and
// returns the text.
func (s *OpenAIService) TranscribeAudio(filename string, audio io.Reader) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("model", s.transcribeModel); err != nil {
		return "", err
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to buffer audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read openai response error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error %d: %s", resp.StatusCode, string(respBytes))
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("failed to parse transcription JSON: %w", err)
	}
	return out.Text, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unspecified"
	}
	return s
}
