package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
)

// GoalRefiner is the optional AI collaborator that can improve on the
// deterministic calculator. It is never on the correctness-critical path:
// any error, timeout, or schema violation makes the caller fall back to
// ComputeGoals.
type GoalRefiner interface {
	RefineGoals(ctx context.Context, profile *models.HealthProfile) (models.NutrientTargets, string, error)
}

var ErrRefinerUnavailable = errors.New("goal refiner not configured")

// GroqRefiner calls the Groq chat-completions API and parses a strict JSON
// goal object out of the model's answer.
type GroqRefiner struct {
	apiKey string
	model  string
	client *http.Client
}

func NewGroqRefiner(apiKey, model string, timeout time.Duration) *GroqRefiner {
	return &GroqRefiner{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

const groqChatURL = "https://api.groq.com/openai/v1/chat/completions"

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const refinerSystemPrompt = `You are an expert clinical nutritionist using evidence-based guidelines.
Calculate personalized daily nutrition targets using the Mifflin-St Jeor equation,
activity multipliers (sedentary 1.2, light 1.375, moderate 1.55, active 1.725, very active 1.9),
a 20% deficit for weight loss or 15% surplus for weight gain, and WHO/FAO macro splits.
Sugar targets must be realistic about natural fruit and dairy sugars.
Return ONLY a JSON object with integer keys: calories, protein, carbs, fat, fiber, sugar, saturated_fat,
plus a "reasoning" string. No prose, no markdown, ONLY the JSON object.`

func (r *GroqRefiner) RefineGoals(ctx context.Context, profile *models.HealthProfile) (models.NutrientTargets, string, error) {
	if r.apiKey == "" {
		return models.NutrientTargets{}, "", ErrRefinerUnavailable
	}

	payload := chatRequest{
		Model:       r.model,
		Temperature: 0.3, // low temperature for consistent arithmetic
		Messages: []chatMessage{
			{Role: "system", Content: refinerSystemPrompt},
			{Role: "user", Content: profilePrompt(profile)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.NutrientTargets{}, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqChatURL, bytes.NewReader(body))
	if err != nil {
		return models.NutrientTargets{}, "", err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return models.NutrientTargets{}, "", fmt.Errorf("failed to call goal refiner: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.NutrientTargets{}, "", fmt.Errorf("failed to read refiner response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.NutrientTargets{}, "", fmt.Errorf("refiner API error %d: %s", resp.StatusCode, string(raw))
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return models.NutrientTargets{}, "", fmt.Errorf("failed to parse refiner JSON: %w", err)
	}
	if len(cr.Choices) == 0 {
		return models.NutrientTargets{}, "", errors.New("refiner returned no choices")
	}

	return ParseRefinedGoals(cr.Choices[0].Message.Content)
}

func profilePrompt(p *models.HealthProfile) string {
	if p == nil {
		p = &models.HealthProfile{}
	}

	var conditions []string
	if p.HasDiabetes {
		conditions = append(conditions, "diabetes")
	}
	if p.HasBloodPressureIssues {
		conditions = append(conditions, "high blood pressure")
	}
	if p.HasHeartIssues {
		conditions = append(conditions, "heart disease")
	}
	if p.HasGutIssues {
		conditions = append(conditions, "digestive issues")
	}

	var goals []string
	switch p.WeightGoal {
	case "loss":
		goals = append(goals, "weight loss")
	case "gain":
		goals = append(goals, "weight gain")
	}
	if p.MuscleBuilding {
		goals = append(goals, "muscle building")
	}
	if p.EnergyImprovement {
		goals = append(goals, "energy improvement")
	}
	if p.SugarControl {
		goals = append(goals, "sugar control")
	}

	orNone := func(ss []string) string {
		if len(ss) == 0 {
			return "None"
		}
		return strings.Join(ss, ", ")
	}

	return fmt.Sprintf(
		"Calculate personalized daily nutrition targets for:\nAge: %d years\nGender: %s\nWeight: %.1f kg\nHeight: %.1f cm\nActivity Level: %s\nHealth Conditions: %s\nGoals: %s\n",
		p.Age, p.Gender, p.WeightKg, p.HeightCm, p.ActivityLevel, orNone(conditions), orNone(goals))
}

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// refinedGoalsPayload uses pointers so a missing field is distinguishable
// from a zero — every numeric field is required for acceptance.
type refinedGoalsPayload struct {
	Calories     *float64 `json:"calories"`
	Protein      *float64 `json:"protein"`
	Carbs        *float64 `json:"carbs"`
	Fat          *float64 `json:"fat"`
	Fiber        *float64 `json:"fiber"`
	Sugar        *float64 `json:"sugar"`
	SaturatedFat *float64 `json:"saturated_fat"`
	Reasoning    string   `json:"reasoning"`
}

// ParseRefinedGoals extracts and validates the JSON goal object from a model
// answer. Rejection here is what routes callers onto the deterministic path.
func ParseRefinedGoals(text string) (models.NutrientTargets, string, error) {
	match := jsonObjectRe.FindString(text)
	if match == "" {
		return models.NutrientTargets{}, "", errors.New("refiner answer contains no JSON object")
	}

	var p refinedGoalsPayload
	if err := json.Unmarshal([]byte(match), &p); err != nil {
		return models.NutrientTargets{}, "", fmt.Errorf("invalid refiner goal JSON: %w", err)
	}

	required := map[string]*float64{
		"calories":      p.Calories,
		"protein":       p.Protein,
		"carbs":         p.Carbs,
		"fat":           p.Fat,
		"fiber":         p.Fiber,
		"sugar":         p.Sugar,
		"saturated_fat": p.SaturatedFat,
	}
	for name, v := range required {
		if v == nil {
			return models.NutrientTargets{}, "", fmt.Errorf("refiner goal JSON missing %q", name)
		}
		if *v < 0 {
			return models.NutrientTargets{}, "", fmt.Errorf("refiner goal JSON has negative %q", name)
		}
	}

	targets := models.NutrientTargets{
		Calories:     int(*p.Calories),
		Protein:      int(*p.Protein),
		Carbs:        int(*p.Carbs),
		Fat:          int(*p.Fat),
		Fiber:        int(*p.Fiber),
		Sugar:        int(*p.Sugar),
		SaturatedFat: int(*p.SaturatedFat),
	}

	reasoning := p.Reasoning
	if reasoning == "" {
		reasoning = "AI-generated based on profile"
	}
	return targets, reasoning, nil
}
