// Package prompts renders the four generative requests the app makes and
// checks the structured replies before they reach a caller.
package prompts

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/Dias221467/Mindful_Companion/internal/genai"
	"github.com/Dias221467/Mindful_Companion/internal/models"
)

// Flow names, also used as metric labels.
const (
	FlowJournalPrompt   = "journal_prompt"
	FlowSelfCare        = "self_care_activities"
	FlowActivityDetails = "activity_details"
	FlowAffirmation     = "daily_affirmation"
)

// JournalPromptInput feeds the journaling prompt request.
type JournalPromptInput struct {
	Mood         models.Mood `json:"mood"`
	JournalEntry string      `json:"journalEntry,omitempty"`
	Age          *int        `json:"age,omitempty"`
}

func (in JournalPromptInput) Validate() error {
	errs := models.ValidationErrors{}
	if !in.Mood.Valid() {
		errs["mood"] = "must be one of Happy, Calm, Okay, Sad, Anxious, Angry"
	}
	return errs.OrNil()
}

// SelfCareInput feeds the self-care activities request.
type SelfCareInput struct {
	Mood         models.Mood `json:"mood"`
	StressLevel  int         `json:"stressLevel"`
	JournalEntry string      `json:"journalEntry,omitempty"`
	Age          *int        `json:"age,omitempty"`
}

func (in SelfCareInput) Validate() error {
	errs := models.ValidationErrors{}
	checkMoodAndStress(errs, in.Mood, in.StressLevel)
	return errs.OrNil()
}

// ActivityDetailsInput feeds the activity guide request.
type ActivityDetailsInput struct {
	Mood         models.Mood `json:"mood"`
	StressLevel  int         `json:"stressLevel"`
	Activity     string      `json:"activity"`
	JournalEntry string      `json:"journalEntry,omitempty"`
	Age          *int        `json:"age,omitempty"`
}

func (in ActivityDetailsInput) Validate() error {
	errs := models.ValidationErrors{}
	checkMoodAndStress(errs, in.Mood, in.StressLevel)
	if strings.TrimSpace(in.Activity) == "" {
		errs["activity"] = "is required"
	}
	return errs.OrNil()
}

func checkMoodAndStress(errs models.ValidationErrors, mood models.Mood, stress int) {
	if !mood.Valid() {
		errs["mood"] = "must be one of Happy, Calm, Okay, Sad, Anxious, Angry"
	}
	if stress < models.MinStressLevel || stress > models.MaxStressLevel {
		errs["stressLevel"] = fmt.Sprintf("must be between %d and %d", models.MinStressLevel, models.MaxStressLevel)
	}
}

// templateData is what the templates see. Age is 0 when unknown.
type templateData struct {
	Mood         models.Mood
	StressLevel  int
	JournalEntry string
	Activity     string
	Age          int
	Categories   string
}

func ageOrZero(age *int) int {
	if age == nil || *age < 0 {
		return 0
	}
	return *age
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// JournalPrompt builds the request for a single reflective journaling prompt.
func JournalPrompt(in JournalPromptInput) (genai.Request, error) {
	if err := in.Validate(); err != nil {
		return genai.Request{}, err
	}

	text, err := render(journalPromptTmpl, templateData{
		Mood:         in.Mood,
		JournalEntry: in.JournalEntry,
		Age:          ageOrZero(in.Age),
	})
	if err != nil {
		return genai.Request{}, err
	}

	return genai.Request{
		Flow:   FlowJournalPrompt,
		Prompt: text,
		Schema: objectSchema(map[string]*genai.Schema{
			"prompt": {Type: "STRING", Description: "A journaling prompt tailored to the user's mood."},
		}),
	}, nil
}

// SelfCareActivities builds the request for a list of self-care suggestions.
func SelfCareActivities(in SelfCareInput) (genai.Request, error) {
	if err := in.Validate(); err != nil {
		return genai.Request{}, err
	}

	categories := make([]string, 0, len(models.ActivityCategories))
	for _, c := range models.ActivityCategories {
		categories = append(categories, string(c))
	}

	text, err := render(selfCareTmpl, templateData{
		Mood:         in.Mood,
		StressLevel:  in.StressLevel,
		JournalEntry: in.JournalEntry,
		Age:          ageOrZero(in.Age),
		Categories:   strings.Join(categories, ", "),
	})
	if err != nil {
		return genai.Request{}, err
	}

	activity := objectSchema(map[string]*genai.Schema{
		"title":       {Type: "STRING", Description: "The name of the self-care activity."},
		"category":    {Type: "STRING", Description: "The category of the activity.", Enum: categories},
		"description": {Type: "STRING", Description: "A short, one-sentence description of the activity."},
	})

	return genai.Request{
		Flow:   FlowSelfCare,
		Prompt: text,
		Schema: objectSchema(map[string]*genai.Schema{
			"activities": {
				Type:        "ARRAY",
				Description: "A list of 5-6 personalized self-care activities.",
				Items:       activity,
			},
		}),
		Safety: userTextSafety,
	}, nil
}

// ActivityDetails builds the request for a short guide to one chosen activity.
func ActivityDetails(in ActivityDetailsInput) (genai.Request, error) {
	if err := in.Validate(); err != nil {
		return genai.Request{}, err
	}

	text, err := render(activityDetailsTmpl, templateData{
		Mood:         in.Mood,
		StressLevel:  in.StressLevel,
		Activity:     in.Activity,
		JournalEntry: in.JournalEntry,
		Age:          ageOrZero(in.Age),
	})
	if err != nil {
		return genai.Request{}, err
	}

	return genai.Request{
		Flow:   FlowActivityDetails,
		Prompt: text,
		Schema: objectSchema(map[string]*genai.Schema{
			"details": {Type: "STRING", Description: "A detailed, gentle explanation of the activity."},
		}),
		Safety: userTextSafety,
	}, nil
}

// DailyAffirmation builds the input-free affirmation request.
func DailyAffirmation() genai.Request {
	return genai.Request{
		Flow:   FlowAffirmation,
		Prompt: affirmationPrompt,
		Schema: objectSchema(map[string]*genai.Schema{
			"affirmation": {Type: "STRING", Description: "A short, positive, and inspiring affirmation."},
		}),
	}
}

// objectSchema marks every property as required.
func objectSchema(props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: "OBJECT", Properties: props, Required: sortedKeys(props)}
}

// JournalPromptOutput is the decoded journaling prompt reply.
type JournalPromptOutput struct {
	Prompt string `json:"prompt"`
}

func (o *JournalPromptOutput) Validate() error {
	return requireText("prompt", o.Prompt)
}

// SelfCareOutput is the decoded self-care reply.
type SelfCareOutput struct {
	Activities []models.SelfCareActivity `json:"activities"`
}

// ErrNoActivities means the service answered with an empty list.
var ErrNoActivities = fmt.Errorf("%w: no activities returned", genai.ErrMalformedResponse)

// CategoryError reports an activity whose category is outside the closed set.
type CategoryError struct {
	Title    string
	Category models.ActivityCategory
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("activity %q has unknown category %q", e.Title, e.Category)
}

func (e *CategoryError) Unwrap() error { return genai.ErrMalformedResponse }

func (o *SelfCareOutput) Validate() error {
	if len(o.Activities) == 0 {
		return ErrNoActivities
	}
	for i, a := range o.Activities {
		if err := requireText(fmt.Sprintf("activities[%d].title", i), a.Title); err != nil {
			return err
		}
		if err := requireText(fmt.Sprintf("activities[%d].description", i), a.Description); err != nil {
			return err
		}
		if !a.Category.Valid() {
			return &CategoryError{Title: a.Title, Category: a.Category}
		}
	}
	return nil
}

// ActivityDetailsOutput is the decoded activity guide reply.
type ActivityDetailsOutput struct {
	Details string `json:"details"`
}

func (o *ActivityDetailsOutput) Validate() error {
	return requireText("details", o.Details)
}

// AffirmationOutput is the decoded affirmation reply.
type AffirmationOutput struct {
	Affirmation string `json:"affirmation"`
}

func (o *AffirmationOutput) Validate() error {
	return requireText("affirmation", o.Affirmation)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is empty", genai.ErrMalformedResponse, field)
	}
	return nil
}

// IsDataQuality reports whether err came from a reply that did not hold up.
func IsDataQuality(err error) bool {
	return errors.Is(err, genai.ErrMalformedResponse)
}
