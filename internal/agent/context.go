package agent

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Typed views over AgentRequest.Context, one per capability. Keys match
// case-insensitively; values are weakly typed so "1500" and 1500 both fill
// a number. Missing keys keep zero values and are replaced by placeholders
// when the prompt is rendered.

type CampaignContext struct {
	NGOName        string  `mapstructure:"ngoName"`
	Cause          string  `mapstructure:"cause"`
	Description    string  `mapstructure:"description"`
	Goal           float64 `mapstructure:"goal"`
	Currency       string  `mapstructure:"currency"`
	DurationDays   int     `mapstructure:"durationDays"`
	TargetAudience string  `mapstructure:"targetAudience"`
}

type DonorAnalysisContext struct {
	DonorName        string   `mapstructure:"donorName"`
	TotalDonated     float64  `mapstructure:"totalDonated"`
	DonationCount    int      `mapstructure:"donationCount"`
	AverageDonation  float64  `mapstructure:"averageDonation"`
	FirstDonation    string   `mapstructure:"firstDonation"`
	LastDonation     string   `mapstructure:"lastDonation"`
	PreferredChannel string   `mapstructure:"preferredChannel"`
	Campaigns        []string `mapstructure:"campaigns"`
}

type AdvisorContext struct {
	Question         string `mapstructure:"question"`
	NGOName          string `mapstructure:"ngoName"`
	Sector           string `mapstructure:"sector"`
	CurrentSituation string `mapstructure:"currentSituation"`
}

type EmailContext struct {
	Purpose      string   `mapstructure:"purpose"`
	DonorName    string   `mapstructure:"donorName"`
	CampaignName string   `mapstructure:"campaignName"`
	NGOName      string   `mapstructure:"ngoName"`
	Tone         string   `mapstructure:"tone"`
	KeyPoints    []string `mapstructure:"keyPoints"`
	CallToAction string   `mapstructure:"callToAction"`
}

type SMSContext struct {
	Purpose      string `mapstructure:"purpose"`
	DonorName    string `mapstructure:"donorName"`
	CampaignName string `mapstructure:"campaignName"`
	NGOName      string `mapstructure:"ngoName"`
	MaxLength    int    `mapstructure:"maxLength"`
}

type SegmentationContext struct {
	Donors      []map[string]any `mapstructure:"donors"`
	TotalDonors int              `mapstructure:"totalDonors"`
	Criteria    string           `mapstructure:"criteria"`
}

type PerformanceContext struct {
	CampaignName string         `mapstructure:"campaignName"`
	Period       string         `mapstructure:"period"`
	Goal         float64        `mapstructure:"goal"`
	Raised       float64        `mapstructure:"raised"`
	Metrics      map[string]any `mapstructure:"metrics"`
}

type TranslationContext struct {
	Text           string `mapstructure:"text"`
	SourceLanguage string `mapstructure:"sourceLanguage"`
	TargetLanguage string `mapstructure:"targetLanguage"`
}

type RetentionContext struct {
	DonorName             string  `mapstructure:"donorName"`
	NGOName               string  `mapstructure:"ngoName"`
	LastDonation          string  `mapstructure:"lastDonation"`
	DaysSinceLastDonation int     `mapstructure:"daysSinceLastDonation"`
	TotalDonated          float64 `mapstructure:"totalDonated"`
	DonationCount         int     `mapstructure:"donationCount"`
}

type VerifierContext struct {
	NGOName            string   `mapstructure:"ngoName"`
	RegistrationNumber string   `mapstructure:"registrationNumber"`
	LegalForm          string   `mapstructure:"legalForm"`
	Website            string   `mapstructure:"website"`
	Description        string   `mapstructure:"description"`
	FoundedYear        int      `mapstructure:"foundedYear"`
	Documents          []string `mapstructure:"documents"`
}

type ReportContext struct {
	ReportType string         `mapstructure:"reportType"`
	Period     string         `mapstructure:"period"`
	NGOName    string         `mapstructure:"ngoName"`
	Data       map[string]any `mapstructure:"data"`
}

type ChatTurn struct {
	Role    string `mapstructure:"role"`
	Content string `mapstructure:"content"`
}

type ChatContext struct {
	Message string     `mapstructure:"message"`
	NGOName string     `mapstructure:"ngoName"`
	History []ChatTurn `mapstructure:"history"`
}

// decode fills a T from raw. Fields that fail to decode keep their zero
// value; a malformed context never fails the request.
func decode[T any](raw map[string]any) T {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out
	}
	_ = dec.Decode(raw)
	return out
}

// Placeholders used when a context field is absent.
const (
	unknown      = "necunoscut"
	unspecified  = "nespecificat"
	defaultNGO   = "ONG-ul nostru"
	defaultDonor = "Donator"
)

func or(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func amount(v float64, currency string) string {
	if v <= 0 {
		return unspecified
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + or(currency, "RON")
}

func count(n int) string {
	if n <= 0 {
		return unknown
	}
	return strconv.Itoa(n)
}

func list(items []string) string {
	var kept []string
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return unspecified
	}
	return strings.Join(kept, ", ")
}

// dump renders a free-form value compactly for inclusion in a prompt.
func dump(v any) string {
	switch t := v.(type) {
	case nil:
		return "(fără date)"
	case map[string]any:
		if len(t) == 0 {
			return "(fără date)"
		}
	case []map[string]any:
		if len(t) == 0 {
			return "(fără date)"
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
