package agent

import (
	"errors"
	"fmt"
)

// Capability names one of the fixed business operations of the router.
type Capability string

const (
	CampaignGenerator   Capability = "campaign_generator"
	DonorAnalyzer       Capability = "donor_analyzer"
	FundraisingAdvisor  Capability = "fundraising_advisor"
	EmailWriter         Capability = "email_writer"
	SMSWriter           Capability = "sms_writer"
	DonorSegmentation   Capability = "donor_segmentation"
	PerformanceInsights Capability = "performance_insights"
	ContentTranslator   Capability = "content_translator"
	DonorRetention      Capability = "donor_retention"
	NGOVerifier         Capability = "ngo_verifier"
	ReportGenerator     Capability = "report_generator"
	Chatbot             Capability = "chatbot"
)

// Capabilities returns the closed set of capabilities.
func Capabilities() []Capability {
	return []Capability{
		CampaignGenerator,
		DonorAnalyzer,
		FundraisingAdvisor,
		EmailWriter,
		SMSWriter,
		DonorSegmentation,
		PerformanceInsights,
		ContentTranslator,
		DonorRetention,
		NGOVerifier,
		ReportGenerator,
		Chatbot,
	}
}

// ErrUnknownCapability is matched by every UnknownCapabilityError.
var ErrUnknownCapability = errors.New("capability not recognized")

// UnknownCapabilityError reports a capability outside the fixed set.
type UnknownCapabilityError struct {
	Capability string
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownCapability, e.Capability)
}

func (e *UnknownCapabilityError) Is(target error) bool {
	return target == ErrUnknownCapability
}

// ParseCapability validates s against the fixed set.
func ParseCapability(s string) (Capability, error) {
	for _, c := range Capabilities() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &UnknownCapabilityError{Capability: s}
}
