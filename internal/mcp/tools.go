package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ngofund/ngoai/internal/agent"
)

// capabilityDescriptions are the tool descriptions shown to MCP clients.
var capabilityDescriptions = map[agent.Capability]string{
	agent.CampaignGenerator:   "Generate a fundraising campaign (title, story, goal, channels, milestones, tips). Context: ngoName, cause, description, goal, currency, durationDays, targetAudience.",
	agent.DonorAnalyzer:       "Analyze a donor's engagement and churn risk. Context: donorName, totalDonated, donationCount, averageDonation, firstDonation, lastDonation, preferredChannel, campaigns.",
	agent.FundraisingAdvisor:  "Answer a fundraising strategy question with action items. Context: question, ngoName, sector, currentSituation.",
	agent.EmailWriter:         "Write a donor email (subject, preview, HTML and text body). Context: purpose, donorName, campaignName, ngoName, tone, keyPoints, callToAction.",
	agent.SMSWriter:           "Write a short donor SMS with alternatives. Context: purpose, donorName, campaignName, ngoName, maxLength.",
	agent.DonorSegmentation:   "Segment a donor list and suggest a strategy per segment. Context: donors, totalDonors, criteria.",
	agent.PerformanceInsights: "Interpret campaign performance metrics. Context: campaignName, period, goal, raised, metrics.",
	agent.ContentTranslator:   "Translate NGO content preserving tone. Context: text, sourceLanguage, targetLanguage.",
	agent.DonorRetention:      "Propose a retention or reactivation strategy for a donor. Context: donorName, ngoName, lastDonation, daysSinceLastDonation, totalDonated, donationCount.",
	agent.NGOVerifier:         "Assess the credibility of an NGO from the supplied details. Context: ngoName, registrationNumber, legalForm, website, description, foundedYear, documents.",
	agent.ReportGenerator:     "Draft a report from activity data. Context: reportType, period, ngoName, data.",
	agent.Chatbot:             "Reply conversationally to a platform user. Context: message, history (list of {role, content}).",
}

// capabilityTool defines the MCP tool for one capability.
func capabilityTool(c agent.Capability) mcp.Tool {
	return mcp.NewTool(string(c),
		mcp.WithDescription(capabilityDescriptions[c]),
		mcp.WithString("context_json",
			mcp.Description("Capability context as a JSON object (default {})"),
		),
		mcp.WithString("language",
			mcp.Description("Answer language"),
			mcp.Enum("ro", "en"),
		),
		mcp.WithString("provider",
			mcp.Description("Preferred AI provider; others are tried if it fails"),
			mcp.Enum("openai", "gemini", "claude"),
		),
		mcp.WithBoolean("strict",
			mcp.Description("Use only the preferred provider, without fallback"),
		),
	)
}

// listProvidersTool defines the list_providers MCP tool.
var listProvidersTool = mcp.NewTool("list_providers",
	mcp.WithDescription("List the AI providers configured right now and the preferred one."),
)
