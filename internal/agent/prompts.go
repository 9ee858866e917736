package agent

import (
	"fmt"
	"strings"

	"github.com/ngofund/ngoai/internal/llm"
)

const persona = `Ești un consultant expert în strângere de fonduri pentru organizații non-guvernamentale din România. Cunoști comportamentul donatorilor români, mecanismul de redirecționare a 3,5% din impozitul pe venit, sponsorizările prin Legea 32/1994 și bunele practici de comunicare cu donatorii. Ești cald, empatic și concret; eviți promisiunile exagerate și jargonul.`

const jsonRule = `Răspunde DOAR cu un obiect JSON valid, fără text înainte sau după, cu structura:`

// Language selects the language of the model's answer.
type Language string

const (
	LanguageRomanian Language = "ro"
	LanguageEnglish  Language = "en"
)

func languageInstruction(lang Language) string {
	if lang == LanguageEnglish {
		return "Write every natural-language value of your answer in English."
	}
	return "Scrie toate textele răspunsului în limba română, cu diacritice."
}

// capabilitySpec describes how one capability is prompted and read back.
type capabilitySpec struct {
	temperature    float64
	instruction    string
	explanation    string
	suggestionsKey string
	confidenceKey  string
	// structured is false only for chat, whose reply is free text.
	structured bool
	build      func(raw map[string]any) []llm.Message
}

// specFor is the single dispatch point over the closed capability set.
func specFor(c Capability) (capabilitySpec, error) {
	switch c {
	case CampaignGenerator:
		return campaignGeneratorSpec, nil
	case DonorAnalyzer:
		return donorAnalyzerSpec, nil
	case FundraisingAdvisor:
		return fundraisingAdvisorSpec, nil
	case EmailWriter:
		return emailWriterSpec, nil
	case SMSWriter:
		return smsWriterSpec, nil
	case DonorSegmentation:
		return donorSegmentationSpec, nil
	case PerformanceInsights:
		return performanceInsightsSpec, nil
	case ContentTranslator:
		return contentTranslatorSpec, nil
	case DonorRetention:
		return donorRetentionSpec, nil
	case NGOVerifier:
		return ngoVerifierSpec, nil
	case ReportGenerator:
		return reportGeneratorSpec, nil
	case Chatbot:
		return chatbotSpec, nil
	default:
		return capabilitySpec{}, &UnknownCapabilityError{Capability: string(c)}
	}
}

func userMessage(content string) []llm.Message {
	return []llm.Message{{Role: llm.RoleUser, Content: content}}
}

var campaignGeneratorSpec = capabilitySpec{
	temperature:    0.8,
	structured:     true,
	suggestionsKey: "tips",
	explanation:    "Campanie generată pe baza cauzei, obiectivului financiar și publicului țintă ale ONG-ului.",
	instruction: `Creezi campanii de strângere de fonduri convingătoare, cu o poveste emoționantă și un plan realist.
` + jsonRule + `
{
  "title": "titlul campaniei (max 80 caractere)",
  "shortDescription": "rezumat de 1-2 propoziții",
  "story": "povestea campaniei, 3-5 paragrafe",
  "goalAmount": 0,
  "suggestedDurationDays": 0,
  "channels": ["canale de promovare recomandate"],
  "milestones": ["etape intermediare ale campaniei"],
  "tips": ["sfaturi practice pentru succesul campaniei"]
}`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[CampaignContext](raw)
		var b strings.Builder
		b.WriteString("## Date despre campanie\n")
		fmt.Fprintf(&b, "- ONG: %s\n", or(c.NGOName, defaultNGO))
		fmt.Fprintf(&b, "- Cauza: %s\n", or(c.Cause, "cauză socială generală"))
		fmt.Fprintf(&b, "- Descriere: %s\n", or(c.Description, unspecified))
		fmt.Fprintf(&b, "- Obiectiv financiar: %s\n", amount(c.Goal, c.Currency))
		fmt.Fprintf(&b, "- Durată (zile): %s\n", count(c.DurationDays))
		fmt.Fprintf(&b, "- Public țintă: %s\n", or(c.TargetAudience, "publicul larg"))
		b.WriteString("\nGenerează campania completă.")
		return userMessage(b.String())
	},
}

var donorAnalyzerSpec = capabilitySpec{
	temperature:    0.5,
	structured:     true,
	suggestionsKey: "recommendations",
	confidenceKey:  "score",
	explanation:    "Analiză a comportamentului donatorului pe baza istoricului de donații.",
	instruction: `Analizezi istoricul unui donator și estimezi implicarea și riscul de pierdere.
` + jsonRule + `
{
  "engagementLevel": "ridicat|mediu|scăzut",
  "score": 0,
  "churnRisk": "ridicat|mediu|scăzut",
  "insights": ["observații despre comportament"],
  "recommendations": ["acțiuni recomandate"],
  "nextBestAction": "următorul pas concret"
}
"score" este un număr între 0 și 100 care exprimă nivelul de implicare.`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[DonorAnalysisContext](raw)
		var b strings.Builder
		b.WriteString("## Profil donator\n")
		fmt.Fprintf(&b, "- Nume: %s\n", or(c.DonorName, defaultDonor))
		fmt.Fprintf(&b, "- Total donat: %s\n", amount(c.TotalDonated, ""))
		fmt.Fprintf(&b, "- Număr donații: %s\n", count(c.DonationCount))
		fmt.Fprintf(&b, "- Donație medie: %s\n", amount(c.AverageDonation, ""))
		fmt.Fprintf(&b, "- Prima donație: %s\n", or(c.FirstDonation, unknown))
		fmt.Fprintf(&b, "- Ultima donație: %s\n", or(c.LastDonation, unknown))
		fmt.Fprintf(&b, "- Canal preferat: %s\n", or(c.PreferredChannel, unknown))
		fmt.Fprintf(&b, "- Campanii susținute: %s\n", list(c.Campaigns))
		b.WriteString("\nAnalizează acest donator.")
		return userMessage(b.String())
	},
}

var fundraisingAdvisorSpec = capabilitySpec{
	temperature:    0.7,
	structured:     true,
	suggestionsKey: "actionItems",
	explanation:    "Recomandări de strângere de fonduri adaptate situației ONG-ului.",
	instruction: `Oferi sfaturi strategice de fundraising, concrete și aplicabile în contextul românesc.
` + jsonRule + `
{
  "advice": "răspunsul detaliat la întrebare",
  "actionItems": ["pași concreți de urmat"],
  "risks": ["riscuri de avut în vedere"],
  "resources": ["resurse sau instrumente utile"]
}`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[AdvisorContext](raw)
		var b strings.Builder
		b.WriteString("## Context ONG\n")
		fmt.Fprintf(&b, "- ONG: %s\n", or(c.NGOName, defaultNGO))
		fmt.Fprintf(&b, "- Domeniu: %s\n", or(c.Sector, unspecified))
		fmt.Fprintf(&b, "- Situația actuală: %s\n", or(c.CurrentSituation, unspecified))
		fmt.Fprintf(&b, "\n## Întrebare\n%s\n", or(c.Question, "Cum putem crește veniturile din donații?"))
		return userMessage(b.String())
	},
}

var emailWriterSpec = capabilitySpec{
	temperature: 0.7,
	structured:  true,
	explanation: "Email personalizat generat pentru comunicarea cu donatorii.",
	instruction: `Scrii emailuri către donatori: personale, calde, scurte, cu un singur îndemn clar la acțiune.
` + jsonRule + `
{
  "subject": "subiectul emailului (max 60 caractere)",
  "previewText": "textul de previzualizare (max 90 caractere)",
  "htmlBody": "corpul emailului în HTML simplu (<p>, <strong>, <a>)",
  "textBody": "aceeași versiune în text simplu"
}`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[EmailContext](raw)
		var b strings.Builder
		b.WriteString("## Detalii email\n")
		fmt.Fprintf(&b, "- Scop: %s\n", or(c.Purpose, "mulțumire pentru donație"))
		fmt.Fprintf(&b, "- Destinatar: %s\n", or(c.DonorName, "Dragă prieten"))
		fmt.Fprintf(&b, "- Campanie: %s\n", or(c.CampaignName, unspecified))
		fmt.Fprintf(&b, "- Expeditor: %s\n", or(c.NGOName, defaultNGO))
		fmt.Fprintf(&b, "- Ton: %s\n", or(c.Tone, "cald și recunoscător"))
		fmt.Fprintf(&b, "- Idei cheie: %s\n", list(c.KeyPoints))
		fmt.Fprintf(&b, "- Îndemn la acțiune: %s\n", or(c.CallToAction, unspecified))
		b.WriteString("\nScrie emailul.")
		return userMessage(b.String())
	},
}

var smsWriterSpec = capabilitySpec{
	temperature:    0.8,
	structured:     true,
	suggestionsKey: "alternatives",
	explanation:    "Mesaj SMS scurt generat pentru donatori.",
	instruction: `Scrii mesaje SMS pentru donatori: foarte scurte, personale, fără diacritice, cu un îndemn clar.
` + jsonRule + `
{
  "message": "textul SMS-ului",
  "characterCount": 0,
  "alternatives": ["variante alternative ale mesajului"]
}`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[SMSContext](raw)
		maxLength := c.MaxLength
		if maxLength <= 0 {
			maxLength = 160
		}
		var b strings.Builder
		b.WriteString("## Detalii SMS\n")
		fmt.Fprintf(&b, "- Scop: %s\n", or(c.Purpose, "mulțumire pentru donație"))
		fmt.Fprintf(&b, "- Destinatar: %s\n", or(c.DonorName, defaultDonor))
		fmt.Fprintf(&b, "- Campanie: %s\n", or(c.CampaignName, unspecified))
		fmt.Fprintf(&b, "- Expeditor: %s\n", or(c.NGOName, defaultNGO))
		fmt.Fprintf(&b, "- Lungime maximă: %d caractere\n", maxLength)
		b.WriteString("\nScrie SMS-ul.")
		return userMessage(b.String())
	},
}

var donorSegmentationSpec = capabilitySpec{
	temperature:    0.4,
	structured:     true,
	suggestionsKey: "recommendations",
	explanation:    "Segmentare a bazei de donatori după comportamentul de donare.",
	instruction: `Împarți donatorii în segmente utile pentru comunicare și propui o strategie pentru fiecare.
` + jsonRule + `
{
  "segments": [
    {"name": "numele segmentului", "description": "descriere", "criteria": "criterii de includere", "donorCount": 0, "strategy": "strategia de comunicare"}
  ],
  "recommendations": ["recomandări generale"]
}`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[SegmentationContext](raw)
		total := c.TotalDonors
		if total <= 0 {
			total = len(c.Donors)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "## Baza de donatori (%s donatori)\n", count(total))
		fmt.Fprintf(&b, "Criterii preferate: %s\n\n", or(c.Criteria, "valoare, frecvență și recență (RFM)"))
		b.WriteString(dump(c.Donors))
		b.WriteString("\n\nPropune segmentarea.")
		return userMessage(b.String())
	},
}

var performanceInsightsSpec = capabilitySpec{
	temperature:    0.5,
	structured:     true,
	suggestionsKey: "recommendations",
	confidenceKey:  "score",
	explanation:    "Interpretare a indicatorilor de performanță ai campaniei.",
	instruction: `Interpretezi indicatorii unei campanii de fundraising și identifici ce funcționează și ce nu.
` + jsonRule + `
{
  "summary": "rezumatul performanței",
  "score": 0,
  "highlights": ["puncte forte"],
  "concerns": ["probleme identificate"],
  "recommendations": ["îmbunătățiri propuse"]
}
"score" este un număr între 0 și 100 care exprimă performanța generală.`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[PerformanceContext](raw)
		var b strings.Builder
		b.WriteString("## Campanie\n")
		fmt.Fprintf(&b, "- Nume: %s\n", or(c.CampaignName, unspecified))
		fmt.Fprintf(&b, "- Perioadă: %s\n", or(c.Period, unspecified))
		fmt.Fprintf(&b, "- Obiectiv: %s\n", amount(c.Goal, ""))
		fmt.Fprintf(&b, "- Strâns: %s\n", amount(c.Raised, ""))
		b.WriteString("\n## Indicatori\n")
		b.WriteString(dump(c.Metrics))
		b.WriteString("\n\nAnalizează performanța.")
		return userMessage(b.String())
	},
}

var contentTranslatorSpec = capabilitySpec{
	temperature: 0.3,
	structured:  true,
	explanation: "Traducere a conținutului păstrând tonul și terminologia ONG.",
	instruction: `Traduci conținut pentru ONG-uri păstrând tonul, sensul și terminologia de specialitate.
` + jsonRule + `
{
  "translatedText": "textul tradus",
  "notes": "observații despre alegerile de traducere, dacă există"
}`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[TranslationContext](raw)
		var b strings.Builder
		fmt.Fprintf(&b, "Limba sursă: %s\n", or(c.SourceLanguage, "ro"))
		fmt.Fprintf(&b, "Limba țintă: %s\n", or(c.TargetLanguage, "en"))
		fmt.Fprintf(&b, "\n## Text\n%s\n", or(c.Text, "(text lipsă)"))
		return userMessage(b.String())
	},
}

var donorRetentionSpec = capabilitySpec{
	temperature:    0.7,
	structured:     true,
	suggestionsKey: "actions",
	explanation:    "Strategie de reactivare și fidelizare pentru donatorul selectat.",
	instruction: `Propui strategii de fidelizare și reactivare a donatorilor inactivi.
` + jsonRule + `
{
  "riskLevel": "ridicat|mediu|scăzut",
  "strategy": "strategia recomandată",
  "actions": ["acțiuni concrete, în ordine"],
  "messageDraft": "o ciornă de mesaj de reactivare"
}`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[RetentionContext](raw)
		var b strings.Builder
		b.WriteString("## Donator\n")
		fmt.Fprintf(&b, "- Nume: %s\n", or(c.DonorName, defaultDonor))
		fmt.Fprintf(&b, "- ONG: %s\n", or(c.NGOName, defaultNGO))
		fmt.Fprintf(&b, "- Ultima donație: %s\n", or(c.LastDonation, unknown))
		fmt.Fprintf(&b, "- Zile de la ultima donație: %s\n", count(c.DaysSinceLastDonation))
		fmt.Fprintf(&b, "- Total donat: %s\n", amount(c.TotalDonated, ""))
		fmt.Fprintf(&b, "- Număr donații: %s\n", count(c.DonationCount))
		b.WriteString("\nPropune strategia de retenție.")
		return userMessage(b.String())
	},
}

var ngoVerifierSpec = capabilitySpec{
	temperature:    0.3,
	structured:     true,
	suggestionsKey: "recommendations",
	confidenceKey:  "trustScore",
	explanation:    "Evaluare preliminară a credibilității ONG-ului pe baza informațiilor furnizate.",
	instruction: `Evaluezi credibilitatea unui ONG românesc pe baza datelor publice furnizate. Semnalezi inconsecvențe, nu inventezi fapte.
` + jsonRule + `
{
  "trustScore": 0,
  "status": "verificat|necesită verificare|suspect",
  "flags": ["semnale de alarmă"],
  "missingInformation": ["informații lipsă"],
  "recommendations": ["pași de verificare suplimentari"]
}
"trustScore" este un număr între 0 și 100.`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[VerifierContext](raw)
		founded := unknown
		if c.FoundedYear > 0 {
			founded = fmt.Sprint(c.FoundedYear)
		}
		var b strings.Builder
		b.WriteString("## Date ONG\n")
		fmt.Fprintf(&b, "- Denumire: %s\n", or(c.NGOName, unknown))
		fmt.Fprintf(&b, "- CUI / nr. registru: %s\n", or(c.RegistrationNumber, unknown))
		fmt.Fprintf(&b, "- Formă juridică: %s\n", or(c.LegalForm, unknown))
		fmt.Fprintf(&b, "- Website: %s\n", or(c.Website, unknown))
		fmt.Fprintf(&b, "- An înființare: %s\n", founded)
		fmt.Fprintf(&b, "- Documente furnizate: %s\n", list(c.Documents))
		fmt.Fprintf(&b, "- Descriere: %s\n", or(c.Description, unspecified))
		b.WriteString("\nEvaluează acest ONG.")
		return userMessage(b.String())
	},
}

var reportGeneratorSpec = capabilitySpec{
	temperature:    0.5,
	structured:     true,
	suggestionsKey: "recommendations",
	explanation:    "Raport generat din datele de activitate furnizate.",
	instruction: `Redactezi rapoarte clare pentru consiliul director și donatori, bazate strict pe datele primite.
` + jsonRule + `
{
  "title": "titlul raportului",
  "executiveSummary": "rezumat executiv",
  "sections": [{"heading": "titlu secțiune", "content": "conținut"}],
  "keyMetrics": {"numeIndicator": "valoare"},
  "recommendations": ["recomandări"]
}`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[ReportContext](raw)
		var b strings.Builder
		fmt.Fprintf(&b, "## Raport %s\n", or(c.ReportType, "lunar"))
		fmt.Fprintf(&b, "- ONG: %s\n", or(c.NGOName, defaultNGO))
		fmt.Fprintf(&b, "- Perioadă: %s\n", or(c.Period, unspecified))
		b.WriteString("\n## Date\n")
		b.WriteString(dump(c.Data))
		b.WriteString("\n\nRedactează raportul.")
		return userMessage(b.String())
	},
}

var chatbotSpec = capabilitySpec{
	temperature: 0.7,
	structured:  false,
	explanation: "Răspuns conversațional al asistentului.",
	instruction: `Ești asistentul platformei de fundraising. Răspunzi scurt și prietenos la întrebările utilizatorilor despre donații, campanii și utilizarea platformei. Răspunde în text simplu, nu în JSON.`,
	build: func(raw map[string]any) []llm.Message {
		c := decode[ChatContext](raw)
		var msgs []llm.Message
		for _, turn := range c.History {
			if strings.TrimSpace(turn.Content) == "" {
				continue
			}
			role := llm.RoleUser
			switch strings.ToLower(turn.Role) {
			case "assistant", "model", "bot":
				role = llm.RoleAssistant
			}
			// The conversation must open with a user turn.
			if role == llm.RoleAssistant && len(msgs) == 0 {
				continue
			}
			msgs = append(msgs, llm.Message{Role: role, Content: turn.Content})
		}
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: or(c.Message, "Salut!")})
		return msgs
	},
}
