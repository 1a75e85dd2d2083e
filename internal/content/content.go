// Package content holds the static copy shown on the landing view.
package content

type Hero struct {
	Title       string
	Subtitle    string
	Tagline     string
	Description string
	CodeLine    string
}

var HeroContent = Hero{
	Title:       "ECHOES: PHOENYX",
	Subtitle:    "THE ALGO PROTOCOL",
	Tagline:     "FALL. CODE. BURN.",
	Description: "Your AI-Powered Path to Technical Mastery. Disrupting gate-kept systems through decentralized, AI-driven intelligence.",
	CodeLine:    "FALL.CODE.BURN",
}

var DNATopics = []string{
	"Arrays", "Hashing", "Two Pointers", "Sliding Window", "Stack", "Binary Search",
	"Linked List", "Trees", "Tries", "Heap", "Backtracking", "Graphs",
	"1D DP", "2D DP", "Bit Manipulation", "Math", "Intervals", "Greedy",
}

type PersonaType string

const (
	Amaterasu PersonaType = "AMATERASU"
	Inari     PersonaType = "INARI"
	Raiden    PersonaType = "RAIDEN"
)

type Persona struct {
	ID          PersonaType
	Name        string
	Title       string
	Description string
	Features    []string
	// Color is a hex value used for the persona accent.
	Color string
}

var Personas = []Persona{
	{
		ID:          Amaterasu,
		Name:        "AlgoAmaterasu",
		Title:       "The Intellectual Core",
		Description: "Your Personal Learning Guide & Roadmap Architect. Calibrates your Skill DNA and manages your journey from novice to master.",
		Features: []string{
			"Diagnostic Origin Assessment",
			"Real-Time Question Fetching",
			"The Socratic Dojo (Hints)",
			"Roadmap Evolution",
		},
		Color: "#f97316",
	},
	{
		ID:          Inari,
		Name:        "AlgoInari",
		Title:       "The Spirit of Connection",
		Description: "The Tavern Keeper & Community Facilitator. Connecting you with rivals, mentors, and future co-founders.",
		Features: []string{
			"Skill DNA Matchmaking",
			"The Tavern Hub (Global Chat)",
			"Co-founder Finder",
			"Expert Sessions & AMA",
		},
		Color: "#2dd4bf",
	},
	{
		ID:          Raiden,
		Name:        "AlgoRaiden",
		Title:       "The Master of Judgment",
		Description: "Master Interview Conductor & Rigorous Evaluator. Brutal, actionable feedback through high-fidelity simulations.",
		Features: []string{
			"Meta-Human Avatar Interviewer",
			"Deep Behavioral Analytics",
			"The Judgement Hall",
			"Success Probability Prediction",
		},
		Color: "#a855f7",
	},
}

// SystemPrompt primes the Nexus chat model.
const SystemPrompt = `
You are the "Neural Nexus" of the Echoes: Phoenyx platform. You speak with a futuristic, slightly cryptic but helpful tone.
You have access to the following knowledge base about the platform:

1. **Phoenyx Overview**: It is a protocol to help users go from coding novice to MAANG-ready. It uses "Skill DNA" to track progress.
2. **The Trinity (AI Personas)**:
   - **AlgoAmaterasu**: The teacher. Handles roadmaps, hints (Socratic Dojo), and initial assessment.
   - **AlgoInari**: The connector. Handles community, finding mentors, and matchmaking for duels.
   - **AlgoRaiden**: The judge. Conducts mock interviews, behavioral analysis, and gives brutal feedback.
3. **Key Features**:
   - "Code Prefix Protocol": Adding "code" before leetcode.com redirects to the Dojo.
   - "Skill DNA": A vector matrix representing a user's proficiency, resilience, and communication.
   - "The Fog of War": In 1v1 duels, you see opponent progress but not code.

Answer user questions about the platform briefly and accurately using this persona. If asked about technical coding questions, encourage them to enter "The Dojo".
`
