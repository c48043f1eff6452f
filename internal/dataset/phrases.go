package dataset

// Seed material for the generators. The stage-1 phrases exercise the plain
// alphabet; the stage-2 phrases are deliberately rich in contractable
// words; the concept bank feeds the discovery and compression tasks.

var stage1Phrases = []string{
	"hello world", "the quick brown fox", "braille is light",
	"edge ai is the future", "knowledge is power", "see with touch",
	"robotics and tactile sensing", "medical alert system",
	"the patient is stable", "emergency response active",
}

var stage2Phrases = []string{
	"the child will have knowledge",
	"people can do this for you",
	"which mother shall go with the father",
	"they were not enough for us",
	"every brother and sister should know",
	"this is very good for the children",
	"you can have more than enough",
	"the people will go together",
	"rather than thinking about it",
	"with knowledge and understanding",
	"shall we go out with them",
	"the child was still there",
	"everything will be enough for everyone",
	"from mother to child with love",
	"just like the other children",
	"they have knowledge of this",
	"which one shall we choose",
	"the father and mother were there",
	"not enough people will understand",
	"very still and quiet in the room",
}

var englishPhrases = []string{
	"hello world", "the quick brown fox", "knowledge is power",
	"emergency response team", "blood pressure monitor", "patient vital signs",
	"artificial intelligence", "machine learning model", "neural network",
	"the child will learn", "people can understand", "with knowledge and wisdom",
	"medical alert system", "tactile feedback device", "braille display unit",
	"semantic compression", "information theory", "communication protocol",
	"edge computing device", "raspberry pi deployment", "low latency inference",
	"the mother and father", "children shall learn", "every person matters",
	"robot arm controller", "haptic feedback glove", "sensory substitution",
	"natural language processing", "text to speech", "speech recognition",
	"autonomous navigation", "obstacle avoidance", "path planning algorithm",
}

var domainConcepts = []string{
	"emergency medical response", "blood oxygen saturation", "heart rate variability",
	"intracranial pressure", "respiratory distress syndrome", "cardiac arrhythmia",
	"diabetic ketoacidosis", "anaphylactic shock", "cerebrovascular accident",
	"myocardial infarction", "pulmonary embolism", "septic shock protocol",
	"trauma assessment", "triage classification", "critical care unit",
	"robotic surgery", "prosthetic limb control", "neural interface",
	"swarm intelligence", "distributed consensus", "fault tolerance",
	"semantic similarity", "embedding space", "vector quantization",
}

var commonWords = []string{
	"the", "and", "for", "with", "that", "have", "this", "will", "from",
	"they", "which", "their", "would", "there", "could", "people", "about",
	"know", "just", "like", "time", "very", "when", "come", "make", "than",
	"child", "children", "shall", "should", "through", "think", "thought",
	"knowledge", "enough", "every", "everything", "everyone", "rather",
	"together", "another", "mother", "father", "brother", "other",
}

// swarmScenarios are fixed negotiation exchanges for the multi-agent task.
// The outputs are canned; only the selection is randomised.
var swarmScenarios = []Record{
	{
		Instruction: "Agent A uses ⠁⠃ for 'abort'. Agent B uses ⠁⠃ for 'above'. Propose a resolution.",
		Input:       "conflict: ⠁⠃",
		Output:      "Resolution: Use context prefix. ⠼⠁⠃ (number sign + ab) = abort (emergency). ⠠⠁⠃ (caps sign + ab) = above (spatial). Default without prefix = abort (safety priority).",
		TaskType:    "swarm_negotiation",
	},
	{
		Instruction: "Two robots need to share a contraction dictionary. Design a sync protocol.",
		Input:       "sync request",
		Output:      "Protocol: 1) Exchange hash of current dictionary. 2) If mismatch, send diff. 3) Resolve conflicts by frequency (higher usage wins). 4) Broadcast new shared entries with ⠿⠿ prefix.",
		TaskType:    "swarm_negotiation",
	},
	{
		Instruction: "A new agent joins the swarm with no shared contractions. Bootstrap protocol?",
		Input:       "new agent bootstrap",
		Output:      "Bootstrap: 1) Send Grade-2 UEB base (mandatory). 2) Send top-50 domain contractions by frequency. 3) Agent echoes understood contractions. 4) Negotiate unknowns via Grade-1 expansion.",
		TaskType:    "swarm_negotiation",
	},
	{
		Instruction: "Agent detects semantic drift - its contraction for 'danger' differs from swarm consensus. Resolution?",
		Input:       "semantic drift detected",
		Output:      "Resolution: 1) Flag local contraction as deprecated. 2) Request swarm consensus definition. 3) Update local dictionary. 4) Re-encode recent messages with new contraction. 5) Broadcast acknowledgment.",
		TaskType:    "swarm_negotiation",
	},
}
