package category

const (
	personaPreamble = "You are an expert researcher. "
	markdownSuffix  = " Summarize concisely using Markdown."
)

const (
	overviewInstructions = "Provide a comprehensive general overview of this topic. " +
		"Use bullet points for key facts, history, and current significance. " +
		"Focus on providing a broad understanding for a general audience."
	researchInstructions = "Provide a research-focused summary. " +
		"Focus on empirical data, scientific studies, academic findings, and methodologies. " +
		"Highlight specific researchers, institutions, or major breakthroughs in this field."
	newsInstructions = "Summarize the most recent developments, events, and trending news regarding this topic " +
		"from the last few weeks. Highlight dates, key figures involved in current events, " +
		"and ongoing controversies or updates."
	factCheckInstructions = "Critically analyze this topic to identify common myths, claims, or potential misinformation. " +
		"Use the provided search results to confirm or debunk specific statements. " +
		"Provide a 'Verdict' for each major claim identified."
)

// Query shapes the web search query for the topic.
func (c Category) Query(topic string) string {
	switch c {
	case Research:
		return "scientific research studies and academic papers on " + topic
	case News:
		return "latest news and recent developments on " + topic
	case FactCheck:
		return "claims myths and fact check about " + topic
	default:
		return "comprehensive overview and general facts about " + topic
	}
}

// SystemPrompt returns the language model instructions for the category.
func (c Category) SystemPrompt() string {
	return personaPreamble + c.instructions() + markdownSuffix
}

func (c Category) instructions() string {
	switch c {
	case Research:
		return researchInstructions
	case News:
		return newsInstructions
	case FactCheck:
		return factCheckInstructions
	default:
		return overviewInstructions
	}
}
