// Package explorer provides an embeddable Go client for web-grounded topic summaries.
//
// A summary is produced in two upstream calls: a web search (Tavily) shaped by
// the requested category, then a chat completion against an OpenAI-compatible
// endpoint (Groq by default) that condenses the search snippets into Markdown.
//
//	client, _ := explorer.New(
//	    explorer.WithTavily(os.Getenv("TAVILY_API_KEY")),
//	    explorer.WithCompletion(os.Getenv("GROQ_API_KEY"), "", ""),
//	)
//	s, err := client.Summarize(ctx, "quantum computing", explorer.CategoryResearch)
//	if errors.Is(err, explorer.ErrNoResults) {
//	    // nothing found for the topic
//	}
//	fmt.Println(s.Summary)
//	for _, src := range s.Sources {
//	    fmt.Println(src.Title, src.URL)
//	}
package explorer
