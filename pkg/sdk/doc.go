// Package cribdex embeds the cribdex question search in a Go program.
//
// The client loads a question corpus from a JSON/YAML file or from a
// Redis/Valkey key and ranks it in process, with no HTTP hop:
//
//	client, _ := cribdex.New(ctx, cribdex.WithCorpusFile("questions.yaml"))
//	defer client.Close()
//
//	res, _ := client.Search(ctx, cribdex.SearchRequest{Query: "random variable", Limit: 10})
//	for _, hit := range res.Results {
//	    fmt.Println(hit.Score, hit.Question.Text)
//	}
//
// Corpora kept in a store are read with WithRedis or WithValkey and can be
// refreshed in place with Client.Reload:
//
//	client, _ := cribdex.New(ctx,
//	    cribdex.WithValkey("localhost:6379", ""),
//	    cribdex.WithStoreKey("cribdex:corpus"),
//	)
package cribdex
