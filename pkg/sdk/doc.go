// Package coursesearch embeds constrained semantic course search in a Go program.
//
// The client loads a course catalog and its subjects, embeds every course section
// and answers free-text queries. Year level ("second year"), weekday ("on tuesdays")
// and subject ("computer science") mentioned in a query are applied as filters; the
// rest of the query is matched semantically.
//
//	client, _ := coursesearch.New(ctx,
//	    coursesearch.WithCatalogFiles("data/courses.json", "data/subjects.json"),
//	    coursesearch.WithOpenAI(os.Getenv("OPENAI_API_KEY"), "", "text-embedding-3-small"),
//	    coursesearch.WithRedisCache("localhost:6379", ""),
//	)
//	defer client.Close()
//
//	results, _ := client.Search(ctx, "second year machine learning on tuesdays")
//	for _, r := range results {
//	    fmt.Println(r.CourseCode, r.Title, r.Score)
//	}
package coursesearch
